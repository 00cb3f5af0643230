package auth

import (
	"context"
	"fmt"

	"dino/internal/application/access"
	"dino/internal/domain/user"
	infraauth "dino/internal/infrastructure/auth"
	"dino/internal/shared/errors"
	"dino/internal/shared/logger"
)

// Service handles authentication flows: login, token refresh, bearer
// verification and password changes.
type Service struct {
	userRepo  user.Repository
	accessSvc *access.Service
	jwtSvc    *infraauth.JWTService
	hasher    user.PasswordHasher
	logger    logger.Interface
}

// NewService creates a new authentication service
func NewService(
	userRepo user.Repository,
	accessSvc *access.Service,
	jwtSvc *infraauth.JWTService,
	hasher user.PasswordHasher,
	logger logger.Interface,
) *Service {
	return &Service{
		userRepo:  userRepo,
		accessSvc: accessSvc,
		jwtSvc:    jwtSvc,
		hasher:    hasher,
		logger:    logger,
	}
}

// LoginResult carries the issued tokens and the authenticated principal.
type LoginResult struct {
	Tokens *infraauth.TokenPair
	User   *user.User
}

// Login authenticates an email and password pair. Unknown email and wrong
// password produce the same generic error so the response never reveals
// which half failed.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	principal, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Errorw("login lookup failed", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if principal == nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := principal.VerifyPassword(password, s.hasher); err != nil {
		s.logger.Warnw("login failed", "user_id", principal.ID())
		return nil, errors.NewInvalidCredentialsError()
	}

	if !principal.IsActive() {
		return nil, errors.NewAccountInactiveError()
	}

	principal.RecordLogin()
	if err := s.userRepo.Update(ctx, principal); err != nil {
		// Login bookkeeping must not block authentication.
		s.logger.Warnw("failed to record login", "user_id", principal.ID(), "error", err)
	}

	tokens, err := s.jwtSvc.Generate(principal.ID(), principal.Email().String(), principal.RoleID())
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.Infow("user logged in", "user_id", principal.ID())
	return &LoginResult{Tokens: tokens, User: principal}, nil
}

// Refresh verifies a refresh token, reloads the principal and rotates both
// tokens. A valid refresh token for a missing or inactive principal is
// rejected uniformly.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*infraauth.TokenPair, error) {
	claims, err := s.jwtSvc.Verify(refreshToken)
	if err != nil {
		return nil, errors.NewTokenInvalidError()
	}
	if claims.TokenType != infraauth.TokenTypeRefresh {
		return nil, errors.NewTokenInvalidError()
	}

	principal, err := s.userRepo.GetByID(ctx, claims.UserID())
	if err != nil {
		s.logger.Errorw("refresh lookup failed", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if principal == nil || !principal.IsActive() {
		return nil, errors.NewTokenInvalidError()
	}

	tokens, err := s.jwtSvc.Refresh(refreshToken, principal.Email().String(), principal.RoleID())
	if err != nil {
		return nil, errors.NewTokenInvalidError()
	}
	return tokens, nil
}

// AuthenticateBearer resolves an access token into a Principal. Every
// failure path returns the same uniform token error.
func (s *Service) AuthenticateBearer(ctx context.Context, token string) (*access.Principal, error) {
	claims, err := s.jwtSvc.Verify(token)
	if err != nil {
		return nil, errors.NewTokenInvalidError()
	}
	if claims.TokenType != infraauth.TokenTypeAccess {
		return nil, errors.NewTokenInvalidError()
	}

	principal, err := s.userRepo.GetByID(ctx, claims.UserID())
	if err != nil {
		s.logger.Errorw("bearer lookup failed", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if principal == nil || !principal.IsActive() {
		return nil, errors.NewTokenInvalidError()
	}

	tier, err := s.accessSvc.ResolveTier(ctx, principal.RoleID())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	return &access.Principal{User: principal, Tier: tier}, nil
}

// ChangeOwnPassword lets a principal rotate their own password after
// proving the current one.
func (s *Service) ChangeOwnPassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	principal, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if principal == nil {
		return errors.NewNotFoundError("user not found")
	}

	if err := principal.VerifyPassword(currentPassword, s.hasher); err != nil {
		return errors.NewInvalidCredentialsError()
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := principal.ChangePassword(hashed); err != nil {
		return errors.NewValidationError("invalid password", err.Error())
	}

	if err := s.userRepo.Update(ctx, principal); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Infow("password changed", "user_id", userID)
	return nil
}

// ChangeManagedPassword lets a manager set a subordinate's password. The
// managing relation is gated by the access resolver.
func (s *Service) ChangeManagedPassword(ctx context.Context, changerID, targetID, newPassword string) error {
	canManage, err := s.accessSvc.CanManageUser(ctx, changerID, targetID)
	if err != nil {
		return fmt.Errorf("failed to check manage relation: %w", err)
	}
	if !canManage {
		return errors.NewForbiddenError("Not authorized to change this user's password")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if target == nil {
		return errors.NewNotFoundError("user not found")
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := target.ChangePassword(hashed); err != nil {
		return errors.NewValidationError("invalid password", err.Error())
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Infow("password changed by manager", "user_id", targetID, "changed_by", changerID)
	return nil
}
