package user

import (
	"context"
	"fmt"

	"dino/internal/application/access"
	"dino/internal/domain/permission"
	domainuser "dino/internal/domain/user"
	uservo "dino/internal/domain/user/valueobjects"
	"dino/internal/shared/errors"
	"dino/internal/shared/logger"
)

// CreateVenueUserRequest carries the input for creating a venue-bound user.
type CreateVenueUserRequest struct {
	CreatorID string
	VenueID   string
	Email     string
	FullName  string
	Password  string
	Role      string
}

// Service handles user administration inside a workspace.
type Service struct {
	userRepo  domainuser.Repository
	roleRepo  permission.RoleRepository
	accessSvc *access.Service
	hasher    domainuser.PasswordHasher
	logger    logger.Interface
}

// NewService creates a new user administration service
func NewService(
	userRepo domainuser.Repository,
	roleRepo permission.RoleRepository,
	accessSvc *access.Service,
	hasher domainuser.PasswordHasher,
	logger logger.Interface,
) *Service {
	return &Service{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		accessSvc: accessSvc,
		hasher:    hasher,
		logger:    logger,
	}
}

// CreateVenueUser creates a user bound to a venue. The creator needs a user
// creation permission scoped to that venue; admins may only create
// operators, and a venue can hold at most one active admin. New users get
// the default permission seeds of their tier, and admins get the venue
// added to their access list.
func (s *Service) CreateVenueUser(ctx context.Context, req CreateVenueUserRequest) (*domainuser.User, error) {
	// Superadmins carry user:create, admins only user:create_operator, so
	// the creation gate accepts either credential.
	check := s.accessSvc.ValidateUserPermissions(ctx, req.CreatorID,
		[]string{"user:create"}, req.VenueID, "")
	if !check.HasPermission {
		check = s.accessSvc.ValidateUserPermissions(ctx, req.CreatorID,
			[]string{"user:create_operator"}, req.VenueID, "")
	}
	if !check.HasPermission {
		return nil, errors.NewForbiddenError(check.DeniedReason)
	}

	creator, err := s.userRepo.GetByID(ctx, req.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}
	if creator == nil {
		return nil, errors.NewNotFoundError("creator not found")
	}

	targetTier := permission.ParseTier(req.Role)
	if check.UserRole == permission.TierAdmin && targetTier != permission.TierOperator {
		return nil, errors.NewForbiddenError("Admin can only create Operator users")
	}

	if err := s.accessSvc.ValidateVenueRoleConstraint(ctx, req.VenueID, targetTier); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("user with this email already exists")
	}

	role, err := s.roleRepo.GetByName(ctx, targetTier.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load role %s: %w", targetTier, err)
	}
	if role == nil {
		return nil, fmt.Errorf("role %s not seeded", targetTier)
	}

	email, err := uservo.NewEmail(req.Email)
	if err != nil {
		return nil, errors.NewValidationError("invalid email", err.Error())
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := domainuser.NewUser(creator.WorkspaceID(), req.VenueID, email, req.FullName, role.ID(), hashed)
	if err != nil {
		return nil, errors.NewValidationError("invalid user", err.Error())
	}

	newUser.SetPermissions(targetTier.DefaultPermissions())
	newUser.SetCreatedBy(req.CreatorID)
	if targetTier == permission.TierAdmin {
		newUser.GrantVenueAccess(req.VenueID)
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	s.logger.Infow("venue user created",
		"user_id", newUser.ID(), "venue_id", req.VenueID, "role", targetTier.String(), "created_by", req.CreatorID)
	return newUser, nil
}

// DeactivateUser deactivates a user the manager is allowed to administer.
func (s *Service) DeactivateUser(ctx context.Context, managerID, targetID string) error {
	canManage, err := s.accessSvc.CanManageUser(ctx, managerID, targetID)
	if err != nil {
		return fmt.Errorf("failed to check manage relation: %w", err)
	}
	if !canManage {
		return errors.NewForbiddenError("Not authorized to manage this user")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if target == nil {
		return errors.NewNotFoundError("user not found")
	}

	target.Deactivate()
	if err := s.userRepo.Update(ctx, target); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Infow("user deactivated", "user_id", targetID, "by", managerID)
	return nil
}

// GetUser loads a user if the requester is the user or may manage them.
func (s *Service) GetUser(ctx context.Context, requesterID, targetID string) (*domainuser.User, error) {
	if requesterID != targetID {
		canManage, err := s.accessSvc.CanManageUser(ctx, requesterID, targetID)
		if err != nil {
			return nil, fmt.Errorf("failed to check manage relation: %w", err)
		}
		if !canManage {
			return nil, errors.NewForbiddenError("Not authorized to view this user")
		}
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if target == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return target, nil
}
