// Package workspace provisions new tenants: the workspace record, its first
// venue, and the superadmin owner account, in dependency order.
package workspace

import (
	"context"
	"fmt"

	"dino/internal/domain/permission"
	domainuser "dino/internal/domain/user"
	uservo "dino/internal/domain/user/valueobjects"
	"dino/internal/domain/venue"
	domainworkspace "dino/internal/domain/workspace"
	"dino/internal/shared/errors"
	"dino/internal/shared/id"
	"dino/internal/shared/logger"
	"dino/internal/shared/utils"
)

const slugSuffixLength = 6

// Slug collisions are re-rolled a bounded number of times; exhausting the
// budget means the display name is pathologically popular.
const maxSlugAttempts = 5

// ProvisionRequest carries everything needed to stand up a tenant.
type ProvisionRequest struct {
	DisplayName   string
	VenueName     string
	OwnerEmail    string
	OwnerFullName string
	OwnerPassword string
}

// ProvisionResult reports the created tenant graph.
type ProvisionResult struct {
	Workspace *domainworkspace.Workspace
	Venue     *venue.Venue
	Owner     *domainuser.User
}

// Service provisions workspaces.
type Service struct {
	workspaceRepo domainworkspace.Repository
	venueRepo     venue.Repository
	userRepo      domainuser.Repository
	roleRepo      permission.RoleRepository
	hasher        domainuser.PasswordHasher
	logger        logger.Interface
}

// NewService creates a new workspace provisioning service
func NewService(
	workspaceRepo domainworkspace.Repository,
	venueRepo venue.Repository,
	userRepo domainuser.Repository,
	roleRepo permission.RoleRepository,
	hasher domainuser.PasswordHasher,
	logger logger.Interface,
) *Service {
	return &Service{
		workspaceRepo: workspaceRepo,
		venueRepo:     venueRepo,
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		hasher:        hasher,
		logger:        logger,
	}
}

// Provision creates a workspace with its first venue and superadmin owner.
// The workspace name is a globally unique slug derived from the display
// name plus a random base62 suffix.
func (s *Service) Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error) {
	if req.DisplayName == "" {
		return nil, errors.NewValidationError("workspace display name is required")
	}
	if req.VenueName == "" {
		return nil, errors.NewValidationError("venue name is required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.OwnerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check owner email: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("user with this email already exists")
	}

	slug, err := s.uniqueSlug(ctx, req.DisplayName)
	if err != nil {
		return nil, err
	}

	ws, err := domainworkspace.NewWorkspace(slug, req.DisplayName, "")
	if err != nil {
		return nil, errors.NewValidationError("invalid workspace", err.Error())
	}
	if err := s.workspaceRepo.Create(ctx, ws); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	firstVenue, err := venue.NewVenue(ws.ID(), req.VenueName)
	if err != nil {
		s.rollback(ctx, ws.ID(), "", "")
		return nil, errors.NewValidationError("invalid venue", err.Error())
	}
	if err := s.venueRepo.Create(ctx, firstVenue); err != nil {
		s.rollback(ctx, ws.ID(), "", "")
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	owner, err := s.createOwner(ctx, ws.ID(), firstVenue.ID(), req)
	if err != nil {
		s.rollback(ctx, ws.ID(), firstVenue.ID(), "")
		return nil, err
	}

	ws.AddVenue(firstVenue.ID())
	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		s.rollback(ctx, ws.ID(), firstVenue.ID(), owner.ID())
		return nil, fmt.Errorf("failed to attach venue to workspace: %w", err)
	}

	s.logger.Infow("workspace provisioned",
		"workspace_id", ws.ID(), "slug", slug, "venue_id", firstVenue.ID(), "owner_id", owner.ID())

	return &ProvisionResult{Workspace: ws, Venue: firstVenue, Owner: owner}, nil
}

// rollback removes a half-provisioned tenant graph in reverse dependency
// order. Provisioning has no surrounding transaction, so each failure
// branch compensates for the rows already written. Rollback failures are
// logged and swallowed; the caller's error reports the original cause.
func (s *Service) rollback(ctx context.Context, workspaceID, venueID, ownerID string) {
	if ownerID != "" {
		if err := s.userRepo.Delete(ctx, ownerID); err != nil {
			s.logger.Errorw("rollback failed to delete owner", "user_id", ownerID, "error", err)
		}
	}
	if venueID != "" {
		if err := s.venueRepo.Delete(ctx, venueID); err != nil {
			s.logger.Errorw("rollback failed to delete venue", "venue_id", venueID, "error", err)
		}
	}
	if err := s.workspaceRepo.Delete(ctx, workspaceID); err != nil {
		s.logger.Errorw("rollback failed to delete workspace", "workspace_id", workspaceID, "error", err)
	}

	s.logger.Warnw("workspace provisioning rolled back", "workspace_id", workspaceID)
}

func (s *Service) uniqueSlug(ctx context.Context, displayName string) (string, error) {
	base := utils.Slugify(displayName)
	if base == "" {
		return "", errors.NewValidationError("workspace display name yields an empty slug")
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		suffix, err := id.Generate(slugSuffixLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate slug suffix: %w", err)
		}
		slug := base + "-" + suffix

		taken, err := s.workspaceRepo.ExistsByName(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("failed to check slug uniqueness: %w", err)
		}
		if !taken {
			return slug, nil
		}
	}

	return "", errors.NewConflictError("could not allocate a unique workspace name")
}

func (s *Service) createOwner(ctx context.Context, workspaceID, venueID string, req ProvisionRequest) (*domainuser.User, error) {
	role, err := s.roleRepo.GetByName(ctx, permission.TierSuperAdmin.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load superadmin role: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("superadmin role not seeded")
	}

	email, err := uservo.NewEmail(req.OwnerEmail)
	if err != nil {
		return nil, errors.NewValidationError("invalid email", err.Error())
	}

	hashed, err := s.hasher.Hash(req.OwnerPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	owner, err := domainuser.NewUser(workspaceID, venueID, email, req.OwnerFullName, role.ID(), hashed)
	if err != nil {
		return nil, errors.NewValidationError("invalid owner", err.Error())
	}

	owner.SetPermissions(permission.TierSuperAdmin.DefaultPermissions())
	owner.MarkOwner()
	owner.MarkVerified()

	if err := s.userRepo.Create(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to create owner: %w", err)
	}

	return owner, nil
}
