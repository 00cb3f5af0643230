package workspace

import "context"

type Repository interface {
	Create(ctx context.Context, w *Workspace) error
	GetByID(ctx context.Context, id string) (*Workspace, error)
	GetByName(ctx context.Context, name string) (*Workspace, error)
	Update(ctx context.Context, w *Workspace) error
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Delete hard-deletes a workspace. Only the provisioning rollback uses
	// it; workspaces are never deleted through any other path.
	Delete(ctx context.Context, id string) error
}
