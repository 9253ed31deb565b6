package ports

import (
	"context"

	"github.com/aretw0/envswitch/pkg/domain"
)

// WorkspaceClient is the minimal window-manager IPC surface used by the engine.
// Implementations must pass names as discrete values and take care of any
// quoting required by the underlying transport.
type WorkspaceClient interface {
	// GetWorkspaces returns the live workspace list in backend order.
	GetWorkspaces(ctx context.Context) ([]domain.LiveWorkspace, error)

	// RenameWorkspace renames the workspace currently named from to to.
	RenameWorkspace(ctx context.Context, from, to string) error
}
