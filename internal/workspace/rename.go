package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/envswitch/internal/logging"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/aretw0/envswitch/pkg/ports"
)

// Renamer submits rename operations one at a time.
type Renamer struct {
	client   ports.WorkspaceClient
	logger   *slog.Logger
	dryRun   bool
	onResult func(context.Context, domain.RenameResult)
}

// RenamerOption configures the renamer.
type RenamerOption func(*Renamer)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) RenamerOption {
	return func(r *Renamer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDryRun reports operations as planned without submitting them.
func WithDryRun(dryRun bool) RenamerOption {
	return func(r *Renamer) {
		r.dryRun = dryRun
	}
}

// WithResultHook registers a callback invoked after every operation.
func WithResultHook(fn func(context.Context, domain.RenameResult)) RenamerOption {
	return func(r *Renamer) {
		r.onResult = fn
	}
}

// NewRenamer creates a renamer on top of a workspace client.
func NewRenamer(client ports.WorkspaceClient, opts ...RenamerOption) *Renamer {
	r := &Renamer{
		client: client,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply submits every operation and returns one result per operation, in order.
// A failing operation is recorded and the batch continues.
func (r *Renamer) Apply(ctx context.Context, ops []domain.RenameOperation) []domain.RenameResult {
	results := make([]domain.RenameResult, 0, len(ops))
	for _, op := range ops {
		res := domain.RenameResult{Operation: op, Planned: r.dryRun}
		if !r.dryRun {
			res.Err = r.rename(ctx, op)
		}

		if res.Err != nil {
			r.logger.Error("Workspace rename failed", "slot", op.Slot, "from", op.Source, "to", op.Target, "error", res.Err)
		} else {
			r.logger.Info("Workspace renamed", "slot", op.Slot, "from", op.Source, "to", op.Target, "dry_run", r.dryRun)
		}

		if r.onResult != nil {
			r.onResult(ctx, res)
		}
		results = append(results, res)
	}
	return results
}

func (r *Renamer) rename(ctx context.Context, op domain.RenameOperation) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: slot %d: unexpected panic: %v", domain.ErrRenameFailed, op.Slot, p)
		}
	}()
	return r.client.RenameWorkspace(ctx, op.Source, op.Target)
}
