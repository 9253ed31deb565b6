package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/envswitch/internal/logging"
	"github.com/aretw0/envswitch/internal/workspace"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/aretw0/envswitch/pkg/ports"
)

// Activator brings the live workspaces in line with an environment's labels.
type Activator struct {
	client ports.WorkspaceClient
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	dryRun bool
}

// Option configures the Activator.
type Option func(*Activator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Activator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Activator) {
		a.hooks = hooks
	}
}

// WithDryRun computes renames without submitting them.
func WithDryRun(dryRun bool) Option {
	return func(a *Activator) {
		a.dryRun = dryRun
	}
}

// NewActivator creates an Activator on top of a workspace client.
func NewActivator(client ports.WorkspaceClient, opts ...Option) *Activator {
	a := &Activator{
		client: client,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Activate runs Query -> Match -> Rename once for env.
//
// The only hard failures are configuration errors (missing name, an entry
// that failed to decode, invalid workspace names); they abort this
// environment only. Query and rename
// failures are contained in the returned report.
func (a *Activator) Activate(ctx context.Context, env domain.Environment) (domain.RenameReport, error) {
	report := domain.RenameReport{Environment: env.Name}
	if env.Name == "" {
		return report, domain.ErrMissingName
	}
	if env.LoadErr != nil {
		return report, env.LoadErr
	}

	a.emitStart(ctx, env.Name)

	if !env.HasWorkspaceNames() {
		a.logger.Debug("No workspace names declared, skipping rename", "env", env.Name)
		a.emitEnd(ctx, &report, nil)
		return report, nil
	}

	if err := domain.ValidateWorkspaceNames(env.WorkspaceNames); err != nil {
		err = fmt.Errorf("environment %q: %w", env.Name, err)
		a.emitEnd(ctx, &report, err)
		return report, err
	}

	live := workspace.Query(ctx, a.client, a.logger)
	a.logAmbiguousSlots(env, live)

	ops := workspace.Match(env.WorkspaceNames, live)
	a.logger.Debug("Rename plan", "env", env.Name, "operations", len(ops), "live", len(live))

	renamer := workspace.NewRenamer(a.client,
		workspace.WithLogger(a.logger.With("env", env.Name)),
		workspace.WithDryRun(a.dryRun),
		workspace.WithResultHook(func(ctx context.Context, res domain.RenameResult) {
			if a.hooks.OnRename != nil {
				a.hooks.OnRename(ctx, &domain.RenameEvent{
					EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventRename},
					Environment: env.Name,
					Result:      res,
				})
			}
		}),
	)
	report.Results = renamer.Apply(ctx, ops)

	a.emitEnd(ctx, &report, nil)
	return report, nil
}

// logAmbiguousSlots reports slots matched by more than one live workspace.
// Match picks the first one in backend order.
func (a *Activator) logAmbiguousSlots(env domain.Environment, live []domain.LiveWorkspace) {
	for slot := range env.WorkspaceNames {
		if candidates := workspace.Candidates(slot, live); len(candidates) > 1 {
			names := make([]string, 0, len(candidates))
			for _, c := range candidates {
				names = append(names, c.Name)
			}
			a.logger.Debug("Several live workspaces match slot, using the first", "env", env.Name, "slot", slot, "candidates", names)
		}
	}
}

func (a *Activator) emitStart(ctx context.Context, name string) {
	if a.hooks.OnActivationStart == nil {
		return
	}
	a.hooks.OnActivationStart(ctx, &domain.ActivationEvent{
		EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventActivationStart},
		Environment: name,
	})
}

func (a *Activator) emitEnd(ctx context.Context, report *domain.RenameReport, err error) {
	if a.hooks.OnActivationEnd == nil {
		return
	}
	a.hooks.OnActivationEnd(ctx, &domain.ActivationEvent{
		EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventActivationEnd},
		Environment: report.Environment,
		Report:      report,
		Err:         err,
	})
}
