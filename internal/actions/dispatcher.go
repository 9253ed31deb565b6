package actions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/envswitch/internal/logging"
	"github.com/aretw0/envswitch/pkg/domain"
)

// Dispatcher runs the enabled actions of each environment in order.
type Dispatcher struct {
	actions []Action
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for skipped and failed actions.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithLifecycleHooks registers OnAction observers.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// NewDispatcher creates a dispatcher over actions.
func NewDispatcher(actions []Action, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		actions: actions,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Process runs every enabled action for env. An environment without a name,
// or one that failed to decode, yields a single failed result and nothing runs.
func (d *Dispatcher) Process(ctx context.Context, env domain.Environment) []domain.ActionResult {
	if env.Name == "" || env.LoadErr != nil {
		res := domain.ActionResult{
			Action:      "environment",
			Environment: env.Name,
			Err:         env.LoadErr,
		}
		if env.Name == "" {
			res.Err = domain.ErrMissingName
		}
		d.logger.Warn("skipping environment", "error", res.Err)
		d.emit(ctx, res)
		return []domain.ActionResult{res}
	}

	var results []domain.ActionResult
	for _, action := range d.actions {
		if !action.Enabled(env) {
			continue
		}
		res := d.run(ctx, action, env)
		switch {
		case res.Err != nil:
			d.logger.Error("action failed", "action", res.Action, "env", env.Name, "error", res.Err)
		case res.Skipped != "":
			d.logger.Warn("action skipped", "action", res.Action, "env", env.Name, "reason", res.Skipped)
		default:
			d.logger.Debug("action done", "action", res.Action, "env", env.Name, "output", res.Output)
		}
		d.emit(ctx, res)
		results = append(results, res)
	}
	return results
}

// ProcessAll processes envs in order, each to completion.
func (d *Dispatcher) ProcessAll(ctx context.Context, envs []domain.Environment) []domain.ActionResult {
	var results []domain.ActionResult
	for _, env := range envs {
		results = append(results, d.Process(ctx, env)...)
	}
	return results
}

func (d *Dispatcher) run(ctx context.Context, action Action, env domain.Environment) (res domain.ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.ActionResult{
				Action:      action.Name(),
				Environment: env.Name,
				Err:         fmt.Errorf("action panicked: %v", r),
			}
		}
	}()
	return action.Run(ctx, env)
}

func (d *Dispatcher) emit(ctx context.Context, res domain.ActionResult) {
	if d.hooks.OnAction == nil {
		return
	}
	d.hooks.OnAction(ctx, &domain.ActionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventAction},
		Result:    res,
	})
}
