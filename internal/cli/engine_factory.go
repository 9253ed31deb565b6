package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/envswitch"
	"github.com/aretw0/envswitch/internal/adapters/file"
	"github.com/aretw0/envswitch/internal/adapters/redis"
	"github.com/aretw0/envswitch/internal/logging"
	"github.com/aretw0/envswitch/internal/metrics"
	"github.com/aretw0/envswitch/internal/presentation/tui"
	"github.com/aretw0/envswitch/pkg/adapters/i3"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/aretw0/envswitch/pkg/ports"
)

// App is an engine wired with the CLI conventions: i3/sway client, record
// store, metrics and debug logging.
type App struct {
	Engine  *envswitch.Engine
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	opts    Options
	closers []func() error
}

// NewApp initializes the engine for a command.
func NewApp(opts Options) (*App, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logger := logging.ForCLI(opts.Debug)
	app := &App{
		Metrics: metrics.New(),
		Logger:  logger,
		opts:    opts,
	}

	store, locker := app.setupPersistence()

	color := tui.IsTerminal(os.Stdout)
	if opts.Color != nil {
		color = *opts.Color
	}

	hooks := app.Metrics.Hooks()
	if opts.Debug {
		hooks = hooks.Merge(createDebugHooks(logger))
	}

	engineOpts := []envswitch.Option{
		envswitch.WithLogger(logger),
		envswitch.WithWorkspaceClient(newWorkspaceClient(opts.WM)),
		envswitch.WithRecordStore(store),
		envswitch.WithLifecycleHooks(hooks),
		envswitch.WithDryRun(opts.DryRun),
		envswitch.WithOutput(opts.out(), color),
	}
	if opts.BaseDir != "" {
		engineOpts = append(engineOpts, envswitch.WithBaseDir(opts.BaseDir))
	}
	if locker != nil {
		engineOpts = append(engineOpts, envswitch.WithLocker(locker))
	}

	engine, err := envswitch.New(opts.ConfigPath, engineOpts...)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	app.Engine = engine
	return app, nil
}

// Close flushes the metrics textfile and releases connections.
func (a *App) Close() error {
	var errs []error
	if a.opts.MetricsTextfile != "" {
		if err := a.Metrics.WriteTextfile(a.opts.MetricsTextfile); err != nil {
			errs = append(errs, err)
		}
	}
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// setupPersistence picks Redis when an address is given, the state dir otherwise.
func (a *App) setupPersistence() (ports.RecordStore, ports.Locker) {
	if a.opts.RedisAddr != "" {
		store := redis.New(a.opts.RedisAddr, "", 0)
		a.closers = append(a.closers, store.Close)
		a.Logger.Debug("using redis record store", "addr", a.opts.RedisAddr)
		return store, redis.NewLocker(store.Client(), redis.DefaultPrefix)
	}

	dir := a.opts.StateDir
	if dir == "" {
		dir = file.DefaultPath()
	}
	a.Logger.Debug("using file record store", "dir", dir)
	return file.New(dir), nil
}

func newWorkspaceClient(wm string) ports.WorkspaceClient {
	if wm == WMSway {
		return i3.New(i3.WithBinary("swaymsg"))
	}
	return i3.New()
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActivationStart: func(ctx context.Context, e *domain.ActivationEvent) {
			logger.Debug("Activation Start", "env", e.Environment)
		},
		OnActivationEnd: func(ctx context.Context, e *domain.ActivationEvent) {
			if e.Err != nil {
				logger.Debug("Activation End (Error)", "env", e.Environment, "err", e.Err)
				return
			}
			logger.Debug("Activation End", "env", e.Environment)
		},
		OnRename: func(ctx context.Context, e *domain.RenameEvent) {
			logger.Debug("Rename", "env", e.Environment,
				"source", e.Result.Operation.Source,
				"target", e.Result.Operation.Target,
				"ok", e.Result.OK())
		},
		OnAction: func(ctx context.Context, e *domain.ActionEvent) {
			logger.Debug("Action", "action", e.Result.Action, "env", e.Result.Environment, "ok", e.Result.OK())
		},
	}
}
