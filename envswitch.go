package envswitch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/envswitch/internal/actions"
	"github.com/aretw0/envswitch/internal/adapters/memory"
	"github.com/aretw0/envswitch/internal/config"
	"github.com/aretw0/envswitch/internal/logging"
	"github.com/aretw0/envswitch/internal/presentation/tui"
	"github.com/aretw0/envswitch/internal/runtime"
	"github.com/aretw0/envswitch/pkg/adapters/i3"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/aretw0/envswitch/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed activation can hold the lock.
const DefaultLockTTL = 30 * time.Second

// Engine is the high-level entry point for the envswitch library.
// It wires the catalog, the window manager client, the generator actions and
// the activation record store.
type Engine struct {
	cfg     *config.Config
	client  ports.WorkspaceClient
	actions []actions.Action
	store   ports.RecordStore
	locker  ports.Locker
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	printer *tui.Printer
	baseDir string
	homeDir string
	dryRun  bool

	out   io.Writer
	color bool

	activator  *runtime.Activator
	dispatcher *actions.Dispatcher

	// mu serializes activations issued from the same process (HTTP, MCP).
	mu sync.Mutex
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithConfig injects an already loaded catalog, bypassing the file loader.
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithWorkspaceClient replaces the default i3-msg client.
func WithWorkspaceClient(client ports.WorkspaceClient) Option {
	return func(e *Engine) {
		e.client = client
	}
}

// WithActions replaces the default generator actions.
func WithActions(list ...actions.Action) Option {
	return func(e *Engine) {
		e.actions = list
	}
}

// WithBaseDir sets the directory holding bin/ and templates/.
// Defaults to the directory of the catalog file.
func WithBaseDir(dir string) Option {
	return func(e *Engine) {
		e.baseDir = dir
	}
}

// WithHomeDir sets where generated files are written. Defaults to $HOME.
func WithHomeDir(dir string) Option {
	return func(e *Engine) {
		e.homeDir = dir
	}
}

// WithRecordStore sets where activation records are kept.
func WithRecordStore(store ports.RecordStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serializes activations across processes.
func WithLocker(locker ports.Locker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithDryRun plans renames without submitting them.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// WithOutput sets where progress lines ("Switching to", ✓/✗) are printed.
// Output is discarded by default.
func WithOutput(w io.Writer, color bool) Option {
	return func(e *Engine) {
		e.out = w
		e.color = color
	}
}

// New initializes a new Engine from the catalog at configPath.
// configPath may be empty when WithConfig is provided.
func New(configPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.cfg == nil {
		if configPath == "" {
			return nil, fmt.Errorf("configPath is required when no config is provided")
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		eng.cfg = cfg
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.client == nil {
		eng.client = i3.New()
	}
	if eng.store == nil {
		eng.store = memory.New()
	}
	if eng.out == nil {
		eng.out = io.Discard
	}
	eng.printer = tui.NewPrinter(eng.out, eng.color)

	if eng.actions == nil {
		settings := actions.DefaultSettings(eng.BaseDir())
		if eng.homeDir != "" {
			settings.HomeDir = eng.homeDir
		}
		settings.Global = eng.cfg.Global
		settings.Templates = eng.cfg.Templates
		eng.actions = actions.Defaults(settings)
	}

	eng.activator = runtime.NewActivator(eng.client,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithDryRun(eng.dryRun),
	)
	eng.dispatcher = actions.NewDispatcher(eng.actions,
		actions.WithLogger(eng.logger),
		actions.WithLifecycleHooks(eng.hooks),
	)

	return eng, nil
}

// Config returns the loaded catalog.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// BaseDir returns the scripts and templates root.
func (e *Engine) BaseDir() string {
	if e.baseDir != "" {
		return e.baseDir
	}
	return e.cfg.Dir()
}

// Environments returns the catalog in declaration order.
func (e *Engine) Environments() []domain.Environment {
	return e.cfg.Environments
}

// Lookup finds an environment by name. The error lists the available names.
func (e *Engine) Lookup(name string) (domain.Environment, error) {
	env, ok := e.cfg.Lookup(name)
	if !ok {
		return domain.Environment{}, &NotFoundError{Name: name, Available: e.cfg.Names()}
	}
	return env, nil
}

// Process runs the generator actions of every environment, in order.
func (e *Engine) Process(ctx context.Context) []domain.ActionResult {
	envs := e.Environments()
	if len(envs) == 0 {
		fmt.Fprintln(e.out, "No environments found to process")
		return nil
	}

	results := e.dispatcher.ProcessAll(ctx, envs)
	e.printer.ActionResults(results)
	return results
}

// Switch activates the named environment and records the activation.
func (e *Engine) Switch(ctx context.Context, name string) (domain.RenameReport, error) {
	env, err := e.Lookup(name)
	if err != nil {
		return domain.RenameReport{Environment: name}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, "activation", DefaultLockTTL)
		if err != nil {
			return domain.RenameReport{Environment: name}, fmt.Errorf("failed to acquire activation lock: %w", err)
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				e.logger.Warn("failed to release activation lock", "error", err)
			}
		}()
	}

	e.printer.Switching(env.Name)
	report, err := e.activator.Activate(ctx, env)
	e.printer.RenameReport(report)
	if err != nil {
		return report, err
	}

	if !e.dryRun {
		rec := domain.NewActivationRecord(report, time.Now())
		if err := e.store.Save(ctx, rec); err != nil {
			e.logger.Warn("failed to save activation record", "env", env.Name, "error", err)
		}
	}
	return report, nil
}

// Current returns the most recent activation.
func (e *Engine) Current(ctx context.Context) (*domain.ActivationRecord, error) {
	return e.store.Latest(ctx)
}

// History returns up to limit activations, newest first.
func (e *Engine) History(ctx context.Context, limit int) ([]domain.ActivationRecord, error) {
	return e.store.History(ctx, limit)
}

// NotFoundError is returned by Lookup and Switch for an unknown environment.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("environment '%s' not found (no environments defined)", e.Name)
	}
	return fmt.Sprintf("environment '%s' not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return domain.ErrEnvironmentNotFound
}
