package process

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// Runner executes registered local processes (generator scripts).
// It follows a Strict Registry pattern: only commands registered by the host
// can run, and caller data travels as arguments or environment variables,
// never through a shell.
type Runner struct {
	registry map[string]RegisteredProcess
	baseDir  string
}

// RegisteredProcess defines an allowed command execution.
type RegisteredProcess struct {
	Command string
	Args    []string // Default args, placed before the call's own args
	Dir     string   // Working directory; falls back to the runner's base dir
}

// Call is a request to run a registered process.
type Call struct {
	Name string
	Args []string
	// Env values are exported as ENVSWITCH_<KEY>=<value>.
	Env map[string]string
}

// Result is the captured outcome of a Call.
type Result struct {
	Stdout string
	Stderr string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list.
func WithRegistry(procs map[string]RegisteredProcess) RunnerOption {
	return func(r *Runner) {
		for name, p := range procs {
			r.registry[name] = p
		}
	}
}

// WithBaseDir sets the default working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]RegisteredProcess),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted script/command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = RegisteredProcess{
		Command: command,
		Args:    args,
	}
}

// RegisterIn adds a trusted command that runs in dir.
func (r *Runner) RegisterIn(name, dir, command string, args ...string) {
	r.registry[name] = RegisteredProcess{
		Command: command,
		Args:    args,
		Dir:     dir,
	}
}

// Lookup returns the registered process for name.
func (r *Runner) Lookup(name string) (RegisteredProcess, bool) {
	p, ok := r.registry[name]
	return p, ok
}

// Execute runs the registered process named in call and waits for it.
// A non-zero exit is returned as an error that carries stderr.
func (r *Runner) Execute(ctx context.Context, call Call) (Result, error) {
	proc, ok := r.registry[call.Name]
	if !ok {
		return Result{}, fmt.Errorf("process not registered: %s", call.Name)
	}

	args := append(append([]string{}, proc.Args...), call.Args...)
	cmd := exec.CommandContext(ctx, proc.Command, args...)
	cmd.Dir = proc.Dir
	if cmd.Dir == "" {
		cmd.Dir = r.baseDir
	}

	keys := make([]string, 0, len(call.Env))
	for k := range call.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, fmt.Sprintf("ENVSWITCH_%s=%s", strings.ToUpper(k), call.Env[k]))
	}
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		return result, fmt.Errorf("execution failed: %w. Stderr: %s", err, result.Stderr)
	}
	return result, nil
}
