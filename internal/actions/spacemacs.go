package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/envswitch/pkg/adapters/process"
	"github.com/aretw0/envswitch/pkg/domain"
)

const (
	// SpacemacsAction is the name of the Spacemacs launcher action.
	SpacemacsAction = "spacemacs"
	spacemacsScript = "generate_emacs_desktop_file.sh"
)

// Spacemacs runs the desktop-file generator script for the environment.
type Spacemacs struct {
	script string
	runner *process.Runner
}

// NewSpacemacs registers <base>/bin/generate_emacs_desktop_file.sh to run in
// <base>/applications.
func NewSpacemacs(s Settings) *Spacemacs {
	script := filepath.Join(s.BaseDir, "bin", spacemacsScript)
	runner := process.NewRunner(process.WithBaseDir(s.BaseDir))
	runner.RegisterIn(SpacemacsAction, filepath.Join(s.BaseDir, "applications"), script)
	return &Spacemacs{script: script, runner: runner}
}

func (a *Spacemacs) Name() string { return SpacemacsAction }

func (a *Spacemacs) Enabled(env domain.Environment) bool { return env.Spacemacs }

func (a *Spacemacs) Run(ctx context.Context, env domain.Environment) domain.ActionResult {
	result := domain.ActionResult{Action: SpacemacsAction, Environment: env.Name}

	if _, err := os.Stat(a.script); err != nil {
		result.Skipped = fmt.Sprintf("script %s not found", a.script)
		return result
	}

	proc, _ := a.runner.Lookup(SpacemacsAction)
	if err := os.MkdirAll(proc.Dir, 0o755); err != nil {
		result.Err = fmt.Errorf("failed to create %s: %w", proc.Dir, err)
		return result
	}

	out, err := a.runner.Execute(ctx, process.Call{
		Name: SpacemacsAction,
		Args: []string{env.Name},
		Env:  map[string]string{"env": env.Name},
	})
	if err != nil {
		result.Err = err
		return result
	}
	result.Output = out.Stdout
	return result
}
