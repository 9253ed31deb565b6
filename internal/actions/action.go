package actions

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aretw0/envswitch/pkg/domain"
)

// Action is a generator that produces an artifact for one environment.
type Action interface {
	Name() string
	Enabled(env domain.Environment) bool
	Run(ctx context.Context, env domain.Environment) domain.ActionResult
}

// Settings locates the scripts and templates and the user's home directory.
type Settings struct {
	// BaseDir holds bin/ and templates/.
	BaseDir string
	// HomeDir is where generated files land (~/.config, ~/.local/share).
	HomeDir   string
	Global    map[string]any
	Templates map[string]any
}

// DefaultSettings uses the current user's home directory.
func DefaultSettings(baseDir string) Settings {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Settings{BaseDir: baseDir, HomeDir: home}
}

// Defaults returns the built-in actions in processing order.
func Defaults(s Settings) []Action {
	return []Action{
		NewSpacemacs(s),
		NewTmuxinator(s),
		NewChromium(s),
	}
}

func (s Settings) templatePath(name string) string {
	return filepath.Join(s.BaseDir, "templates", name)
}
