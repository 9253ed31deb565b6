package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/envswitch/internal/adapters/file"
	"github.com/aretw0/envswitch/internal/render"
	"github.com/aretw0/envswitch/pkg/domain"
)

const (
	TmuxinatorAction = "tmuxinator"
	ChromiumAction   = "chromium-datadir"
)

// TemplateAction renders a template into a per-environment file.
type TemplateAction struct {
	name     string
	template string
	settings Settings
	enabled  func(domain.Environment) bool
	target   func(domain.Environment) string
}

// NewTmuxinator renders templates/tmuxinator.yml into
// ~/.config/tmuxinator/<name>.yml.
func NewTmuxinator(s Settings) *TemplateAction {
	return &TemplateAction{
		name:     TmuxinatorAction,
		template: s.templatePath("tmuxinator.yml"),
		settings: s,
		enabled:  func(env domain.Environment) bool { return env.Tmuxinator },
		target: func(env domain.Environment) string {
			return filepath.Join(s.HomeDir, ".config", "tmuxinator", env.Name+".yml")
		},
	}
}

// NewChromium renders templates/chromium-datadir.desktop into
// ~/.local/share/applications/chromium-<name>.desktop.
func NewChromium(s Settings) *TemplateAction {
	return &TemplateAction{
		name:     ChromiumAction,
		template: s.templatePath("chromium-datadir.desktop"),
		settings: s,
		enabled:  func(env domain.Environment) bool { return env.ChromiumDatadir },
		target: func(env domain.Environment) string {
			return filepath.Join(s.HomeDir, ".local", "share", "applications", "chromium-"+env.Name+".desktop")
		},
	}
}

func (a *TemplateAction) Name() string { return a.name }

func (a *TemplateAction) Enabled(env domain.Environment) bool { return a.enabled(env) }

// Target returns the file the action writes for env.
func (a *TemplateAction) Target(env domain.Environment) string { return a.target(env) }

func (a *TemplateAction) Run(ctx context.Context, env domain.Environment) domain.ActionResult {
	result := domain.ActionResult{Action: a.name, Environment: env.Name}

	if _, err := os.Stat(a.template); err != nil {
		result.Skipped = fmt.Sprintf("template %s not found", a.template)
		return result
	}

	target := a.target(env)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		result.Err = fmt.Errorf("failed to create output dir: %w", err)
		return result
	}

	rc := render.NewContext(env, a.settings.Global, a.settings.Templates)
	out, err := render.RenderFile(a.template, rc)
	if err != nil {
		result.Err = err
		return result
	}

	if err := file.WriteAtomic(target, []byte(out), 0o644); err != nil {
		result.Err = err
		return result
	}
	result.Output = target
	return result
}
