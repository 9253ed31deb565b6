// Package render turns an environment into template output.
// It is pure: a Context goes in, text comes out.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/aretw0/envswitch/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultWorkingDir is used when an environment has no working_directory.
const DefaultWorkingDir = "~/"

// Context is the data handed to templates.
type Context struct {
	Env       domain.Environment
	Global    map[string]any
	Templates map[string]any

	Name        string
	DisplayName string
	WorkingDir  string
	Language    string
	Description string
	Framework   string
	Role        string
	Project     string

	TmuxinatorWindowsStart []any
	TmuxinatorWindows      []any
	TmuxinatorWindowsEnd   []any
	WorkspaceNames         map[int]string

	// Extra holds the environment keys without a dedicated field.
	Extra map[string]any
}

// NewContext builds the template context for env.
func NewContext(env domain.Environment, global, templates map[string]any) Context {
	workingDir := env.WorkingDirectory
	if workingDir == "" {
		workingDir = DefaultWorkingDir
	}
	return Context{
		Env:                    env,
		Global:                 orEmpty(global),
		Templates:              orEmpty(templates),
		Name:                   env.Name,
		DisplayName:            env.Label(),
		WorkingDir:             workingDir,
		Language:               env.Language,
		Description:            env.Description,
		Framework:              env.Framework,
		Role:                   env.Role,
		Project:                env.Project,
		TmuxinatorWindowsStart: env.TmuxinatorWindowsStart,
		TmuxinatorWindows:      env.TmuxinatorWindows,
		TmuxinatorWindowsEnd:   env.TmuxinatorWindowsEnd,
		WorkspaceNames:         env.WorkspaceNames,
		Extra:                  orEmpty(env.Extra),
	}
}

// Funcs returns the helper functions available to templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"toyaml":  toYAML,
		"default": defaultValue,
		"indent":  indent,
	}
}

// Render executes text as a template named name.
func Render(name, text string, ctx Context) (string, error) {
	tmpl, err := template.New(name).
		Option("missingkey=zero").
		Funcs(Funcs()).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderFile reads the template at path and renders it.
func RenderFile(path string, ctx Context) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return Render(filepath.Base(path), string(data), ctx)
}

// toYAML renders a value as block-style YAML without the trailing newline.
func toYAML(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("toyaml: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// defaultValue returns def when v is empty. Usage: {{ default "x" .Role }}.
func defaultValue(def any, v any) any {
	switch val := v.(type) {
	case nil:
		return def
	case string:
		if val == "" {
			return def
		}
	case []any:
		if len(val) == 0 {
			return def
		}
	case map[string]any:
		if len(val) == 0 {
			return def
		}
	}
	return v
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
