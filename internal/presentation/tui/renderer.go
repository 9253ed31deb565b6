package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// With styled false the markdown is returned as is (pipes, redirects).
func NewRenderer(styled bool) func(string) (string, error) {
	if !styled {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// EnvironmentMarkdown describes env as a markdown document.
func EnvironmentMarkdown(env domain.Environment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", env.Label())
	if env.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", env.Description)
	}

	b.WriteString("| field | value |\n|---|---|\n")
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "| %s | `%s` |\n", k, v)
		}
	}
	row("name", env.Name)
	row("role", env.Role)
	row("language", env.Language)
	row("framework", env.Framework)
	row("project", env.Project)
	row("working directory", env.WorkingDirectory)

	var enabled []string
	if env.Spacemacs {
		enabled = append(enabled, "spacemacs")
	}
	if env.Tmuxinator {
		enabled = append(enabled, "tmuxinator")
	}
	if env.ChromiumDatadir {
		enabled = append(enabled, "chromium-datadir")
	}
	if len(enabled) > 0 {
		b.WriteString("\n## Actions\n\n")
		for _, a := range enabled {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}

	if env.HasWorkspaceNames() {
		b.WriteString("\n## Workspaces\n\n")
		slots := make([]int, 0, len(env.WorkspaceNames))
		for slot := range env.WorkspaceNames {
			slots = append(slots, slot)
		}
		sort.Ints(slots)
		for _, slot := range slots {
			fmt.Fprintf(&b, "%d. `%s`\n", slot, domain.TargetName(slot, env.WorkspaceNames[slot]))
		}
	}

	return b.String()
}
