package config

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/envswitch/internal/testutils"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalog = `
global:
  editor: emacs
templates:
  tmuxinator:
    root_prefix: ~/src
environments:
  - name: dev
    display_name: Development
    role: engineer
    language: go
    tmuxinator: true
    chromium-datadir: true
    wm_workspace_names:
      1: code
      2: term
    tmuxinator_windows:
      - editor: vim
      - shell: ""
    color: "#ff8800"
  - name: docs
    wm_workspace_names:
      "3": writing
      4: 42
  - display_name: Nameless
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(catalog))
	require.NoError(t, err)
	require.Len(t, cfg.Environments, 3)

	dev := cfg.Environments[0]
	assert.Equal(t, "dev", dev.Name)
	assert.Equal(t, "Development", dev.Label())
	assert.True(t, dev.Tmuxinator)
	assert.True(t, dev.ChromiumDatadir)
	assert.False(t, dev.Spacemacs)
	assert.Equal(t, map[int]string{1: "code", 2: "term"}, dev.WorkspaceNames)
	assert.Len(t, dev.TmuxinatorWindows, 2)
	assert.Equal(t, "#ff8800", dev.Extra["color"])

	docs := cfg.Environments[1]
	assert.Equal(t, map[int]string{3: "writing", 4: "42"}, docs.WorkspaceNames)

	assert.Equal(t, "", cfg.Environments[2].Name)
	assert.Equal(t, []string{"dev", "docs", "unknown"}, cfg.Names())

	assert.Equal(t, "emacs", cfg.Global["editor"])
	tmpl, ok := cfg.Templates["tmuxinator"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "~/src", tmpl["root_prefix"])
}

func TestParse_Errors(t *testing.T) {
	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := Parse([]byte("environments: [\n"))
		assert.Error(t, err)
	})

	t.Run("Duplicate Names", func(t *testing.T) {
		_, err := Parse([]byte("environments:\n  - name: a\n  - name: a\n"))
		assert.ErrorIs(t, err, ErrDuplicateEnvironment)
	})
}

func TestParse_InvalidEntryIsContained(t *testing.T) {
	doc := `
environments:
  - name: dev
    wm_workspace_names:
      web: code
  - name: ops
    spacemacs: true
    wm_workspace_names:
      1: logs
  - name: docs
    wm_workspace_names: code
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cfg.Environments, 3)
	assert.Equal(t, []string{"dev", "ops", "docs"}, cfg.Names())

	dev := cfg.Environments[0]
	assert.ErrorIs(t, dev.LoadErr, domain.ErrInvalidEnvironment)
	assert.Contains(t, dev.LoadErr.Error(), "environments[0]")
	assert.Empty(t, dev.WorkspaceNames)

	ops, ok := cfg.Lookup("ops")
	require.True(t, ok)
	assert.NoError(t, ops.LoadErr)
	assert.True(t, ops.Spacemacs)
	assert.Equal(t, map[int]string{1: "logs"}, ops.WorkspaceNames)

	assert.ErrorIs(t, cfg.Environments[2].LoadErr, domain.ErrInvalidEnvironment)
}

func TestParse_YAML11Booleans(t *testing.T) {
	doc := `
environments:
  - name: a
    spacemacs: yes
    tmuxinator: "on"
    chromium-datadir: off
  - name: b
    spacemacs: No
    tmuxinator: Y
  - name: c
    spacemacs: maybe
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	a := cfg.Environments[0]
	require.NoError(t, a.LoadErr)
	assert.True(t, a.Spacemacs)
	assert.True(t, a.Tmuxinator)
	assert.False(t, a.ChromiumDatadir)

	b := cfg.Environments[1]
	require.NoError(t, b.LoadErr)
	assert.False(t, b.Spacemacs)
	assert.True(t, b.Tmuxinator)

	assert.ErrorIs(t, cfg.Environments[2].LoadErr, domain.ErrInvalidEnvironment)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, DefaultFileName, catalog)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, dir, cfg.Dir())

	env, ok := cfg.Lookup("docs")
	assert.True(t, ok)
	assert.Equal(t, "docs", env.Name)

	_, ok = cfg.Lookup("missing")
	assert.False(t, ok)

	_, err = Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}
