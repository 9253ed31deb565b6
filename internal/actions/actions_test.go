package actions_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/envswitch/internal/actions"
	"github.com/aretw0/envswitch/internal/testutils"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettings(t *testing.T) actions.Settings {
	t.Helper()
	return actions.Settings{
		BaseDir: t.TempDir(),
		HomeDir: t.TempDir(),
		Global:  map[string]any{"editor": "emacs"},
	}
}

func TestTmuxinator_WritesRenderedTemplate(t *testing.T) {
	s := newSettings(t)
	testutils.WriteFile(t, s.BaseDir, "templates/tmuxinator.yml",
		"name: {{ .Name }}\nroot: {{ .WorkingDir }}\neditor: {{ .Global.editor }}\n")

	action := actions.NewTmuxinator(s)
	env := domain.Environment{Name: "dev", Tmuxinator: true}

	res := action.Run(context.Background(), env)
	require.NoError(t, res.Err)
	assert.True(t, res.OK())

	expected := filepath.Join(s.HomeDir, ".config", "tmuxinator", "dev.yml")
	assert.Equal(t, expected, res.Output)

	data, err := os.ReadFile(expected)
	require.NoError(t, err)
	assert.Equal(t, "name: dev\nroot: ~/\neditor: emacs\n", string(data))
}

func TestTemplateAction_MissingTemplateSkips(t *testing.T) {
	s := newSettings(t)
	action := actions.NewChromium(s)
	env := domain.Environment{Name: "dev", ChromiumDatadir: true}

	res := action.Run(context.Background(), env)
	assert.NoError(t, res.Err)
	assert.Contains(t, res.Skipped, "chromium-datadir.desktop")
	assert.False(t, res.OK())

	_, err := os.Stat(action.Target(env))
	assert.True(t, os.IsNotExist(err), "no file is written without a template")
}

func TestTemplateAction_RenderError(t *testing.T) {
	s := newSettings(t)
	testutils.WriteFile(t, s.BaseDir, "templates/chromium-datadir.desktop", "Name={{ .Name ")

	res := actions.NewChromium(s).Run(context.Background(), domain.Environment{Name: "dev"})
	assert.Error(t, res.Err)
}

func TestChromium_TargetPath(t *testing.T) {
	s := newSettings(t)
	action := actions.NewChromium(s)
	assert.Equal(t,
		filepath.Join(s.HomeDir, ".local", "share", "applications", "chromium-work.desktop"),
		action.Target(domain.Environment{Name: "work"}))
}

func TestSpacemacs(t *testing.T) {
	t.Run("missing script is skipped", func(t *testing.T) {
		s := newSettings(t)
		res := actions.NewSpacemacs(s).Run(context.Background(), domain.Environment{Name: "dev", Spacemacs: true})
		assert.NoError(t, res.Err)
		assert.Contains(t, res.Skipped, "generate_emacs_desktop_file.sh")
	})

	t.Run("runs script with environment name in applications dir", func(t *testing.T) {
		s := newSettings(t)
		script := testutils.WriteFile(t, s.BaseDir, "bin/generate_emacs_desktop_file.sh",
			"#!/bin/sh\necho \"$1 $(basename \"$PWD\") $ENVSWITCH_ENV\"\n")
		require.NoError(t, os.Chmod(script, 0o755))

		res := actions.NewSpacemacs(s).Run(context.Background(), domain.Environment{Name: "dev", Spacemacs: true})
		require.NoError(t, res.Err)
		assert.Equal(t, "dev applications dev", res.Output)
	})

	t.Run("script failure is reported", func(t *testing.T) {
		s := newSettings(t)
		script := testutils.WriteFile(t, s.BaseDir, "bin/generate_emacs_desktop_file.sh", "#!/bin/sh\nexit 3\n")
		require.NoError(t, os.Chmod(script, 0o755))

		res := actions.NewSpacemacs(s).Run(context.Background(), domain.Environment{Name: "dev", Spacemacs: true})
		assert.Error(t, res.Err)
	})
}
