package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	runner := NewRunner()
	runner.Register("echo_args", "sh", "-c", `echo "$0:$ENVSWITCH_ENV_NAME"`)

	t.Run("Executes Registered Command", func(t *testing.T) {
		result, err := runner.Execute(context.Background(), Call{
			Name: "echo_args",
			Args: []string{"first"},
			Env:  map[string]string{"env_name": "dev"},
		})
		require.NoError(t, err)
		assert.Equal(t, "first:dev", result.Stdout)
	})

	t.Run("Fails For Unregistered Command", func(t *testing.T) {
		_, err := runner.Execute(context.Background(), Call{Name: "hacker_script"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not registered")
	})

	t.Run("Arguments Are Not Shell-Expanded", func(t *testing.T) {
		runner.Register("printf", "printf", "%s")
		result, err := runner.Execute(context.Background(), Call{Name: "printf", Args: []string{"$(id); echo pwned"}})
		require.NoError(t, err)
		assert.Equal(t, "$(id); echo pwned", result.Stdout)
	})

	t.Run("Non-Zero Exit Carries Stderr", func(t *testing.T) {
		runner.Register("fail", "sh", "-c", "echo broken >&2; exit 3")
		_, err := runner.Execute(context.Background(), Call{Name: "fail"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})
}

func TestRunner_WorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses pwd")
	}

	base := t.TempDir()
	apps := filepath.Join(base, "applications")
	require.NoError(t, os.MkdirAll(apps, 0755))

	runner := NewRunner(WithBaseDir(base))
	runner.Register("pwd_base", "pwd")
	runner.RegisterIn("pwd_apps", apps, "pwd")

	res, err := runner.Execute(context.Background(), Call{Name: "pwd_base"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(base), filepath.Base(res.Stdout))

	res, err = runner.Execute(context.Background(), Call{Name: "pwd_apps"})
	require.NoError(t, err)
	assert.Equal(t, "applications", filepath.Base(res.Stdout))

	_, ok := runner.Lookup("pwd_apps")
	assert.True(t, ok)
}
