package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/envswitch/internal/logging"
	"github.com/aretw0/envswitch/internal/testutils"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalog = `
environments:
  - name: dev
    role: backend
  - name: notes
`

func baseOptions(t *testing.T) Options {
	t.Helper()
	noColor := false
	return Options{
		ConfigPath: testutils.WriteFile(t, t.TempDir(), "ENVIRONMENTS.yaml", catalog),
		StateDir:   t.TempDir(),
		Out:        &bytes.Buffer{},
		Color:      &noColor,
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(baseOptions(t))
	require.NoError(t, err)
	defer app.Close()

	assert.Len(t, app.Engine.Environments(), 2)
}

func TestNewApp_UnknownWM(t *testing.T) {
	opts := baseOptions(t)
	opts.WM = "gnome"
	_, err := NewApp(opts)
	assert.ErrorContains(t, err, "unknown window manager")
}

func TestNewApp_MissingConfig(t *testing.T) {
	opts := baseOptions(t)
	opts.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := NewApp(opts)
	assert.Error(t, err)
}

func TestNewApp_FileStoreRecordsSwitch(t *testing.T) {
	opts := baseOptions(t)
	app, err := NewApp(opts)
	require.NoError(t, err)

	// "notes" has no workspace mapping, so no window manager is contacted.
	_, err = app.Engine.Switch(context.Background(), "notes")
	require.NoError(t, err)
	require.NoError(t, app.Close())

	again, err := NewApp(opts)
	require.NoError(t, err)
	defer again.Close()
	rec, err := again.Engine.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "notes", rec.Environment)
}

func TestNewApp_RedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	opts := baseOptions(t)
	opts.RedisAddr = mr.Addr()
	app, err := NewApp(opts)
	require.NoError(t, err)

	_, err = app.Engine.Switch(context.Background(), "notes")
	require.NoError(t, err)
	assert.True(t, mr.Exists("envswitch:activations"))
	assert.False(t, mr.Exists("envswitch:lock:activation"), "lock is released after the switch")
	require.NoError(t, app.Close())
}

func TestApp_CloseWritesMetrics(t *testing.T) {
	opts := baseOptions(t)
	opts.MetricsTextfile = filepath.Join(t.TempDir(), "envswitch.prom")
	app, err := NewApp(opts)
	require.NoError(t, err)

	_, err = app.Engine.Switch(context.Background(), "notes")
	require.NoError(t, err)
	require.NoError(t, app.Close())

	data, err := os.ReadFile(opts.MetricsTextfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `envswitch_activations_total{environment="notes",result="success"} 1`)
}

func TestCreateDebugHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := createDebugHooks(logging.NewWithWriter(&buf, slog.LevelDebug))

	hooks.OnRename(context.Background(), &domain.RenameEvent{
		EventBase:   domain.EventBase{Timestamp: time.Now(), Type: domain.EventRename},
		Environment: "dev",
		Result:      domain.RenameResult{Operation: domain.RenameOperation{Slot: 1, Source: "1", Target: "1:code"}},
	})
	assert.Contains(t, buf.String(), "target=1:code")
}
