package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/envswitch/internal/adapters/file"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/aretw0/envswitch/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "state"))
	ports.RunRecordStoreContract(t, store)
}

func TestFileStore_Limit(t *testing.T) {
	store := file.New(t.TempDir())
	store.Limit = 2
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, &domain.ActivationRecord{Environment: name, ActivatedAt: time.Now()}))
	}

	history, err := store.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "c", history[0].Environment)
	assert.Equal(t, "b", history[1].Environment)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "activations.json"), []byte("{"), 0644))

	_, err := file.New(dir).Latest(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yml")

	require.NoError(t, file.WriteAtomic(path, []byte("first"), 0644))
	require.NoError(t, file.WriteAtomic(path, []byte("second"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	err = file.WriteAtomic(filepath.Join(dir, "missing", "x"), []byte("x"), 0644)
	assert.Error(t, err)
}
