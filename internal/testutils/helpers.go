package testutils

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/stretchr/testify/require"
)

// Rename records one call to FakeClient.RenameWorkspace.
type Rename struct {
	From string
	To   string
}

// FakeClient is an in-memory ports.WorkspaceClient.
// RenameErrs maps a source name to the error its rename should return.
type FakeClient struct {
	Workspaces []domain.LiveWorkspace
	QueryErr   error
	RenameErrs map[string]error

	mu         sync.Mutex
	QueryCalls int
	Renames    []Rename
}

// GetWorkspaces returns the configured workspaces or QueryErr.
func (f *FakeClient) GetWorkspaces(ctx context.Context) ([]domain.LiveWorkspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.QueryCalls++
	if f.QueryErr != nil {
		return nil, f.QueryErr
	}
	return append([]domain.LiveWorkspace(nil), f.Workspaces...), nil
}

// RenameWorkspace records the call and returns the configured error for from.
// A successful rename is applied to Workspaces, like a real window manager.
func (f *FakeClient) RenameWorkspace(ctx context.Context, from, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Renames = append(f.Renames, Rename{From: from, To: to})
	if err, ok := f.RenameErrs[from]; ok {
		return err
	}
	for i := range f.Workspaces {
		if f.Workspaces[i].Name == from {
			f.Workspaces[i].Name = to
			break
		}
	}
	return nil
}

// RenameCalls returns the number of rename calls so far.
func (f *FakeClient) RenameCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Renames)
}

// WriteFile writes content under dir, creating parent directories.
// It fails the test immediately on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "Failed to create parent dir")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	return path
}
