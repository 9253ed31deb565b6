package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/envswitch/internal/logging"
	"github.com/aretw0/envswitch/internal/testutils"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	logger := logging.NewNop()

	t.Run("Returns Backend Order", func(t *testing.T) {
		client := &testutils.FakeClient{Workspaces: []domain.LiveWorkspace{
			{Name: "3:misc"},
			{Name: "1", Visible: true, Focused: true},
		}}

		live := Query(context.Background(), client, logger)
		require.Len(t, live, 2)
		assert.Equal(t, "3:misc", live[0].Name)
		assert.True(t, live[1].Focused)
	})

	t.Run("Degrades To Empty On Failure", func(t *testing.T) {
		client := &testutils.FakeClient{QueryErr: errors.New("i3 socket not found")}

		live := Query(context.Background(), client, logger)
		assert.NotNil(t, live)
		assert.Empty(t, live)
	})
}

type panicClient struct{ testutils.FakeClient }

func (p *panicClient) RenameWorkspace(ctx context.Context, from, to string) error {
	if from == "3" {
		panic("boom")
	}
	return p.FakeClient.RenameWorkspace(ctx, from, to)
}

func TestRenamer_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure Does Not Suppress Later Slots", func(t *testing.T) {
		client := &testutils.FakeClient{RenameErrs: map[string]error{
			"3": errors.New("exit status 2"),
		}}
		ops := []domain.RenameOperation{
			{Slot: 3, Source: "3", Target: "3:mail"},
			{Slot: 4, Source: "4", Target: "4:chat"},
		}

		results := NewRenamer(client).Apply(ctx, ops)
		require.Len(t, results, 2)
		assert.Error(t, results[0].Err)
		assert.NoError(t, results[1].Err)
		assert.Equal(t, []testutils.Rename{{From: "3", To: "3:mail"}, {From: "4", To: "4:chat"}}, client.Renames)
	})

	t.Run("Empty Batch Is A No-op", func(t *testing.T) {
		client := &testutils.FakeClient{}
		results := NewRenamer(client).Apply(ctx, nil)
		assert.Empty(t, results)
		assert.Zero(t, client.RenameCalls())
	})

	t.Run("Dry Run Does Not Submit", func(t *testing.T) {
		client := &testutils.FakeClient{}
		var hooked []domain.RenameResult
		r := NewRenamer(client, WithDryRun(true), WithResultHook(func(_ context.Context, res domain.RenameResult) {
			hooked = append(hooked, res)
		}))

		results := r.Apply(ctx, []domain.RenameOperation{{Slot: 1, Source: "1", Target: "1:code"}})
		require.Len(t, results, 1)
		assert.True(t, results[0].Planned)
		assert.True(t, results[0].OK())
		assert.Zero(t, client.RenameCalls())
		assert.Len(t, hooked, 1)
	})

	t.Run("Panicking Client Is Contained", func(t *testing.T) {
		client := &panicClient{}
		ops := []domain.RenameOperation{
			{Slot: 3, Source: "3", Target: "3:mail"},
			{Slot: 4, Source: "4", Target: "4:chat"},
		}

		results := NewRenamer(client).Apply(ctx, ops)
		require.Len(t, results, 2)
		assert.ErrorIs(t, results[0].Err, domain.ErrRenameFailed)
		assert.NoError(t, results[1].Err)
	})
}
