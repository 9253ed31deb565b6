package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRecordStoreContract runs a suite of tests to verify that a RecordStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunRecordStoreContract(t *testing.T, store RecordStore) {
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Latest On Empty Store", func(t *testing.T) {
		_, err := store.Latest(ctx)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)

		history, err := store.History(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("Save and Latest", func(t *testing.T) {
		rec := &domain.ActivationRecord{Environment: "dev", ActivatedAt: base, Renamed: 2}
		require.NoError(t, store.Save(ctx, rec), "Save should not return error")

		latest, err := store.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "dev", latest.Environment)
		assert.Equal(t, 2, latest.Renamed)
		assert.True(t, base.Equal(latest.ActivatedAt))
	})

	t.Run("History Is Newest First", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &domain.ActivationRecord{Environment: "ops", ActivatedAt: base.Add(time.Minute)}))
		require.NoError(t, store.Save(ctx, &domain.ActivationRecord{Environment: "docs", ActivatedAt: base.Add(2 * time.Minute), Failed: 1}))

		history, err := store.History(ctx, 0)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, "docs", history[0].Environment)
		assert.Equal(t, "ops", history[1].Environment)
		assert.Equal(t, "dev", history[2].Environment)

		limited, err := store.History(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)

		latest, err := store.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "docs", latest.Environment)
		assert.Equal(t, 1, latest.Failed)
	})
}
