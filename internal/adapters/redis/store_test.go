package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/envswitch/internal/adapters/redis"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/aretw0/envswitch/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ports.RunRecordStoreContract(t, store)
}

func TestRedisStore_LimitAndTTL(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithLimit(2), redis.WithTTL(time.Minute), redis.WithPrefix("test:"))
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, &domain.ActivationRecord{Environment: name}))
	}

	history, err := store.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "c", history[0].Environment)

	assert.True(t, mr.Exists("test:activations"))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("test:activations"), "history should expire")

	_, err = store.Latest(ctx)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
