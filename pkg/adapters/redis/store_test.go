package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/leveledit/pkg/adapters/redis"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/aretw0/leveledit/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunSceneStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("studio:"))

	require.NoError(t, store.Save(context.Background(), "hub", domain.NewScene("hub")))
	assert.True(t, mr.Exists("studio:scene:hub"))
	assert.True(t, mr.Exists("studio:index"))
}

func TestRedisStore_TTL(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "draft", domain.NewScene("draft")))
	assert.Equal(t, time.Minute, mr.TTL("leveledit:scene:draft"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "draft")
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
}
