package level_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/leveledit/pkg/adapters/memory"
	"github.com/aretw0/leveledit/pkg/adapters/redis"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/aretw0/leveledit/pkg/level"
	"github.com/aretw0/leveledit/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CheckoutIsExclusivePerLevel(t *testing.T) {
	m := level.NewManager(memory.NewStore())
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Checkout(ctx, "castle", func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					cur := atomic.LoadInt32(&maxInside)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestManager_DifferentLevelsDoNotBlock(t *testing.T) {
	m := level.NewManager(memory.NewStore())
	ctx := context.Background()

	entered := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = m.Checkout(ctx, "a", func(ctx context.Context) error {
			close(entered)
			<-done
			return nil
		})
	}()
	<-entered

	err := m.Checkout(ctx, "b", func(ctx context.Context) error { return nil })
	close(done)
	assert.NoError(t, err)
}

func TestManager_LoadOrCreate(t *testing.T) {
	store := memory.NewStore()
	m := level.NewManager(store)
	ctx := context.Background()

	scene, err := m.LoadOrCreate(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh", scene.Name)

	names, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, names)

	scene.Objects = append(scene.Objects, domain.Object{ID: "x", Type: domain.TypeGroup})
	require.NoError(t, m.Save(ctx, "fresh", scene))

	again, err := m.LoadOrCreate(ctx, "fresh")
	require.NoError(t, err)
	assert.Len(t, again.Objects, 1)
}

func TestManager_SaveValidates(t *testing.T) {
	m := level.NewManager(memory.NewStore())
	err := m.Save(context.Background(), "bad", domain.NewScene("bad", domain.Object{ID: "a"}))

	assert.True(t, domain.IsKind(err, domain.KindInvalid))
	_, err = m.Load(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	return nil, errors.New("lock service down")
}

func TestManager_LockerFailure(t *testing.T) {
	m := level.NewManager(memory.NewStore(), level.WithLocker(failingLocker{}))

	called := false
	err := m.Checkout(context.Background(), "castle", func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "lock service down")
	assert.False(t, called)
}

func TestManager_WithRedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewFromClient(client)
	m := level.NewManager(store, level.WithLocker(redis.NewLocker(client, "leveledit:")), level.WithLockTTL(time.Minute))
	ctx := context.Background()

	err := m.Checkout(ctx, "castle", func(ctx context.Context) error {
		assert.True(t, mr.Exists("leveledit:lock:castle"))
		return store.Save(ctx, "castle", domain.NewScene("castle"))
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("leveledit:lock:castle"))

	scene, err := m.Load(ctx, "castle")
	require.NoError(t, err)
	assert.Equal(t, "castle", scene.Name)
}

func TestManager_Hooks(t *testing.T) {
	var events []*domain.PersistEvent
	record := func(ctx context.Context, e *domain.PersistEvent) { events = append(events, e) }

	m := level.NewManager(memory.NewStore(), level.WithHooks(domain.PersistHooks{OnSave: record, OnLoad: record}))
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, "castle", domain.NewScene("castle", domain.Object{ID: "a", Type: domain.TypeGroup})))
	_, err := m.Load(ctx, "castle")
	require.NoError(t, err)
	_, err = m.Load(ctx, "ghost")
	require.Error(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, domain.OpSave, events[0].Op)
	assert.Equal(t, 1, events[0].Objects)
	assert.Equal(t, "castle", events[1].Path)
	assert.ErrorIs(t, events[2].Err, domain.ErrSceneNotFound)
	assert.Zero(t, events[2].Objects)
}
