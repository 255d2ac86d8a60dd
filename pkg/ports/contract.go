package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSceneStoreContract runs a suite of tests to verify that a SceneStore implementation
// adheres to the interface contract.
func RunSceneStoreContract(t *testing.T, store SceneStore) {
	ctx := context.Background()
	name := "contract-level-" + time.Now().Format("20060102150405")

	fixture := func(level string) *domain.Scene {
		lamp := domain.Object{
			ID:         "lamp",
			Type:       domain.TypeLight,
			Parent:     "room",
			Pos:        domain.Vec3{1, 2, 3},
			Scale:      domain.Vec3{1, 1, 1},
			Color:      &domain.RGBA{1, 0.5, 0.25, 1},
			Properties: map[string]any{"intensity": 0.75, "label": "ceiling"},
		}
		room := domain.Object{
			ID:    "room",
			Type:  domain.TypeModel,
			Model: "models/room.egg",
			Hpr:   domain.Vec3{90, 0, 0},
			Scale: domain.Vec3{2, 2, 2},
		}
		return domain.NewScene(level, room, lamp)
	}

	t.Run("Save and Load", func(t *testing.T) {
		scene := fixture(name)

		err := store.Save(ctx, name, scene)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, scene.Version, loaded.Version)
		require.Len(t, loaded.Objects, 2)
		assert.Equal(t, scene.Objects[0], loaded.Objects[0])
		assert.Equal(t, "lamp", loaded.Objects[1].ID)
		assert.Equal(t, "room", loaded.Objects[1].Parent)
		assert.Equal(t, *scene.Objects[1].Color, *loaded.Objects[1].Color)
		assert.Equal(t, "ceiling", loaded.Objects[1].Properties["label"])
		// JSON-backed stores decode numbers as float64.
		assert.EqualValues(t, 0.75, loaded.Objects[1].Properties["intensity"])
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, fixture(name)))
		require.NoError(t, store.Save(ctx, name, domain.NewScene(name)))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Empty(t, loaded.Objects)
	})

	t.Run("Load isolation", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, fixture(name)))

		first, err := store.Load(ctx, name)
		require.NoError(t, err)
		first.Objects[0].Pos[0] = 99

		second, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 0.0, second.Objects[0].Pos[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, fixture(name)))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrSceneNotFound, "Load after Delete should return ErrSceneNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing level should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, id1, fixture(id1)))
		require.NoError(t, store.Save(ctx, id2, fixture(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		levels, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, levels, id1)
		assert.Contains(t, levels, id2)
	})
}
