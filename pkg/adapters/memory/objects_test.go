package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/leveledit/pkg/adapters/memory"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjects_SaveDataIsolation(t *testing.T) {
	objs := memory.NewObjects(domain.Object{ID: "a", Type: domain.TypeGroup, Properties: map[string]any{"k": "v"}})

	data, err := objs.SaveData(context.Background())
	require.NoError(t, err)
	data[0].Properties["k"] = "changed"

	assert.Equal(t, "v", objs.Objects()[0].Properties["k"])
}

func TestObjects_Restore(t *testing.T) {
	objs := memory.NewObjects(domain.Object{ID: "old", Type: domain.TypeGroup})

	scene := domain.NewScene("lvl", domain.Object{ID: "new", Type: domain.TypeCamera})
	require.NoError(t, objs.Restore(context.Background(), scene))

	got := objs.Objects()
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestObjects_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	objs := memory.NewObjects()
	_, err := objs.SaveData(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, objs.Restore(ctx, domain.NewScene("x")), context.Canceled)
}
