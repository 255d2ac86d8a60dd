package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/leveledit/pkg/adapters/file"
	"github.com/aretw0/leveledit/pkg/codec"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/aretw0/leveledit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSceneStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_YAMLContract(t *testing.T) {
	store := file.New(t.TempDir())
	store.Codec = codec.YAML{}
	ports.RunSceneStoreContract(t, store)
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "..", "../escape", `a\b`} {
		err := store.Save(ctx, name, domain.NewScene(name))
		assert.ErrorIs(t, err, file.ErrInvalidName, name)
	}
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alpha", domain.NewScene("alpha")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-beta.scene-123"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "gamma.scene"), 0o755))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, names)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "not-yet"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
