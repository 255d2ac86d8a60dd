package codec_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/leveledit/pkg/codec"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path                  string
		dir, name, extension string
	}{
		{"levels/castle.scene", "levels", "castle", ".scene"},
		{"levels/castle.YML", "levels", "castle", ".YML"},
		{"castle", ".", "castle", ""},
		{"/abs/dir/castle.v2", "/abs/dir", "castle.v2", ""},
		{"dir/", "dir", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			dir, name, ext := codec.SplitPath(tt.path)
			assert.Equal(t, tt.dir, dir)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.extension, ext)
		})
	}
}

func TestForPath(t *testing.T) {
	c, err := codec.ForPath("a/b.yaml")
	require.NoError(t, err)
	assert.IsType(t, codec.YAML{}, c)

	c, err = codec.ForPath("a/b")
	require.NoError(t, err)
	assert.IsType(t, codec.Lines{}, c)

	_, err = codec.ForPath("a/b.py")
	assert.ErrorIs(t, err, codec.ErrUnknownFormat)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hall.yml"), []byte("version: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cave.scene"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "attic.scene"), 0o755))

	t.Run("bare name searches extensions", func(t *testing.T) {
		file, c, err := codec.Resolve(filepath.Join(dir, "hall"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "hall.yml"), file)
		assert.IsType(t, codec.YAML{}, c)
	})

	t.Run("explicit extension", func(t *testing.T) {
		file, c, err := codec.Resolve(filepath.Join(dir, "cave.scene"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "cave.scene"), file)
		assert.IsType(t, codec.Lines{}, c)
	})

	t.Run("explicit extension does not fall back", func(t *testing.T) {
		_, _, err := codec.Resolve(filepath.Join(dir, "hall.scene"))
		assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	})

	t.Run("directories are skipped", func(t *testing.T) {
		_, _, err := codec.Resolve(filepath.Join(dir, "attic"))
		assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := codec.Resolve(filepath.Join(dir, "nowhere"))
		assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	})
}
