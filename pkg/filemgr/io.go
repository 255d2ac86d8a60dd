package filemgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/leveledit/pkg/codec"
	"github.com/aretw0/leveledit/pkg/domain"
)

// WriteFile encodes scene into path atomically.
// It writes to a temporary file in the same directory, fsyncs it and renames it over
// the destination, so readers never observe a partially written scene.
func WriteFile(ctx context.Context, path string, c codec.Codec, scene *domain.Scene) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure scene directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Release the handle on every path. After a successful rename the temp name no
	// longer exists and Remove is a no-op.
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := c.Encode(&ctxWriter{ctx: ctx, w: tmp}, scene); err != nil {
		return fmt.Errorf("failed to write scene: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set scene file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move scene into place: %w", err)
	}
	return nil
}

// ReadFile decodes the scene stored at path using the codec for its extension.
// The scene is named after the file when the format carries no name.
func ReadFile(ctx context.Context, path string) (*domain.Scene, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}
	return readFile(ctx, path, c)
}

func readFile(ctx context.Context, path string, c codec.Codec) (*domain.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSceneNotFound, path)
		}
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	scene, err := c.Decode(&ctxReader{ctx: ctx, r: f})
	if err != nil {
		return nil, err
	}
	if scene.Name == "" {
		_, scene.Name, _ = codec.SplitPath(path)
	}
	return scene, nil
}

type ctxWriter struct {
	ctx context.Context
	w   io.Writer
}

func (cw *ctxWriter) Write(p []byte) (int, error) {
	if err := cw.ctx.Err(); err != nil {
		return 0, err
	}
	return cw.w.Write(p)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
