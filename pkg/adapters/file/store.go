package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/leveledit/pkg/codec"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/aretw0/leveledit/pkg/filemgr"
)

// ErrInvalidName is returned for level names that would escape the store directory.
var ErrInvalidName = domain.ErrInvalidName

// Store implements ports.SceneStore using the local filesystem.
// Each level is one scene file in BasePath.
type Store struct {
	BasePath string
	Codec    codec.Codec
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".leveledit/levels".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".leveledit", "levels")
	}
	return &Store{BasePath: basePath, Codec: codec.Default}
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.BasePath, name+s.Codec.Extensions()[0]), nil
}

// Save writes the scene atomically.
func (s *Store) Save(ctx context.Context, name string, scene *domain.Scene) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	return filemgr.WriteFile(ctx, p, s.Codec, scene)
}

// Load reads the scene file for name.
func (s *Store) Load(ctx context.Context, name string) (*domain.Scene, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	scene, err := filemgr.ReadFile(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrSceneNotFound) {
			return nil, domain.ErrSceneNotFound
		}
		return nil, fmt.Errorf("failed to read level %q: %w", name, err)
	}
	scene.Name = name
	return scene, nil
}

// Delete removes the scene file.
func (s *Store) Delete(ctx context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete level file: %w", err)
	}
	return nil
}

// List returns all stored level names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	ext := s.Codec.Extensions()[0]
	names := []string{}
	for _, entry := range entries {
		name := entry.Name()
		// Skip in-flight temp files from WriteFile.
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ext {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	sort.Strings(names)
	return names, nil
}
