package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/leveledit/pkg/domain"
)

// Store implements ports.SceneStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Scene
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Scene),
	}
}

// Save stores a deep copy of the scene.
func (s *Store) Save(ctx context.Context, name string, scene *domain.Scene) error {
	copied := scene.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load returns a copy so callers can't mutate store state through the pointer.
func (s *Store) Load(ctx context.Context, name string) (*domain.Scene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scene, ok := s.data[name]
	if !ok {
		return nil, domain.ErrSceneNotFound
	}
	return scene.Clone(), nil
}

// Delete removes the scene.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored level names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
