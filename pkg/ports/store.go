package ports

import (
	"context"

	"github.com/aretw0/leveledit/pkg/domain"
)

// SceneStore persists whole scenes under a level name.
type SceneStore interface {
	// Save persists the scene, replacing any previous version.
	Save(ctx context.Context, name string, scene *domain.Scene) error

	// Load retrieves a scene.
	// Returns domain.ErrSceneNotFound if the level does not exist.
	Load(ctx context.Context, name string) (*domain.Scene, error)

	// Delete removes a scene. Deleting a missing level is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored levels.
	List(ctx context.Context) ([]string, error)
}
