package ports

import (
	"context"

	"github.com/aretw0/leveledit/pkg/domain"
)

// ObjectManager is the editor collaborator that owns the in-memory scene objects.
type ObjectManager interface {
	// SaveData returns one record per editable object, in save order.
	SaveData(ctx context.Context) ([]domain.Object, error)

	// Restore reconstructs scene state from previously saved records.
	Restore(ctx context.Context, scene *domain.Scene) error
}
