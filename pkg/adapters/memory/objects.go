package memory

import (
	"context"
	"sync"

	"github.com/aretw0/leveledit/pkg/domain"
)

// Objects is a headless ports.ObjectManager that keeps scene objects in memory.
// It backs the CLI and tests, where no editor is running.
type Objects struct {
	mu      sync.Mutex
	objects []domain.Object
}

// NewObjects creates an object manager holding copies of objects.
func NewObjects(objects ...domain.Object) *Objects {
	o := &Objects{}
	o.Set(objects)
	return o
}

// Set replaces the managed objects.
func (o *Objects) Set(objects []domain.Object) {
	copied := make([]domain.Object, len(objects))
	for i, obj := range objects {
		copied[i] = obj.Clone()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.objects = copied
}

// Add appends an object.
func (o *Objects) Add(obj domain.Object) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.objects = append(o.objects, obj.Clone())
}

// Objects returns a copy of the managed objects.
func (o *Objects) Objects() []domain.Object {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]domain.Object, len(o.objects))
	for i, obj := range o.objects {
		out[i] = obj.Clone()
	}
	return out
}

// SaveData implements ports.ObjectManager.
func (o *Objects) SaveData(ctx context.Context) ([]domain.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return o.Objects(), nil
}

// Restore implements ports.ObjectManager by replacing the managed objects.
func (o *Objects) Restore(ctx context.Context, scene *domain.Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.Set(scene.Objects)
	return nil
}
