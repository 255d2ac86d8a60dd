package domain

import (
	"maps"

	"github.com/google/uuid"
)

// Well-known object types emitted by the editor's object manager.
// The set is open: a manager may emit any non-empty type.
const (
	TypeModel  = "model"
	TypeLight  = "light"
	TypeCamera = "camera"
	TypeGroup  = "group"
)

// Vec3 is a position, orientation (heading/pitch/roll) or scale triple.
type Vec3 [3]float64

// RGBA is a color with components in [0, 1].
type RGBA [4]float64

// Object is one editable scene object as serialized by the object manager.
// Each Object becomes exactly one record in a scene file.
type Object struct {
	ID     string `json:"id" yaml:"id"`
	Type   string `json:"type" yaml:"type"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Model  string `json:"model,omitempty" yaml:"model,omitempty"`
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`

	Pos   Vec3  `json:"pos" yaml:"pos,flow"`
	Hpr   Vec3  `json:"hpr" yaml:"hpr,flow"`
	Scale Vec3  `json:"scale" yaml:"scale,flow"`
	Color *RGBA `json:"color,omitempty" yaml:"color,omitempty,flow"`

	// Properties carries collaborator-defined attributes (light intensity, tags...).
	// Values must be JSON-compatible. After a load, numbers are float64, nested
	// objects are map[string]any and lists are []any, whatever the saved Go types.
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// NewObject creates an object of the given type at the origin with unit scale.
// The ID is generated.
func NewObject(typ string) Object {
	return Object{
		ID:    NewObjectID(),
		Type:  typ,
		Scale: Vec3{1, 1, 1},
	}
}

// NewObjectID returns a fresh unique object identifier.
func NewObjectID() string {
	return uuid.NewString()
}

// Clone returns a copy of o that shares no mutable state with it.
func (o Object) Clone() Object {
	c := o
	if o.Color != nil {
		col := *o.Color
		c.Color = &col
	}
	if o.Properties != nil {
		c.Properties = cloneMap(o.Properties)
	}
	return c
}

func cloneMap(m map[string]any) map[string]any {
	c := maps.Clone(m)
	for k, v := range c {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		c := make([]any, len(t))
		for i, e := range t {
			c[i] = cloneValue(e)
		}
		return c
	default:
		return v
	}
}
