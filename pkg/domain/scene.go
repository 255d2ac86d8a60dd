package domain

import (
	"fmt"
	"unicode/utf8"
)

// CurrentVersion is the scene format version written by this module.
const CurrentVersion = 1

// Scene is the full set of records persisted for one level.
type Scene struct {
	Name    string   `json:"name" yaml:"name"`
	Version int      `json:"version" yaml:"version"`
	Objects []Object `json:"objects" yaml:"objects"`
}

// NewScene creates an empty scene at the current format version.
func NewScene(name string, objects ...Object) *Scene {
	return &Scene{
		Name:    name,
		Version: CurrentVersion,
		Objects: objects,
	}
}

// Clone returns a deep copy of the scene.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}
	c := &Scene{Name: s.Name, Version: s.Version}
	if s.Objects != nil {
		c.Objects = make([]Object, len(s.Objects))
		for i, o := range s.Objects {
			c.Objects[i] = o.Clone()
		}
	}
	return c
}

// Lookup returns the object with the given ID.
func (s *Scene) Lookup(id string) (Object, bool) {
	for _, o := range s.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return Object{}, false
}

// Validate checks the scene's structural invariants: a supported version, non-empty
// unique IDs, non-empty types, parents that resolve within the scene and no parent
// cycles.
func (s *Scene) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}

	parents := make(map[string]string, len(s.Objects))
	for i, o := range s.Objects {
		if o.ID == "" {
			return fmt.Errorf("object %d: %w", i, ErrMissingID)
		}
		if o.Type == "" {
			return fmt.Errorf("object %q: %w", o.ID, ErrMissingType)
		}
		if err := o.checkUTF8(); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
		if _, dup := parents[o.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateObject, o.ID)
		}
		parents[o.ID] = o.Parent
	}

	for id, parent := range parents {
		if parent == "" {
			continue
		}
		if _, ok := parents[parent]; !ok {
			return fmt.Errorf("object %q: %w %q", id, ErrDanglingParent, parent)
		}
	}

	// Each object is walked once: a chain stops at the first object already proven
	// to reach the root.
	const (
		visiting = 1
		rooted   = 2
	)
	state := make(map[string]int, len(parents))
	var chain []string
	for id := range parents {
		chain = chain[:0]
		cur := id
		for cur != "" && state[cur] != rooted {
			if state[cur] == visiting {
				return fmt.Errorf("%w at %q", ErrParentCycle, cur)
			}
			state[cur] = visiting
			chain = append(chain, cur)
			cur = parents[cur]
		}
		for _, c := range chain {
			state[c] = rooted
		}
	}

	return nil
}

func (o *Object) checkUTF8() error {
	fields := [...]struct{ name, value string }{
		{"id", o.ID}, {"type", o.Type}, {"name", o.Name}, {"model", o.Model}, {"parent", o.Parent},
	}
	for _, f := range fields {
		if !utf8.ValidString(f.value) {
			return fmt.Errorf("%w: %s", ErrInvalidUTF8, f.name)
		}
	}
	if !validUTF8Value(o.Properties) {
		return fmt.Errorf("%w: properties", ErrInvalidUTF8)
	}
	return nil
}

func validUTF8Value(v any) bool {
	switch t := v.(type) {
	case string:
		return utf8.ValidString(t)
	case map[string]any:
		for k, e := range t {
			if !utf8.ValidString(k) || !validUTF8Value(e) {
				return false
			}
		}
	case []any:
		for _, e := range t {
			if !validUTF8Value(e) {
				return false
			}
		}
	}
	return true
}
