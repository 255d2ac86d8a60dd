package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/leveledit/pkg/domain"
	"gopkg.in/yaml.v3"
)

// YAML is the document scene format, convenient for hand-authored levels.
type YAML struct{}

func (YAML) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAML) Encode(w io.Writer, scene *domain.Scene) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(scene); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return enc.Close()
}

func (YAML) Decode(r io.Reader) (*domain.Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var scene domain.Scene
	if err := dec.Decode(&scene); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", domain.ErrMalformedRecord)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	if scene.Version != domain.CurrentVersion {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedVersion, scene.Version)
	}
	if scene.Objects == nil {
		scene.Objects = []domain.Object{}
	}
	for i := range scene.Objects {
		if p := scene.Objects[i].Properties; p != nil {
			scene.Objects[i].Properties = jsonNumbers(p).(map[string]any)
		}
	}
	return &scene, nil
}

// jsonNumbers converts the integers yaml.v3 produces to float64 so that properties
// decode to the same types as in the line format.
func jsonNumbers(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case map[string]any:
		for k, e := range t {
			t[k] = jsonNumbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = jsonNumbers(e)
		}
	}
	return v
}
