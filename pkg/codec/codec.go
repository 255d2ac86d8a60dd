// Package codec implements the on-disk scene formats.
//
// Two formats are supported and selected by file extension:
//
//   - Lines (".scene"): a fixed four-line header followed by one JSON record per
//     object, one per line.
//   - YAML (".yaml", ".yml"): a single versioned scene document.
//
// Both are inert data. Decoding never evaluates the file's content.
package codec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/leveledit/pkg/domain"
)

// ErrUnknownFormat is returned when no codec is registered for an extension.
var ErrUnknownFormat = errors.New("unknown scene format")

// Codec reads and writes scenes in one file format.
type Codec interface {
	Encode(w io.Writer, scene *domain.Scene) error
	Decode(r io.Reader) (*domain.Scene, error)
	// Extensions lists the file extensions (with leading dot) handled by the codec.
	Extensions() []string
}

// Default is the codec used when a path carries no known extension.
var Default Codec = Lines{}

var registry = []Codec{Lines{}, YAML{}}

// Extensions returns every known scene extension, in lookup order.
func Extensions() []string {
	var exts []string
	for _, c := range registry {
		exts = append(exts, c.Extensions()...)
	}
	return exts
}

// ForExtension returns the codec registered for ext (".scene", ".yaml"...).
func ForExtension(ext string) (Codec, error) {
	ext = strings.ToLower(ext)
	for _, c := range registry {
		for _, e := range c.Extensions() {
			if e == ext {
				return c, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// ForPath returns the codec for path's extension, or Default when it has none.
func ForPath(path string) (Codec, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return Default, nil
	}
	return ForExtension(ext)
}

// SplitPath splits a scene path into its directory, level name and known extension.
// An unknown extension is kept as part of the name.
func SplitPath(path string) (dir, name, ext string) {
	dir, name = filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	dir = filepath.Clean(dir)

	e := filepath.Ext(name)
	if _, err := ForExtension(e); e != "" && err == nil {
		return dir, strings.TrimSuffix(name, e), e
	}
	return dir, name, ""
}

// Resolve locates the scene file for path within its directory. When path has a known
// extension only that file is considered; otherwise each known extension is tried in
// order. It returns the located file and its codec, or domain.ErrSceneNotFound.
func Resolve(path string) (string, Codec, error) {
	dir, name, ext := SplitPath(path)
	if name == "" {
		return "", nil, fmt.Errorf("%w: empty level name in %q", domain.ErrSceneNotFound, path)
	}

	candidates := []string{ext}
	if ext == "" {
		candidates = Extensions()
	}

	for _, e := range candidates {
		file := filepath.Join(dir, name+e)
		info, err := os.Stat(file)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", nil, err
		}
		if info.IsDir() {
			continue
		}
		c, err := ForExtension(e)
		if err != nil {
			return "", nil, err
		}
		return file, c, nil
	}

	return "", nil, fmt.Errorf("%w: %s in %s", domain.ErrSceneNotFound, name, dir)
}
