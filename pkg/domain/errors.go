package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSceneNotFound is returned when a scene file or stored scene does not exist.
	ErrSceneNotFound = errors.New("scene not found")

	// ErrUnsupportedVersion is returned for scene documents of an unknown version.
	ErrUnsupportedVersion = errors.New("unsupported scene version")

	// ErrInvalidHeader is returned when a scene file does not start with the fixed header.
	ErrInvalidHeader = errors.New("invalid scene header")

	// ErrMalformedRecord is returned when a record or document cannot be parsed.
	ErrMalformedRecord = errors.New("malformed scene record")

	ErrMissingID       = errors.New("object has no id")
	ErrMissingType     = errors.New("object has no type")
	ErrDuplicateObject = errors.New("duplicate object id")
	ErrDanglingParent  = errors.New("unknown parent")
	ErrParentCycle     = errors.New("parent cycle")
	ErrInvalidUTF8     = errors.New("invalid UTF-8")

	// ErrInvalidName is returned by stores for level names they cannot hold.
	ErrInvalidName = errors.New("invalid level name")
)

// Kind classifies a persistence failure so callers can react to it.
type Kind string

const (
	KindWrite    Kind = "write"     // opening, writing, syncing or renaming the target
	KindCollect  Kind = "collect"   // the object manager failed to produce records
	KindNotFound Kind = "not_found" // the scene file could not be located
	KindRead     Kind = "read"      // the scene file exists but could not be read
	KindDecode   Kind = "decode"    // malformed header, record or document
	KindInvalid  Kind = "invalid"   // records violate scene invariants
	KindRestore  Kind = "restore"   // the object manager rejected the loaded scene
)

// PersistError reports a failed save or load.
type PersistError struct {
	Op   string // "save" or "load"
	Kind Kind
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a PersistError of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *PersistError
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
