package filemgr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/leveledit/internal/logging"
	"github.com/aretw0/leveledit/pkg/codec"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/aretw0/leveledit/pkg/ports"
)

// Manager saves and loads the scene owned by an object manager.
type Manager struct {
	objects ports.ObjectManager
	codec   codec.Codec
	hooks   domain.PersistHooks
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures the logger used to report save and load outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks domain.PersistHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithCodec sets the format used for paths without a known scene extension
// (default: codec.Default).
func WithCodec(c codec.Codec) Option {
	return func(m *Manager) {
		m.codec = c
	}
}

// New creates a Manager bound to the editor's object manager.
func New(objects ports.ObjectManager, opts ...Option) *Manager {
	m := &Manager{
		objects: objects,
		codec:   codec.Default,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TargetPath returns the file SaveToFile writes for path: path itself when it carries
// a known scene extension, otherwise path with the default codec's extension appended.
func (m *Manager) TargetPath(path string) string {
	if _, _, ext := codec.SplitPath(path); ext != "" {
		return path
	}
	return path + m.codec.Extensions()[0]
}

// SaveToFile writes the object manager's current records to path.
// The previous file, if any, is replaced atomically.
func (m *Manager) SaveToFile(ctx context.Context, path string) error {
	start := time.Now()
	target := m.TargetPath(path)

	n, err := m.save(ctx, target)

	m.emit(ctx, m.hooks.OnSave, domain.OpSave, target, n, start, err)
	if err != nil {
		m.logger.Error("failed to save scene", "path", target, "err", err)
		return err
	}
	m.logger.Info("scene saved", "path", target, "objects", n, "duration", time.Since(start))
	return nil
}

func (m *Manager) save(ctx context.Context, target string) (int, error) {
	fail := func(kind domain.Kind, err error) (int, error) {
		return 0, &domain.PersistError{Op: domain.OpSave, Kind: kind, Path: target, Err: err}
	}

	_, name, _ := codec.SplitPath(target)
	if name == "" || name[0] == '.' {
		return fail(domain.KindWrite, fmt.Errorf("%w: empty level name in %q", domain.ErrInvalidName, target))
	}

	c, err := codec.ForPath(target)
	if err != nil {
		return fail(domain.KindWrite, err)
	}

	objects, err := m.objects.SaveData(ctx)
	if err != nil {
		return fail(domain.KindCollect, err)
	}

	scene := domain.NewScene(name, objects...)
	if err := scene.Validate(); err != nil {
		return fail(domain.KindInvalid, err)
	}

	if err := WriteFile(ctx, target, c, scene); err != nil {
		return fail(domain.KindWrite, err)
	}
	return len(objects), nil
}

// LoadFromFile locates the scene file for path, parses it and hands the records to the
// object manager. path may omit the extension, in which case every known scene
// extension is tried within path's directory.
//
// A failed restore is not rolled back.
func (m *Manager) LoadFromFile(ctx context.Context, path string) (*domain.Scene, error) {
	start := time.Now()

	scene, file, err := m.load(ctx, path)

	n := 0
	if scene != nil {
		n = len(scene.Objects)
	}
	m.emit(ctx, m.hooks.OnLoad, domain.OpLoad, file, n, start, err)
	if err != nil {
		m.logger.Error("failed to load scene", "path", file, "err", err)
		return nil, err
	}
	m.logger.Info("scene loaded", "path", file, "objects", n, "duration", time.Since(start))
	return scene, nil
}

func (m *Manager) load(ctx context.Context, path string) (*domain.Scene, string, error) {
	file, c, err := codec.Resolve(path)
	if err != nil {
		kind := domain.KindRead
		if errors.Is(err, domain.ErrSceneNotFound) {
			kind = domain.KindNotFound
		}
		return nil, path, &domain.PersistError{Op: domain.OpLoad, Kind: kind, Path: path, Err: err}
	}

	fail := func(kind domain.Kind, err error) (*domain.Scene, string, error) {
		return nil, file, &domain.PersistError{Op: domain.OpLoad, Kind: kind, Path: file, Err: err}
	}

	scene, err := readFile(ctx, file, c)
	if err != nil {
		return fail(classifyRead(err), err)
	}
	if err := scene.Validate(); err != nil {
		return fail(domain.KindInvalid, err)
	}
	if err := m.objects.Restore(ctx, scene); err != nil {
		return fail(domain.KindRestore, err)
	}
	return scene, file, nil
}

func classifyRead(err error) domain.Kind {
	switch {
	case errors.Is(err, domain.ErrSceneNotFound):
		return domain.KindNotFound
	case errors.Is(err, domain.ErrMalformedRecord),
		errors.Is(err, domain.ErrInvalidHeader),
		errors.Is(err, domain.ErrUnsupportedVersion):
		return domain.KindDecode
	default:
		return domain.KindRead
	}
}

func (m *Manager) emit(ctx context.Context, hook func(context.Context, *domain.PersistEvent), op, path string, n int, start time.Time, err error) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.PersistEvent{
		Timestamp: start,
		Op:        op,
		Path:      filepath.Clean(path),
		Objects:   n,
		Duration:  time.Since(start),
		Err:       err,
	})
}

