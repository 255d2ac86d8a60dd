// Package level coordinates access to stored levels so that concurrent editors never
// interleave a load and a save of the same level.
package level

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/leveledit/internal/logging"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/aretw0/leveledit/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed holder can block a level.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes operations per level name.
// Unused lock entries are garbage collected by reference counting.
type Manager struct {
	store ports.SceneStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.Locker
	lockTTL time.Duration
	hooks   domain.PersistHooks
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables cross-process locking.
func WithLocker(locker ports.Locker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithHooks registers callbacks fired after every Load and Save.
func WithHooks(hooks domain.PersistHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over store.
func NewManager(store ports.SceneStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) acquire(name string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[name]
	if !ok {
		entry = &lockEntry{}
		m.locks[name] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[name]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, name)
	}
}

// Checkout runs fn while holding the level's lock.
func (m *Manager) Checkout(ctx context.Context, name string, fn func(context.Context) error) error {
	entry := m.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(name)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, name, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire level lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("failed to release level lock", "level", name, "err", err)
			}
		}()
	}

	return fn(ctx)
}

// Load retrieves a stored level.
func (m *Manager) Load(ctx context.Context, name string) (*domain.Scene, error) {
	start := time.Now()
	var scene *domain.Scene
	err := m.Checkout(ctx, name, func(ctx context.Context) error {
		var err error
		scene, err = m.store.Load(ctx, name)
		return err
	})
	m.emit(ctx, m.hooks.OnLoad, domain.OpLoad, name, scene, start, err)
	return scene, err
}

// LoadOrCreate loads a level, creating and persisting an empty one when it is absent.
func (m *Manager) LoadOrCreate(ctx context.Context, name string) (*domain.Scene, error) {
	var scene *domain.Scene
	err := m.Checkout(ctx, name, func(ctx context.Context) error {
		var err error
		scene, err = m.store.Load(ctx, name)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrSceneNotFound) {
			return fmt.Errorf("failed to check level existence: %w", err)
		}

		scene = domain.NewScene(name)
		if err := m.store.Save(ctx, name, scene); err != nil {
			return fmt.Errorf("failed to create level: %w", err)
		}
		m.logger.Info("level created", "level", name)
		return nil
	})
	return scene, err
}

// Save validates and persists a level.
func (m *Manager) Save(ctx context.Context, name string, scene *domain.Scene) error {
	start := time.Now()
	err := scene.Validate()
	if err != nil {
		err = &domain.PersistError{Op: domain.OpSave, Kind: domain.KindInvalid, Path: name, Err: err}
	} else {
		err = m.Checkout(ctx, name, func(ctx context.Context) error {
			return m.store.Save(ctx, name, scene)
		})
	}
	m.emit(ctx, m.hooks.OnSave, domain.OpSave, name, scene, start, err)
	return err
}

func (m *Manager) emit(ctx context.Context, hook func(context.Context, *domain.PersistEvent), op, name string, scene *domain.Scene, start time.Time, err error) {
	if hook == nil {
		return
	}
	n := 0
	if scene != nil && err == nil {
		n = len(scene.Objects)
	}
	hook(ctx, &domain.PersistEvent{
		Timestamp: start,
		Op:        op,
		Path:      name,
		Objects:   n,
		Duration:  time.Since(start),
		Err:       err,
	})
}

// Delete removes a level.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.Checkout(ctx, name, func(ctx context.Context) error {
		return m.store.Delete(ctx, name)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying scene store.
func (m *Manager) Store() ports.SceneStore {
	return m.store
}
