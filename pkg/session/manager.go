package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/history"
	"github.com/aretw0/easel/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates document access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SceneStore

	mu      sync.Mutex
	locks   map[string]*lockEntry
	editors map[string]*easel.Editor

	locker     ports.DistributedLocker
	lockTTL    time.Duration
	editorOpts []easel.Option
	onOpen     []func(docID string, ed *easel.Editor)
	logger     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithEditorOptions sets the options every editor is created with.
func WithEditorOptions(opts ...easel.Option) Option {
	return func(m *Manager) {
		m.editorOpts = append(m.editorOpts, opts...)
	}
}

// OnOpen registers a callback run once for each editor the manager creates,
// while the document lock is held.
func OnOpen(fn func(docID string, ed *easel.Editor)) Option {
	return func(m *Manager) {
		m.onOpen = append(m.onOpen, fn)
	}
}

// NewManager creates a Manager. store may be nil, in which case documents
// only live as long as the process.
func NewManager(store ports.SceneStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		editors: make(map[string]*easel.Editor),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(docID) after unlocking.
func (m *Manager) acquire(docID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[docID]
	if !exists {
		entry = &lockEntry{}
		m.locks[docID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(docID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[docID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, docID)
	}
}

// WithLock executes a function while holding the lock for the document.
func (m *Manager) WithLock(ctx context.Context, docID string, fn func(context.Context) error) error {
	entry := m.acquire(docID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(docID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, docID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"doc", docID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Do runs fn against the editor of docID under the document lock, opening the
// editor first if needed. The scene is persisted after fn returns without error.
func (m *Manager) Do(ctx context.Context, docID string, fn func(ctx context.Context, ed *easel.Editor) error) error {
	return m.WithLock(ctx, docID, func(ctx context.Context) error {
		ed, err := m.open(ctx, docID)
		if err != nil {
			return err
		}
		if err := fn(ctx, ed); err != nil {
			return err
		}
		return m.persist(ctx, docID, ed)
	})
}

// View runs fn against the editor of docID under the document lock without
// persisting afterwards.
func (m *Manager) View(ctx context.Context, docID string, fn func(ed *easel.Editor) error) error {
	return m.WithLock(ctx, docID, func(ctx context.Context) error {
		ed, err := m.open(ctx, docID)
		if err != nil {
			return err
		}
		return fn(ed)
	})
}

// Dispatch applies cmd to the document and returns the recorded inverse.
// A nil inverse with a nil error means the command changed nothing or was
// rejected by the executor; see the history hooks for the reason.
func (m *Manager) Dispatch(ctx context.Context, docID string, cmd domain.Command, opts ...history.DispatchOption) (*domain.Command, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	var inv *domain.Command
	err := m.Do(ctx, docID, func(_ context.Context, ed *easel.Editor) error {
		inv = ed.Dispatch(cmd, opts...)
		return nil
	})
	return inv, err
}

// Undo reverts the last step of the document.
func (m *Manager) Undo(ctx context.Context, docID string) (*domain.Command, error) {
	var inv *domain.Command
	err := m.Do(ctx, docID, func(_ context.Context, ed *easel.Editor) error {
		inv = ed.Undo()
		return nil
	})
	return inv, err
}

// Redo re-applies the last undone step of the document.
func (m *Manager) Redo(ctx context.Context, docID string) (*domain.Command, error) {
	var cmd *domain.Command
	err := m.Do(ctx, docID, func(_ context.Context, ed *easel.Editor) error {
		cmd = ed.Redo()
		return nil
	})
	return cmd, err
}

// ClearHistory empties the stacks of the document.
func (m *Manager) ClearHistory(ctx context.Context, docID string) error {
	return m.View(ctx, docID, func(ed *easel.Editor) error {
		ed.ClearHistory()
		return nil
	})
}

// History returns the stack depths of the document.
func (m *Manager) History(ctx context.Context, docID string) (domain.HistorySnapshot, error) {
	var snap domain.HistorySnapshot
	err := m.View(ctx, docID, func(ed *easel.Editor) error {
		snap = ed.HistorySnapshot()
		return nil
	})
	return snap, err
}

// Scene returns a snapshot of the document.
func (m *Manager) Scene(ctx context.Context, docID string) (*domain.Scene, error) {
	var scene *domain.Scene
	err := m.View(ctx, docID, func(ed *easel.Editor) error {
		scene = ed.Scene()
		return nil
	})
	return scene, err
}

// Subscribe registers a history listener on the document.
// The listener runs under the document lock and must not call back into the Manager.
func (m *Manager) Subscribe(ctx context.Context, docID string, fn domain.HistoryListener) (unsubscribe func(), err error) {
	err = m.View(ctx, docID, func(ed *easel.Editor) error {
		inner := ed.SubscribeHistory(fn)
		unsubscribe = func() {
			_ = m.WithLock(context.Background(), docID, func(context.Context) error {
				inner()
				return nil
			})
		}
		return nil
	})
	return unsubscribe, err
}

// Close evicts the document from memory. Its history is discarded; the
// persisted scene is kept.
func (m *Manager) Close(ctx context.Context, docID string) error {
	return m.WithLock(ctx, docID, func(ctx context.Context) error {
		m.mu.Lock()
		delete(m.editors, docID)
		m.mu.Unlock()
		return nil
	})
}

// Delete evicts the document and removes it from the store.
func (m *Manager) Delete(ctx context.Context, docID string) error {
	return m.WithLock(ctx, docID, func(ctx context.Context) error {
		m.mu.Lock()
		delete(m.editors, docID)
		m.mu.Unlock()
		if m.store == nil {
			return nil
		}
		return m.store.Delete(ctx, docID)
	})
}

// List returns the ids of open and stored documents, sorted.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)

	m.mu.Lock()
	for id := range m.editors {
		seen[id] = true
	}
	m.mu.Unlock()

	if m.store != nil {
		stored, err := m.store.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, id := range stored {
			seen[id] = true
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// Store returns the underlying scene store.
func (m *Manager) Store() ports.SceneStore {
	return m.store
}

// open must be called with the document lock held.
func (m *Manager) open(ctx context.Context, docID string) (*easel.Editor, error) {
	m.mu.Lock()
	ed, ok := m.editors[docID]
	m.mu.Unlock()
	if ok {
		return ed, nil
	}

	opts := append([]easel.Option{easel.WithLogger(m.logger)}, m.editorOpts...)
	if m.store != nil {
		scene, err := m.store.Load(ctx, docID)
		switch {
		case err == nil:
			opts = append(opts, easel.WithScene(scene))
		case errors.Is(err, domain.ErrDocumentNotFound):
		default:
			return nil, fmt.Errorf("failed to load document %s: %w", docID, err)
		}
	}

	ed, err := easel.New(docID, opts...)
	if err != nil {
		return nil, err
	}
	for _, fn := range m.onOpen {
		fn(docID, ed)
	}

	m.mu.Lock()
	m.editors[docID] = ed
	m.mu.Unlock()
	m.logger.Debug("document opened", "doc", docID)
	return ed, nil
}

func (m *Manager) persist(ctx context.Context, docID string, ed *easel.Editor) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(ctx, docID, ed.Scene()); err != nil {
		return fmt.Errorf("failed to persist document %s: %w", docID, err)
	}
	return nil
}
