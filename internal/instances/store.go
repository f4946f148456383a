// Package instances keeps mounted login forms in process memory, keyed by a
// random id, so stateless HTTP requests can address the same form.
//
// Entries are destroyed on Unmount or once they have been idle for longer
// than the configured TTL. Nothing is persisted.
package instances

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-loginform/pkg/login"
)

// ErrNotFound is returned for ids that were never mounted, were unmounted, or
// expired.
var ErrNotFound = errors.New("instances: form instance not found")

// DefaultTTL is how long an untouched instance survives.
const DefaultTTL = 30 * time.Minute

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the idle lifetime of an instance. Zero or negative disables
// expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how instance ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

type entry struct {
	form     *login.Form
	lastSeen time.Time
}

// Store is safe for concurrent use. Forms are only ever touched while the
// store lock is held.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	newID   func() string
}

// New constructs an empty store.
func New(options ...Option) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		ttl:     DefaultTTL,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Mount creates a fresh form and returns its id and initial snapshot.
func (s *Store) Mount() (string, login.Snapshot) {
	form := login.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.entries[id] != nil {
		id = s.newID()
	}
	s.entries[id] = &entry{form: form, lastSeen: s.now()}
	return id, form.Snapshot()
}

// Apply runs fn against the form under the store lock and returns the
// resulting snapshot.
func (s *Store) Apply(id string, fn func(*login.Form)) (login.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return login.Snapshot{}, err
	}
	if fn != nil {
		fn(e.form)
	}
	e.lastSeen = s.now()
	return e.form.Snapshot(), nil
}

// Snapshot returns the current view data for id and refreshes its TTL.
func (s *Store) Snapshot(id string) (login.Snapshot, error) {
	return s.Apply(id, nil)
}

// Unmount destroys the instance. It reports whether the id was present.
func (s *Store) Unmount(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id); err != nil {
		return false
	}
	delete(s.entries, id)
	return true
}

// Len reports how many live instances the store holds.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops expired instances and returns how many were removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on every tick of interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// lookup expects s.mu to be held. Expired entries are removed on access.
func (s *Store) lookup(id string) (*entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.ttl > 0 && s.expired(e, s.now()) {
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return now.Sub(e.lastSeen) > s.ttl
}
