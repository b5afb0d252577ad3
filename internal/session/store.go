// Package session keeps computed reports available to later requests behind
// opaque identifiers. Entries expire; nothing is persisted.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/report"
)

// ErrNotFound is returned when an id is unknown or its entry has expired.
var ErrNotFound = errors.New("report not found")

// DefaultTTL is how long a stored report stays retrievable.
const DefaultTTL = 24 * time.Hour

// Store holds computed reports behind opaque ids.
type Store interface {
	Put(id string, rep *report.Report, ttl time.Duration)
	Get(id string) (*report.Report, error)
	Delete(id string)
}

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

type entry struct {
	report    *report.Report
	expiresAt time.Time
}

// MemoryStore is an in-memory Store. Safe for concurrent access. A background
// sweep removes expired entries; Get never returns one regardless.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	done chan struct{}
	once sync.Once
}

// NewMemoryStore creates an empty store and starts its expiry sweep.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	if sweepInterval <= 0 {
		sweepInterval = 5 * time.Minute
	}
	s := &MemoryStore{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s
}

// Put stores a report under id. A non-positive ttl falls back to DefaultTTL.
// Overwrites if the id already exists.
func (s *MemoryStore) Put(id string, rep *report.Report, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = entry{report: rep, expiresAt: time.Now().Add(ttl)}
}

// Get retrieves a live report by id.
func (s *MemoryStore) Get(id string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, ErrNotFound
	}
	return e.report, nil
}

// Delete removes an entry by id. Unknown ids are a no-op.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len reports how many entries are held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the background sweep. Idempotent.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
