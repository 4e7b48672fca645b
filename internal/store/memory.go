package store

import (
	"sync"
	"time"

	"github.com/i474232898/route-weather/internal/weather"
)

type entry struct {
	key      string
	value    weather.LocationKey
	storedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory cache of provider location keys.
type MemoryStore struct {
	mu sync.RWMutex

	// key: coordinates key, value: entry
	data map[string]*entry
	// insertion order, oldest first
	order []*entry

	// retention configuration
	maxEntries int           // max number of cached keys
	maxAge     time.Duration // optional max age for cached keys

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries or maxAge is <= 0, it is treated as unlimited.
func NewMemoryStore(maxEntries int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*entry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Put stores a location key and enforces retention by count.
func (s *MemoryStore) Put(key string, value weather.LocationKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.data[key]; ok {
		s.removeFromOrder(old)
	}

	e := &entry{key: key, value: value, storedAt: s.now()}
	s.data[key] = e
	s.order = append(s.order, e)

	if s.maxEntries > 0 && len(s.order) > s.maxEntries {
		over := len(s.order) - s.maxEntries
		for _, evicted := range s.order[:over] {
			delete(s.data, evicted.key)
		}
		s.order = s.order[over:]
	}
}

// Get returns the cached location key. Expired entries are never returned.
func (s *MemoryStore) Get(key string) (weather.LocationKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.expired(e) {
		return "", false
	}
	return e.value, true
}

// Prune removes expired entries and returns how many were removed.
func (s *MemoryStore) Prune() int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Entries are ordered by storedAt, so expired ones form a prefix.
	i := 0
	for ; i < len(s.order); i++ {
		if !s.expired(s.order[i]) {
			break
		}
		delete(s.data, s.order[i].key)
	}
	s.order = s.order[i:]
	return i
}

// Len returns the number of stored entries, including expired ones not yet pruned.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *MemoryStore) expired(e *entry) bool {
	return s.maxAge > 0 && s.now().Sub(e.storedAt) > s.maxAge
}

func (s *MemoryStore) removeFromOrder(e *entry) {
	for i, o := range s.order {
		if o == e {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
