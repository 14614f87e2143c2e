package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-process Store used by tests and local development.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	tags    map[string]map[string]struct{}
	now     func() time.Time
}

// NewMemoryStore builds an empty in-memory tag cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		tags:    make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

// Get returns the cached value if present and not expired.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

// SetWithTags stores the value and indexes the key under every tag.
func (s *MemoryStore) SetWithTags(_ context.Context, key, value string, ttl time.Duration, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = entry

	for _, tag := range tags {
		keys, ok := s.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

// InvalidateTag drops every entry indexed under tag.
func (s *MemoryStore) InvalidateTag(_ context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.tags[tag] {
		delete(s.entries, key)
	}
	delete(s.tags, tag)
	return nil
}
