package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryService is a process-local Service. Expired entries are dropped
// lazily on access.
type MemoryService struct {
	mu      sync.Mutex
	entries map[string]*CacheEntry
	hits    int64
	misses  int64
	started time.Time
	now     func() time.Time
}

func NewMemoryService() *MemoryService {
	return &MemoryService{
		entries: make(map[string]*CacheEntry),
		started: time.Now(),
		now:     time.Now,
	}
}

func (m *MemoryService) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry := &CacheEntry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
	}
	if ttl > 0 {
		entry.ExpiresAt = now.Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *MemoryService) Get(_ context.Context, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.live(key)
	if !ok {
		m.misses++
		return nil, ErrNotFound
	}
	entry.Hits++
	m.hits++
	return entry.Value, nil
}

func (m *MemoryService) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryService) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live(key)
	return ok, nil
}

func (m *MemoryService) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*CacheEntry)
	return nil
}

func (m *MemoryService) GetStats(_ context.Context) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	keys := int64(0)
	for _, entry := range m.entries {
		if !entry.expired(now) {
			keys++
		}
	}
	return &Stats{
		Hits:      m.hits,
		Misses:    m.misses,
		Keys:      keys,
		StartedAt: m.started,
	}, nil
}

// live must be called with mu held.
func (m *MemoryService) live(key string) (*CacheEntry, bool) {
	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if entry.expired(m.now()) {
		delete(m.entries, key)
		return nil, false
	}
	return entry, true
}

func (e *CacheEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}
