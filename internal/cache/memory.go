// internal/cache/memory.go
package cache

import (
	"context"
	"sync"
)

// MemoryStore keeps the entry for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	entry Entry
	ok    bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ok {
		return Entry{}, false, nil
	}
	return Entry{
		Payload:   append([]byte(nil), s.entry.Payload...),
		FetchedAt: s.entry.FetchedAt,
	}, true, nil
}

func (s *MemoryStore) Set(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = Entry{
		Payload:   append([]byte(nil), e.Payload...),
		FetchedAt: e.FetchedAt,
	}
	s.ok = true
	return nil
}
