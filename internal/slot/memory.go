package slot

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded in-memory backend used by tests to exercise
// the protocol without filesystem latency.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (s *MemoryStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	content := s.slots[name]
	if len(content) == 0 {
		return nil, nil
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

func (s *MemoryStore) Write(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]byte, len(content))
	copy(stored, content)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[name] = stored
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, name string) error {
	return s.Write(ctx, name, nil)
}

func (s *MemoryStore) Touch(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[name]; !ok {
		s.slots[name] = nil
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
