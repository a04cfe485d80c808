package repositories

import (
	"context"
	"sync"
)

// CartStorage is the durable key/value port the cart store persists through.
// Load returns nil data and no error when the key has never been written.
type CartStorage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// MemoryCartStorage keeps cart snapshots in process memory.
type MemoryCartStorage struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewMemoryCartStorage creates an empty MemoryCartStorage.
func NewMemoryCartStorage() *MemoryCartStorage {
	return &MemoryCartStorage{data: make(map[string][]byte)}
}

func (s *MemoryCartStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}

func (s *MemoryCartStorage) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), data...)
	return nil
}
