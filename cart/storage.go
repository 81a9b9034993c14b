package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/go-redis/redis/v8"
)

// Storage is the durable keyed store the cart mirrors itself into.
type Storage interface {
	// Load returns the payload under key, with ok false when nothing is stored.
	Load(key string) ([]byte, bool, error)
	Save(key string, data []byte) error
}

// RedisStorage keeps cart payloads in Redis with no expiry, so a cart survives
// restarts until it is explicitly cleared or evicted.
type RedisStorage struct {
	rdb *redis.Client
}

func NewRedisStorage(rdb *redis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

func (s *RedisStorage) Load(key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStorage) Save(key string, data []byte) error {
	return s.rdb.Set(context.Background(), key, data, 0).Err()
}

// MemoryStorage is a process-local Storage for tests and offline use.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string][]byte)}
}

func (s *MemoryStorage) Load(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

func (s *MemoryStorage) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.entries[key] = cp
	return nil
}
