package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemorySize bounds the number of entries a Memory cache holds.
const DefaultMemorySize = 1024

type memoryEntry struct {
	value   string
	expires time.Time
}

// Memory is an in-process Cache for tests and single-instance deployments.
// maxTTL caps every entry; Set can only shorten it.
type Memory struct {
	lru       *expirable.LRU[string, memoryEntry]
	namespace string
}

func NewMemory(namespace string, size int, maxTTL time.Duration) *Memory {
	return &Memory{
		lru:       expirable.NewLRU[string, memoryEntry](size, nil, maxTTL),
		namespace: namespace,
	}
}

func (m *Memory) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		m.lru.Remove(key)
		return nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}
	m.lru.Add(key, memoryEntry{value: s, expires: time.Now().Add(ttl)})
	return nil
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		return "", nil
	}
	if time.Now().After(e.expires) {
		m.lru.Remove(key)
		return "", nil
	}
	return e.value, nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.lru.Remove(k)
	}
	return nil
}

func (m *Memory) GenerateKey(operation, key string) string {
	return generateKey(m.namespace, operation, key)
}
