package kv

import (
	"context"
	"sync"
)

// MemoryRepository keeps values in a map. The Fail* fields make the next
// calls fail, which tests use to simulate an unavailable substrate.
type MemoryRepository struct {
	mu     sync.Mutex
	data   map[string]string
	closed bool

	FailGet    error
	FailSet    error
	FailDelete error

	gets, sets, deletes int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string]string)}
}

func (m *MemoryRepository) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.closed {
		return "", false, ErrClosed
	}
	if m.FailGet != nil {
		return "", false, m.FailGet
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryRepository) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.closed {
		return ErrClosed
	}
	if m.FailSet != nil {
		return m.FailSet
	}
	m.data[key] = value
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if m.closed {
		return ErrClosed
	}
	if m.FailDelete != nil {
		return m.FailDelete
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryRepository) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// SetFailures replaces the injected errors under the lock.
func (m *MemoryRepository) SetFailures(get, set error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailGet, m.FailSet = get, set
}

// Sets reports how many Set calls were made, failed ones included.
func (m *MemoryRepository) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// Gets reports how many Get calls were made.
func (m *MemoryRepository) Gets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets
}

// Raw returns the stored value without counting a Get.
func (m *MemoryRepository) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Put stores a value without counting a Set.
func (m *MemoryRepository) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}
