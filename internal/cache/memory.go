package cache

import (
	"container/list"
	"context"
	"sync"
)

// Memory is an in-process FIFO cache. A capacity of zero or less disables eviction.
type Memory struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = oldest insertion
	counters
}

type memoryEntry struct {
	key   string
	value string
}

// NewMemory creates an empty cache holding at most capacity entries.
func NewMemory(capacity int) *Memory {
	return &Memory{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.entries[key]
	m.record(ok)
	if !ok {
		return "", false, nil
	}
	return el.Value.(*memoryEntry).value, true, nil
}

func (m *Memory) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.entries[key]; ok {
		el.Value.(*memoryEntry).value = value
		return nil
	}
	if m.capacity > 0 {
		for m.order.Len() >= m.capacity {
			oldest := m.order.Front()
			m.order.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoryEntry).key)
		}
	}
	m.entries[key] = m.order.PushBack(&memoryEntry{key: key, value: value})
	return nil
}

func (m *Memory) Len(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len(), nil
}

// Keys returns resident keys oldest first.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, m.order.Len())
	for el := m.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*memoryEntry).key)
	}
	return keys
}

func (m *Memory) Stats() Stats {
	return m.stats()
}

// Close does nothing; the cache lives for the process lifetime.
func (m *Memory) Close() error {
	return nil
}
