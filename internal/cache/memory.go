package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryItem struct {
	value   []byte
	expires time.Time
}

// Memory is a process-local Backend. A background sweep drops expired items
// and, above maxItems, the ones closest to expiry.
type Memory struct {
	mu       sync.RWMutex
	items    map[string]memoryItem
	maxItems int
	now      func() time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// NewMemory starts a memory backend that sweeps every sweepEvery
func NewMemory(maxItems int, sweepEvery time.Duration) *Memory {
	m := &Memory{
		items:    make(map[string]memoryItem),
		maxItems: maxItems,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go m.sweepLoop(sweepEvery)
	return m
}

func (m *Memory) lookup(key string, now time.Time) ([]byte, bool) {
	item, ok := m.items[key]
	if !ok || !now.Before(item.expires) {
		return nil, false
	}
	return item.value, true
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.lookup(key, m.now())
	return value, ok, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.SetMany(ctx, map[string][]byte{key: value}, ttl)
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := m.now()
	found := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if value, ok := m.lookup(k, now); ok {
			found[k] = value
		}
	}
	return found, nil
}

func (m *Memory) SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	expires := m.now().Add(ttl)
	for k, v := range items {
		m.items[k] = memoryItem{value: v, expires: expires}
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

func (m *Memory) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}

func (m *Memory) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()

	live := make([]string, 0, len(m.items))
	for k, item := range m.items {
		if now.Before(item.expires) {
			live = append(live, k)
		} else {
			delete(m.items, k)
		}
	}
	if over := len(live) - m.maxItems; over > 0 {
		sort.Slice(live, func(i, j int) bool {
			return m.items[live[i]].expires.Before(m.items[live[j]].expires)
		})
		for _, k := range live[:over] {
			delete(m.items, k)
		}
	}
}
