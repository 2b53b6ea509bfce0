package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

const (
	defaultMaxEntries = 10000

	// sweepInterval 저장 시 만료 항목 전체 정리를 최대 이 간격마다 한 번 수행한다.
	sweepInterval = time.Minute
)

// Memory 만료된 항목은 조회 시점에 제거하고, 다시 조회되지 않는 항목은 저장 시 주기적으로 정리합니다.
// 항목 수가 maxEntries에 도달하면 만료가 가장 빠른 항목부터 밀어냅니다.
type Memory[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]

	maxEntries int
	lastSweep  time.Time

	now func() time.Time
}

func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{
		entries: make(map[string]entry[V]),

		maxEntries: defaultMaxEntries,

		now: time.Now,
	}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V

	e, ok := m.entries[key]
	if !ok {
		return zero, false, nil
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return zero, false, nil
	}

	return e.value, true, nil
}

// Set ttl이 0 이하이면 저장하지 않습니다.
func (m *Memory[V]) Set(_ context.Context, key string, v V, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweepLocked(now)
	}
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.sweepLocked(now)
		for len(m.entries) > 0 && len(m.entries) >= m.maxEntries {
			m.evictSoonestLocked()
		}
	}

	m.entries[key] = entry[V]{value: v, expiresAt: now.Add(ttl)}

	return nil
}

func (m *Memory[V]) sweepLocked(now time.Time) {
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.lastSweep = now
}

func (m *Memory[V]) evictSoonestLocked() {
	var (
		victim string
		soon   time.Time
		found  bool
	)
	for k, e := range m.entries {
		if !found || e.expiresAt.Before(soon) {
			victim, soon, found = k, e.expiresAt, true
		}
	}
	if found {
		delete(m.entries, victim)
	}
}

func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
