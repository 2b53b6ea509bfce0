// Package concurrency 키 단위 동기화 도구를 제공합니다.
package concurrency

import "sync"

// KeyedMutex 키별로 독립된 Mutex를 제공합니다.
// 서로 다른 키의 작업은 병렬로 진행되며, 참조 카운트가 0이 되면 엔트리를 정리합니다.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex[K comparable]() *KeyedMutex[K] {
	return &KeyedMutex[K]{locks: make(map[K]*entry)}
}

// Len 잠겨 있거나 대기 중인 키의 수입니다.
func (km *KeyedMutex[K]) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()
	return len(km.locks)
}

func (km *KeyedMutex[K]) Lock(key K) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		e = &entry{}
		km.locks[key] = e
	}
	e.refs++
	km.mu.Unlock()

	e.mu.Lock()
}

// TryLock 대기하지 않고 락을 시도합니다. false를 받으면 Unlock을 호출하지 않아야 합니다.
func (km *KeyedMutex[K]) TryLock(key K) bool {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		e = &entry{}
		km.locks[key] = e
	}
	if !e.mu.TryLock() {
		return false
	}
	e.refs++
	return true
}

// Unlock 잠기지 않은 키에 대해 호출하면 패닉이 발생합니다.
func (km *KeyedMutex[K]) Unlock(key K) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		panic("잠기지 않은 KeyedMutex의 잠금 해제 시도")
	}
	e.mu.Unlock()

	e.refs--
	if e.refs <= 0 {
		delete(km.locks, key)
	}
}

// WithLock key에 대한 락을 잡은 상태로 fn을 실행합니다.
func (km *KeyedMutex[K]) WithLock(key K, fn func() error) error {
	km.Lock(key)
	defer km.Unlock(key)
	return fn()
}
