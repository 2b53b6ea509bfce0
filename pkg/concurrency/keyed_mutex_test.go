package concurrency

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestKeyedMutex_SameKeySerializes(t *testing.T) {
	km := NewKeyedMutex[string]()

	var (
		wg      sync.WaitGroup
		active  atomic.Int32
		maxSeen atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = km.WithLock("5511999999999|p1", func() error {
				n := active.Add(1)
				if n > maxSeen.Load() {
					maxSeen.Store(n)
				}
				time.Sleep(time.Millisecond)
				active.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load())
	assert.Zero(t, km.Len(), "모든 락 해제 후 엔트리가 정리되어야 합니다")
}

func TestKeyedMutex_DifferentKeysParallel(t *testing.T) {
	km := NewKeyedMutex[int]()

	km.Lock(1)
	done := make(chan struct{})
	go func() {
		km.Lock(2)
		km.Unlock(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("다른 키의 락이 차단되었습니다")
	}
	km.Unlock(1)
}

func TestKeyedMutex_TryLock(t *testing.T) {
	km := NewKeyedMutex[string]()

	require.True(t, km.TryLock("a"))
	assert.False(t, km.TryLock("a"))
	assert.Equal(t, 1, km.Len())

	km.Unlock("a")
	assert.Zero(t, km.Len())
	assert.True(t, km.TryLock("a"))
	km.Unlock("a")
}

func TestKeyedMutex_WithLock_ReturnsError(t *testing.T) {
	km := NewKeyedMutex[string]()
	want := errors.New("boom")

	assert.ErrorIs(t, km.WithLock("k", func() error { return want }), want)
	assert.Zero(t, km.Len())
}

func TestKeyedMutex_UnlockWithoutLock_Panics(t *testing.T) {
	km := NewKeyedMutex[string]()
	assert.Panics(t, func() { km.Unlock("missing") })
}
