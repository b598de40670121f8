package slotlock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SerializesSameKey(t *testing.T) {
	locker := NewLocal()
	key := Key(1, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "10:00")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), key)
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, locker.locks)
}

func TestLocal_DifferentKeysDoNotBlock(t *testing.T) {
	locker := NewLocal()

	unlockA, err := locker.Lock(context.Background(), "slot:1:2025-03-10:10:00")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	unlockB, err := locker.Lock(ctx, "slot:1:2025-03-10:11:00")
	require.NoError(t, err)
	unlockB()
}

func TestLocal_ContextCancelled(t *testing.T) {
	locker := NewLocal()
	key := "slot:1:2025-03-10:10:00"

	unlock, err := locker.Lock(context.Background(), key)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, key)
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()
	unlock() // повторный вызов безопасен
	assert.Empty(t, locker.locks)
}

func TestKey(t *testing.T) {
	key := Key(7, time.Date(2025, 3, 10, 15, 4, 0, 0, time.UTC), "10:00")
	assert.Equal(t, "slot:7:2025-03-10:10:00", key)
}

func TestWithWaitTimeout(t *testing.T) {
	locker := WithWaitTimeout(NewLocal(), 20*time.Millisecond)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "slot:1:2025-03-10:10:00")
	require.NoError(t, err)

	start := time.Now()
	_, err = locker.Lock(ctx, "slot:1:2025-03-10:10:00")
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.Less(t, time.Since(start), time.Second)

	// удержание не зависит от отменённого контекста ожидания
	unlock()
	unlock, err = locker.Lock(ctx, "slot:1:2025-03-10:10:00")
	require.NoError(t, err)
	unlock()
}
