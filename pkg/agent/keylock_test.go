package agent

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestKeyedLockSerializesSameKey(t *testing.T) {
	locks := NewKeyedLock()
	userId := uuid.New()

	const workers = 20
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock(userId)
			defer locks.Unlock(userId)
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestKeyedLockIndependentKeys(t *testing.T) {
	locks := NewKeyedLock()
	a, b := uuid.New(), uuid.New()

	locks.Lock(a)
	done := make(chan struct{})
	go func() {
		// A held lock on a different key must not block this
		locks.Lock(b)
		locks.Unlock(b)
		close(done)
	}()

	<-done
	locks.Unlock(a)
}

func TestKeyedLockUnlockUnknownKeyIsNoop(t *testing.T) {
	locks := NewKeyedLock()
	locks.Unlock(uuid.New())
}
