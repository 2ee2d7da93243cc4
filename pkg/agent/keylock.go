package agent

import (
	"sync"

	"github.com/google/uuid"
)

// KeyedLock serializes work per user id. Locks are created lazily and never
// removed; the population is bounded by the number of distinct users.
type KeyedLock struct {
	locks sync.Map
}

func NewKeyedLock() *KeyedLock {
	return &KeyedLock{}
}

func (k *KeyedLock) Lock(userId uuid.UUID) {
	lock, _ := k.locks.LoadOrStore(userId, &sync.Mutex{})
	lock.(*sync.Mutex).Lock()
}

func (k *KeyedLock) Unlock(userId uuid.UUID) {
	lock, ok := k.locks.Load(userId)
	if !ok {
		return
	}
	lock.(*sync.Mutex).Unlock()
}
