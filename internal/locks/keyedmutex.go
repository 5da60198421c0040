package locks

import (
	"errors"
	"sync"
	"time"
)

// ErrAcquireTimeout is returned when the lock could not be entered within the
// caller's bounded wait.
var ErrAcquireTimeout = errors.New("timed out acquiring lock")

// KeyedMutex provides one mutex per key so writers against different keys
// proceed in parallel while writers against the same key are serialized.
// Idle entries are removed once the last waiter leaves.
type KeyedMutex struct {
	mu   sync.Mutex
	sems map[string]chan struct{}
	refs map[string]int
}

// NewKeyedMutex creates an empty lock registry
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		sems: make(map[string]chan struct{}),
		refs: make(map[string]int),
	}
}

// Acquire enters the critical section for key, waiting at most timeout.
// On success it returns an idempotent release func; extra calls are no-ops.
func (k *KeyedMutex) Acquire(key string, timeout time.Duration) (func(), error) {
	k.mu.Lock()
	sem, ok := k.sems[key]
	if !ok {
		sem = make(chan struct{}, 1)
		k.sems[key] = sem
	}
	k.refs[key]++
	k.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-sem
				k.leave(key)
			})
		}, nil
	case <-timer.C:
		k.leave(key)
		return nil, ErrAcquireTimeout
	}
}

// leave drops one reference to key and removes the semaphore when unused
func (k *KeyedMutex) leave(key string) {
	k.mu.Lock()
	k.refs[key]--
	if k.refs[key] <= 0 {
		delete(k.sems, key)
		delete(k.refs, key)
	}
	k.mu.Unlock()
}
