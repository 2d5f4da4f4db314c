package mastery

import "sync"

// KeyedMutex serializes updates per (student, course, concept) key so
// two simultaneous questions about the same concept cannot both read
// the same prior state and overwrite each other's increment. The
// database row lock is the cross-process guard; this keeps goroutines
// of one process from even contending on it.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key and returns its unlock function.
// Entries are reference counted and removed when the last holder
// unlocks, so the map does not grow with the key space.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
