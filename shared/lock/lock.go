package lock

import (
	"sync"
)

// Keyed serializes critical sections per key. The booking services hold the
// lock for a resource id across the availability check and the insert, so two
// concurrent requests for the same room cannot both pass the check before
// either commits. The database exclusion constraint remains the backstop.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyed() *Keyed {
	return &Keyed{
		locks: map[string]*entry{},
	}
}

// Lock acquires the mutex for the given key, creating it on first use.
func (k *Keyed) Lock(key string) {
	k.mu.Lock()

	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}

	e.refs++

	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the given key and frees it once no caller
// holds or waits on it.
func (k *Keyed) Unlock(key string) {
	k.mu.Lock()

	e, ok := k.locks[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
	}

	k.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
