package clocking

import "sync"

// KeyedMutex serializes the check-then-insert section of clock-in per
// (tenant, employee, project) key, so two concurrent clock-ins for the same
// pair cannot both pass the open-segment check. Entries are kept for the
// process lifetime; cardinality is bounded by employees times projects.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock func.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
