package utils

import (
	"sort"
	"sync"
)

// KeyedMutex provides mutual exclusion per string key. Entries are
// reference-counted and removed once the last holder unlocks, so the
// map does not grow with the number of keys ever seen.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: map[string]*keyedLock{},
	}
}

// Lock acquires the mutexes for all given keys and returns the function
// that releases them. Keys are deduplicated and acquired in sorted order
// so two callers locking overlapping key sets cannot deadlock.
func (m *KeyedMutex) Lock(keys ...string) func() {
	sorted := make([]string, 0, len(keys))
	seen := map[string]bool{}
	for _, key := range keys {
		if !seen[key] {
			seen[key] = true
			sorted = append(sorted, key)
		}
	}
	sort.Strings(sorted)

	acquired := make([]*keyedLock, 0, len(sorted))
	for _, key := range sorted {
		m.mu.Lock()
		lock, exists := m.locks[key]
		if !exists {
			lock = &keyedLock{}
			m.locks[key] = lock
		}
		lock.refs++
		m.mu.Unlock()

		lock.mu.Lock()
		acquired = append(acquired, lock)
	}

	sortedKeys := sorted
	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].mu.Unlock()

			m.mu.Lock()
			acquired[i].refs--
			if acquired[i].refs == 0 {
				delete(m.locks, sortedKeys[i])
			}
			m.mu.Unlock()
		}
	}
}
