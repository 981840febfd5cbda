// Package locks provides keyed per-entity synchronization primitives.
// The registries hand out one lock per entity identifier, so independent
// entities never contend with each other and there is no global lock.
package locks

import (
	"sync"

	"github.com/google/uuid"
)

// KeyedMutex maintains one exclusive mutex per UUID key.
// Locks are created lazily on first use and kept for the registry's lifetime;
// the set of live entities in one process is small enough that reclamation
// is not worth the bookkeeping.
type KeyedMutex struct {
	mu      sync.Mutex
	mutexes map[uuid.UUID]*sync.Mutex
}

// NewKeyedMutex creates an empty registry of per-key exclusive mutexes.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		mutexes: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (k *KeyedMutex) get(key uuid.UUID) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.mutexes[key]
	if !ok {
		m = &sync.Mutex{}
		k.mutexes[key] = m
	}
	return m
}

// Lock acquires the exclusive mutex for key, blocking until it is available.
func (k *KeyedMutex) Lock(key uuid.UUID) {
	k.get(key).Lock()
}

// Unlock releases the exclusive mutex for key.
func (k *KeyedMutex) Unlock(key uuid.UUID) {
	k.get(key).Unlock()
}

// KeyedRWMutex maintains one reader/writer mutex per UUID key.
// Readers of the same key proceed concurrently; a writer excludes everyone.
type KeyedRWMutex struct {
	mu      sync.Mutex
	mutexes map[uuid.UUID]*sync.RWMutex
}

// NewKeyedRWMutex creates an empty registry of per-key reader/writer mutexes.
func NewKeyedRWMutex() *KeyedRWMutex {
	return &KeyedRWMutex{
		mutexes: make(map[uuid.UUID]*sync.RWMutex),
	}
}

func (k *KeyedRWMutex) get(key uuid.UUID) *sync.RWMutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.mutexes[key]
	if !ok {
		m = &sync.RWMutex{}
		k.mutexes[key] = m
	}
	return m
}

// Lock acquires the write lock for key.
func (k *KeyedRWMutex) Lock(key uuid.UUID) {
	k.get(key).Lock()
}

// Unlock releases the write lock for key.
func (k *KeyedRWMutex) Unlock(key uuid.UUID) {
	k.get(key).Unlock()
}

// RLock acquires a read lock for key.
func (k *KeyedRWMutex) RLock(key uuid.UUID) {
	k.get(key).RLock()
}

// RUnlock releases a read lock for key.
func (k *KeyedRWMutex) RUnlock(key uuid.UUID) {
	k.get(key).RUnlock()
}
