package gate

import "sync"

// fallbackLockKey serializes mutations that do not target an existing
// document (ingestion, echo-only writes).
const fallbackLockKey = "\x00global"

// keyedLocks hands out one mutex per key so that at most one mutation per
// document is in flight. Lock entries are never reclaimed; the population is
// bounded by the document count.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for key and returns it for unlocking. An empty key
// falls back to the global mutation lock.
func (k *keyedLocks) acquire(key string) *sync.Mutex {
	if key == "" {
		key = fallbackLockKey
	}

	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l
}
