package service

import "sync"

// characterLocks serializes mutations per character. Every operation that
// reads the chain tail and then appends (first-scene synthesis, evolution,
// cascade delete) runs under the character's mutex, so two concurrent edits
// can never mint the same scene number or fork the chain. Locks for
// different characters never interact.
//
// Entries are reference-counted and dropped when the last holder releases,
// so requests probing arbitrary character IDs cannot grow the map without
// bound.
type characterLock struct {
	mu   sync.Mutex
	refs int
}

type characterLocks struct {
	mu    sync.Mutex
	locks map[string]*characterLock
}

func newCharacterLocks() *characterLocks {
	return &characterLocks{
		locks: make(map[string]*characterLock),
	}
}

// Lock acquires the character's mutex, creating it on first use, and returns
// the unlock function.
func (l *characterLocks) Lock(characterID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[characterID]
	if !ok {
		entry = &characterLock{}
		l.locks[characterID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, characterID)
		}
		l.mu.Unlock()
	}
}
