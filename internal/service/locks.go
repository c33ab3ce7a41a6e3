package service

import "sync"

// userLocks serializes credential rotation per user. The revoke-then-insert
// sequence in login and refresh is not a single statement, so two concurrent
// rotations for the same user could otherwise both observe "no active record"
// and leave two live credentials behind.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: map[string]*userLock{}}
}

// Lock acquires the lock for the user and returns its release function.
// Entries are dropped once nobody holds or waits on them.
func (l *userLocks) Lock(userId string) func() {
	l.mu.Lock()
	lock, ok := l.locks[userId]
	if !ok {
		lock = &userLock{}
		l.locks[userId] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, userId)
		}
		l.mu.Unlock()
	}
}
