package booking

import (
	"context"
	"sync"
)

// workspaceLocks serializes the capacity check and insert per workspace
// inside one process. Different workspaces never contend.
type workspaceLocks struct {
	mu    sync.Mutex
	locks map[int64]*workspaceLock
}

type workspaceLock struct {
	sem  chan struct{}
	refs int
}

func newWorkspaceLocks() *workspaceLocks {
	return &workspaceLocks{locks: make(map[int64]*workspaceLock)}
}

// Lock blocks until the workspace is free or ctx is done. The returned
// func releases the lock and must be called exactly once.
func (l *workspaceLocks) Lock(ctx context.Context, workspaceID int64) (func(), error) {
	l.mu.Lock()
	lk, ok := l.locks[workspaceID]
	if !ok {
		lk = &workspaceLock{sem: make(chan struct{}, 1)}
		l.locks[workspaceID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	select {
	case lk.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(workspaceID, lk)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lk.sem
			l.release(workspaceID, lk)
		})
	}, nil
}

func (l *workspaceLocks) release(workspaceID int64, lk *workspaceLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk.refs--
	if lk.refs == 0 {
		delete(l.locks, workspaceID)
	}
}

func (l *workspaceLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
