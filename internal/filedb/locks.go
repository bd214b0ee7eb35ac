package filedb

import "sync"

// scope identifies a sibling set: a folder, or the top level of a project.
type scope struct {
	projectID int64
	folderID  int64
	inFolder  bool
}

func scopeOf(projectID int64, folderID *int64) scope {
	if folderID == nil {
		return scope{projectID: projectID}
	}
	return scope{projectID: projectID, folderID: *folderID, inFolder: true}
}

// scopeLocks serializes name-changing operations per destination scope so the
// duplicate check and the insert/update that follows cannot interleave.
type scopeLocks struct {
	mu    sync.Mutex
	locks map[scope]*scopeLock
}

type scopeLock struct {
	sync.Mutex
	refs int
}

// lock blocks until the scope is held and returns its release func.
func (l *scopeLocks) lock(s scope) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[scope]*scopeLock)
	}
	sl, ok := l.locks[s]
	if !ok {
		sl = &scopeLock{}
		l.locks[s] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.Lock()
	return func() {
		sl.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, s)
		}
		l.mu.Unlock()
	}
}
