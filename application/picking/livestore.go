package picking

import (
	"hash/fnv"
	"sync"

	"github.com/muhammadheryan/picking-engine/model"
)

const liveShardCount = 32

// liveStore is the process-local tier of the session store. Each session id
// maps to an entry carrying its own mutex; holding that mutex across a whole
// read-modify-write serializes same-session operations by construction. The
// session pointer itself is only touched under the shard mutex, so lock-free
// readers never race a writer.
type liveStore struct {
	shards [liveShardCount]*liveShard
}

type liveShard struct {
	mu      sync.Mutex
	entries map[string]*liveEntry
}

// refs counts goroutines holding or waiting on the entry mutex. An entry with
// no session and no refs is removed from the shard map so the table does not
// accumulate one entry per session ever touched.
type liveEntry struct {
	mu      sync.Mutex
	refs    int
	session *model.PickingSession
}

func newLiveStore() *liveStore {
	s := &liveStore{}
	for i := range s.shards {
		s.shards[i] = &liveShard{entries: make(map[string]*liveEntry)}
	}
	return s
}

func (s *liveStore) shard(sessionID string) *liveShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return s.shards[h.Sum32()%liveShardCount]
}

// lock serializes operations on one session and returns the unlock func.
// Waiters keep the entry pinned in the shard map, so the lock identity is
// stable even across a concurrent delete.
func (s *liveStore) lock(sessionID string) func() {
	sh := s.shard(sessionID)
	sh.mu.Lock()
	e, ok := sh.entries[sessionID]
	if !ok {
		e = &liveEntry{}
		sh.entries[sessionID] = e
	}
	e.refs++
	sh.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		sh.mu.Lock()
		e.refs--
		if e.refs == 0 && e.session == nil {
			delete(sh.entries, sessionID)
		}
		sh.mu.Unlock()
	}
}

func (s *liveStore) get(sessionID string) *model.PickingSession {
	sh := s.shard(sessionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if e, ok := sh.entries[sessionID]; ok {
		return e.session
	}
	return nil
}

func (s *liveStore) put(sess *model.PickingSession) {
	sh := s.shard(sess.ID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	e, ok := sh.entries[sess.ID]
	if !ok {
		e = &liveEntry{}
		sh.entries[sess.ID] = e
	}
	e.session = sess
}

func (s *liveStore) delete(sessionID string) {
	sh := s.shard(sessionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	e, ok := sh.entries[sessionID]
	if !ok {
		return
	}
	e.session = nil
	if e.refs == 0 {
		delete(sh.entries, sessionID)
	}
}
