package store

import "sync/atomic"

// Handle is the single mutation point for reloads: readers always see either
// the old store or the new one, never a partial build. Publish is only
// called after a pipeline run fully succeeds.
type Handle struct {
	p atomic.Pointer[Store]
}

func NewHandle(s *Store) *Handle {
	h := &Handle{}
	h.p.Store(s)
	return h
}

// Current returns the active store snapshot.
func (h *Handle) Current() *Store { return h.p.Load() }

// Publish atomically swaps in a freshly built store.
func (h *Handle) Publish(s *Store) { h.p.Store(s) }
