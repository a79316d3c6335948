// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"slices"
)

// DeferredQueue holds deferred handles in request order until they are
// resolved, either by the host draining the queue or by first use.
type DeferredQueue struct {
	c       *Context
	pending []*Sound
}

// Len returns the number of unresolved handles.
func (q *DeferredQueue) Len() int { return len(q.pending) }

// Pending returns the references still waiting, oldest first.
func (q *DeferredQueue) Pending() []string {
	refs := make([]string, len(q.pending))
	for i, s := range q.pending {
		refs[i] = s.ref
	}
	return refs
}

// Next resolves the oldest pending handle. It returns false when the queue
// is empty or the context is not initialised yet.
func (q *DeferredQueue) Next() bool {
	if len(q.pending) == 0 || !q.c.initialized {
		return false
	}
	return q.c.resolve(q.pending[0])
}

// Drain resolves every pending handle and returns how many it resolved.
func (q *DeferredQueue) Drain() int {
	n := 0
	for q.Next() {
		n++
	}
	return n
}

func (q *DeferredQueue) push(s *Sound) {
	q.pending = append(q.pending, s)
	q.c.metrics.DeferredPending.Add(context.Background(), 1)
}

func (q *DeferredQueue) remove(s *Sound) {
	i := slices.Index(q.pending, s)
	if i < 0 {
		return
	}
	q.pending = slices.Delete(q.pending, i, i+1)
	q.c.metrics.DeferredPending.Add(context.Background(), -1)
}

// resolve turns a deferred handle into its requested kind, decoding as
// needed, and takes it off the queue. A failed load leaves a null handle.
// It returns false only while the context is not initialised; s is then
// left pending.
func (c *Context) resolve(s *Sound) bool {
	if s.kind != KindDeferred {
		return true
	}
	if !c.initialized {
		return false
	}
	c.deferred.remove(s)

	if !c.healthy {
		s.kind = KindNull
		return true
	}
	s.kind = s.target
	if err := c.load(s); err != nil {
		s.kind = KindNull
	}
	return true
}
