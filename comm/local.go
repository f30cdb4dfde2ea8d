// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package comm

import (
	"sync"

	"github.com/go-exact/chroma/coloring"
)

// Local creates the communicators of a job run entirely in one process,
// one per rank.  order is the order of the graph being searched; it
// sizes the bound broadcast buffers so a Cast never blocks on a slow
// listener.
func Local(size, order int) []Comm {
	h := &hub{
		size:  size,
		inbox: make(chan Msg, size*2),
		p2w:   make([]chan Msg, size-1),
		bound: make([]chan uint32, size-1),
		done:  make(chan struct{}),
	}
	// the bound value strictly decreases from at most order+1, so at
	// most order+1 casts precede the terminate sentinel
	for i := range h.p2w {
		h.p2w[i] = make(chan Msg, 2)
		h.bound[i] = make(chan uint32, order+2)
	}
	h.bar.h = h
	h.bar.n = size
	h.bar.c = sync.NewCond(&h.bar.mu)
	cs := make([]Comm, size)
	for r := range cs {
		cs[r] = &local{rank: r, h: h}
	}
	return cs
}

type hub struct {
	size  int
	inbox chan Msg      // workers to rank 0, any source
	p2w   []chan Msg    // rank 0 to worker i+1
	bound []chan uint32 // bound casts to worker i+1
	bar   barrier

	once sync.Once
	code int
	done chan struct{}
}

func (h *hub) abort(code int) {
	h.once.Do(func() {
		h.code = code
		close(h.done)
		// under the lock, or a rank between its abort check and
		// Wait misses the wakeup
		h.bar.mu.Lock()
		h.bar.c.Broadcast()
		h.bar.mu.Unlock()
	})
}

func (h *hub) err() error {
	return &AbortError{Code: h.code}
}

type local struct {
	rank int
	h    *hub
}

func (l *local) Rank() int { return l.rank }
func (l *local) Size() int { return l.h.size }

func (l *local) Send(to int, tag Tag, node *coloring.Partial) error {
	if aborted(l.h) {
		return l.h.err()
	}
	ch := l.h.inbox
	if to != 0 {
		ch = l.h.p2w[to-1]
	}
	select {
	case ch <- Msg{From: l.rank, Tag: tag, Node: node}:
		return nil
	case <-l.h.done:
		return l.h.err()
	}
}

func (l *local) Recv(from int) (Msg, error) {
	ch := l.h.inbox
	if l.rank != 0 {
		ch = l.h.p2w[l.rank-1]
	}
	select {
	case m := <-ch:
		return m, nil
	case <-l.h.done:
		return Msg{}, l.h.err()
	}
}

func (l *local) Cast(u uint32) error {
	if aborted(l.h) {
		return l.h.err()
	}
	for _, ch := range l.h.bound {
		select {
		case ch <- u:
		case <-l.h.done:
			return l.h.err()
		}
	}
	return nil
}

func (l *local) Watch() (uint32, error) {
	select {
	case u := <-l.h.bound[l.rank-1]:
		return u, nil
	case <-l.h.done:
		return 0, l.h.err()
	}
}

func (l *local) Barrier() error {
	return l.h.bar.await()
}

func (l *local) Abort(code int) {
	l.h.abort(code)
}

func (l *local) Close() error {
	return nil
}

// barrier is a reusable counting barrier over all ranks.
type barrier struct {
	h     *hub
	mu    sync.Mutex
	c     *sync.Cond
	n     int
	count int
	gen   int
}

func (b *barrier) await() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if aborted(b.h) {
		return b.h.err()
	}
	g := b.gen
	b.count++
	if b.count == b.n {
		b.count = 0
		b.gen++
		b.c.Broadcast()
		return nil
	}
	for b.gen == g && !aborted(b.h) {
		b.c.Wait()
	}
	if aborted(b.h) {
		return b.h.err()
	}
	return nil
}

func aborted(h *hub) bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
