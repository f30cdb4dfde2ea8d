// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bb

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-exact/chroma/coloring"
	"github.com/go-exact/chroma/comm"
	"github.com/go-exact/chroma/graph"
)

// Worker is a rank other than 0: it receives one subtree root, searches
// it depth-first to exhaustion, and reports every improvement it finds.
type Worker struct {
	cm    comm.Comm
	g     *graph.G
	log   zerolog.Logger
	bound *Bound
	stats Stats
}

// NewWorker creates a worker over cm, which must not be rank 0 of its
// job.
func NewWorker(cm comm.Comm, g *graph.G, lg zerolog.Logger) *Worker {
	return &Worker{
		cm:    cm,
		g:     g,
		log:   lg.With().Int("rank", cm.Rank()).Logger(),
		bound: NewBound(uint32(g.Order()) + 1),
	}
}

// Stats returns the counters of the last Run.
func (w *Worker) Stats() Stats {
	return w.stats
}

// Run performs the whole worker role: receive an assignment, search it
// with the bound listener running, report done, and synchronize.  A job
// abort before dispatch (the coordinator searched everything serially)
// is returned as the comm layer's abort error.
func (w *Worker) Run() error {
	m, e := w.cm.Recv(0)
	if e != nil {
		return e
	}

	lis := make(chan error, 1)
	go func() { lis <- w.listen() }()

	switch m.Tag {
	case comm.Initial:
		if e := w.search(m.Node); e != nil {
			return e
		}
	case comm.Idle:
		w.log.Info().Msg("no subtree assigned")
	default:
		return fmt.Errorf("bb: worker received %s at dispatch", m.Tag)
	}

	if e := w.cm.Send(0, comm.Done, coloring.New(w.g.Order())); e != nil {
		return e
	}
	if e := w.cm.Barrier(); e != nil {
		return e
	}
	if e := <-lis; e != nil {
		return e
	}
	w.log.Info().
		Uint64("expanded", w.stats.Expanded).
		Uint64("pruned", w.stats.Pruned).
		Uint64("improved", w.stats.Improved).
		Msg("done")
	return nil
}

// search exhausts the subtree rooted at root.  Children go on the stack
// in reverse so the fewest-colors child is explored first.
func (w *Worker) search(root *coloring.Partial) error {
	stack := []*coloring.Partial{root}
	var kids []*coloring.Partial
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		tot := uint32(curr.Colors())
		if curr.IsFinal() {
			if w.bound.Tighten(tot) {
				w.stats.Improved++
				if e := w.cm.Send(0, comm.Solution, curr); e != nil {
					return e
				}
			}
			continue
		}
		if tot >= w.bound.Value() {
			w.stats.Pruned++
			continue
		}
		w.stats.Expanded++
		kids = curr.Children(w.g, kids[:0])
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return nil
}

// listen applies bound broadcasts until the terminate sentinel.
func (w *Worker) listen() error {
	term := comm.Terminate(w.g.Order())
	for {
		u, e := w.cm.Watch()
		if e != nil {
			return e
		}
		if u == term {
			return nil
		}
		if w.bound.Tighten(u) {
			w.log.Debug().Uint32("ub", u).Msg("bound update")
		}
	}
}
