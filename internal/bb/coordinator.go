// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bb

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-exact/chroma/coloring"
	"github.com/go-exact/chroma/comm"
	"github.com/go-exact/chroma/graph"
)

// ErrNoParallel reports that the frontier drained during its
// construction: the whole tree was searched on rank 0 and the workers
// were never used.  The job is aborted with ExitNoParallel and the
// result is still the optimum.
var ErrNoParallel = errors.New("bb: search finished during frontier construction")

// ExitNoParallel is the process exit code for the ErrNoParallel case.
const ExitNoParallel = 69

// Coordinator is rank 0: it grows the initial frontier breadth-first,
// hands one subtree to each worker, collects improvements, and
// rebroadcasts the bound.
type Coordinator struct {
	// Seed starts the bound from a greedy first-fit coloring instead
	// of order+1.  The greedy coloring is canonical, so it doubles as
	// the initial best.
	Seed bool

	cm  comm.Comm
	g   *graph.G
	log zerolog.Logger

	// mu pairs the bound with the best coloring so the announced best
	// always matches the announced bound.
	mu   sync.Mutex
	ub   uint32
	best *coloring.Partial
}

// NewCoordinator creates a coordinator over cm, which must be rank 0 of
// its job.
func NewCoordinator(cm comm.Comm, g *graph.G, lg zerolog.Logger) *Coordinator {
	return &Coordinator{
		cm:  cm,
		g:   g,
		log: lg.With().Int("rank", 0).Logger(),
	}
}

// Run performs the whole coordinator role and returns the optimum.  The
// returned coloring is final and its color count is the chromatic
// number.  If the frontier drained before dispatch the error is
// ErrNoParallel and the result is still valid.
func (c *Coordinator) Run() (*coloring.Partial, error) {
	n := c.g.Order()
	c.ub = uint32(n) + 1
	if c.Seed {
		c.best = Greedy(c.g)
		c.ub = uint32(c.best.Colors())
		c.log.Info().Uint32("ub", c.ub).Msg("seeded bound from greedy coloring")
	}

	frontier := c.frontier()
	if frontier == nil {
		c.log.Info().Int("colors", c.best.Colors()).
			Msg("searched serially; no workers used")
		c.cm.Abort(ExitNoParallel)
		return c.best, ErrNoParallel
	}
	c.log.Info().Int("frontier", len(frontier)).Uint32("ub", c.ub).
		Int("idle", c.cm.Size()-1-len(frontier)).Msg("frontier built")

	if e := c.dispatch(frontier); e != nil {
		return nil, e
	}

	lis := make(chan error, 1)
	go func() { lis <- c.listen() }()

	if e := c.cm.Barrier(); e != nil {
		return nil, e
	}
	if e := <-lis; e != nil {
		return nil, e
	}
	c.mu.Lock()
	best := c.best
	c.mu.Unlock()
	c.log.Info().Int("colors", best.Colors()).Msg("optimum found")
	return best, nil
}

// frontier grows the search tree breadth-first until the queue holds at
// most one subtree root per worker, and returns those roots.  It
// returns nil if the tree drained first, leaving the optimum recorded.
func (c *Coordinator) frontier() []*coloring.Partial {
	w := c.cm.Size() - 1
	q := []*coloring.Partial{coloring.New(c.g.Order())}
	head := 0
	var kids []*coloring.Partial
	for head < len(q) {
		curr := q[head]
		head++
		if curr.IsFinal() {
			if uint32(curr.Colors()) < c.ub {
				c.ub = uint32(curr.Colors())
				c.best = curr
				c.log.Info().Uint32("ub", c.ub).Msg("improved during frontier construction")
			}
			continue
		}
		if uint32(curr.Colors()) >= c.ub {
			continue
		}
		kids = curr.Children(c.g, kids[:0])
		if len(q)-head+len(kids) <= w {
			q = append(q, kids...)
			continue
		}
		// the frontier is as wide as the job; the unexpanded node
		// goes back on the end and keeps its subtree
		q = append(q, curr)
		return q[head:]
	}
	return nil
}

// dispatch sends each frontier node to its worker and an idle notice to
// every worker left over, then tells everyone the bound found so far.
func (c *Coordinator) dispatch(frontier []*coloring.Partial) error {
	for i, node := range frontier {
		if e := c.cm.Send(i+1, comm.Initial, node); e != nil {
			return e
		}
	}
	dummy := coloring.New(c.g.Order())
	for r := len(frontier) + 1; r < c.cm.Size(); r++ {
		if e := c.cm.Send(r, comm.Idle, dummy); e != nil {
			return e
		}
	}
	if c.ub <= uint32(c.g.Order()) {
		return c.cm.Cast(c.ub)
	}
	return nil
}

// listen receives worker traffic until every worker is done, then
// releases their listeners with the terminate sentinel.  Improvements
// not strictly below the bound are dropped: they lost a race with a
// broadcast already sent.
func (c *Coordinator) listen() error {
	w := c.cm.Size() - 1
	done := 0
	for done < w {
		m, e := c.cm.Recv(comm.AnySource)
		if e != nil {
			return e
		}
		switch m.Tag {
		case comm.Solution:
			if e := c.record(m.From, m.Node); e != nil {
				return e
			}
		case comm.Done:
			done++
		default:
			return fmt.Errorf("bb: coordinator received %s from rank %d", m.Tag, m.From)
		}
	}
	return c.cm.Cast(comm.Terminate(c.g.Order()))
}

// record applies one reported solution, rebroadcasting the bound if it
// strictly improved.  The bound and the best coloring move together
// under the lock.
func (c *Coordinator) record(from int, node *coloring.Partial) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	tot := uint32(node.Colors())
	if !node.IsFinal() || tot >= c.ub {
		return nil
	}
	c.ub = tot
	c.best = node
	c.log.Info().Int("from", from).Uint32("ub", tot).Msg("improved solution")
	return c.cm.Cast(tot)
}

// Greedy colors vertices 0..n-1 first-fit and returns the complete
// coloring.  Its color count is an upper bound on the chromatic number,
// and first-fit introduces colors in first-use order, so the result is
// a legal search-tree leaf.
func Greedy(g *graph.G) *coloring.Partial {
	p := coloring.New(g.Order())
	for v := 0; v < g.Order(); v++ {
		c := uint32(1)
		for ; c <= uint32(p.Colors()); c++ {
			ok := g.EachNeighbor(v, func(u int) bool {
				return u >= v || p.Color(u) != c
			})
			if ok {
				break
			}
		}
		p = p.Child(c)
	}
	return p
}
