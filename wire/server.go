// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package wire

import (
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-exact/chroma/coloring"
	"github.com/go-exact/chroma/comm"
	"github.com/go-exact/chroma/graph"
)

// Server is the coordinator end of a cluster job.  It accepts exactly
// workers connections, assigns each a rank and ships it the graph, and
// then acts as rank 0's communicator.
type Server struct {
	ln      net.Listener
	g       *graph.G
	workers int
	run     uuid.UUID
	log     zerolog.Logger
}

// NewServer starts listening on addr for a job with the given number of
// workers over g.  A listener that cannot be established is fatal to the
// job; there is no degraded mode.
func NewServer(addr string, workers int, g *graph.G, lg zerolog.Logger) (*Server, error) {
	if workers < 1 {
		return nil, fmt.Errorf("wire: %d workers", workers)
	}
	ln, e := net.Listen("tcp", addr)
	if e != nil {
		return nil, e
	}
	run := uuid.New()
	return &Server{
		ln:      ln,
		g:       g,
		workers: workers,
		run:     run,
		log:     lg.With().Str("run", run.String()).Logger(),
	}, nil
}

// Addr returns the listen address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Run returns the job's run id.
func (s *Server) Run() uuid.UUID {
	return s.run
}

// Wait accepts and handshakes every worker, then returns the rank 0
// communicator.  The listener is closed once all workers have joined;
// the job's membership is fixed from then on.
func (s *Server) Wait() (comm.Comm, error) {
	c := &coord{
		s:     s,
		conns: make([]*wconn, s.workers),
		inbox: make(chan comm.Msg, 2*(s.workers+1)),
		barCh: make(chan int, s.workers),
		errCh: make(chan error, s.workers),
		done:  make(chan struct{}),
	}
	for i := 0; i < s.workers; i++ {
		nc, e := s.ln.Accept()
		if e != nil {
			s.ln.Close()
			return nil, e
		}
		rank := i + 1
		wc, he := s.handshake(nc, rank)
		if he != nil {
			nc.Close()
			s.ln.Close()
			return nil, fmt.Errorf("wire: handshake with rank %d: %w", rank, he)
		}
		c.conns[i] = wc
		s.log.Info().Int("rank", rank).Stringer("from", nc.RemoteAddr()).Msg("worker joined")
	}
	s.ln.Close()
	for _, wc := range c.conns {
		go c.read(wc)
	}
	return c, nil
}

func (s *Server) handshake(nc net.Conn, rank int) (*wconn, error) {
	io := newVu32(nc)
	if e := sayHello(io); e != nil {
		return nil, e
	}
	if e := writeRun(io, s.run); e != nil {
		return nil, e
	}
	if e := io.writeFlush(uint32(rank), uint32(s.workers+1)); e != nil {
		return nil, e
	}
	if e := writeGraph(io, s.g); e != nil {
		return nil, e
	}
	if e := io.flush(); e != nil {
		return nil, e
	}
	if e := hearHello(io); e != nil {
		return nil, e
	}
	return &wconn{rank: rank, nc: nc, io: io}, nil
}

// wconn is one worker connection.  mu guards the write side: rank 0's
// main loop and its listener both send.
type wconn struct {
	rank int
	nc   net.Conn
	mu   sync.Mutex
	io   *vu32
}

type coord struct {
	s     *Server
	conns []*wconn
	inbox chan comm.Msg
	barCh chan int
	errCh chan error

	once sync.Once
	code int
	done chan struct{}
}

// read demultiplexes one worker's inbound traffic.
func (c *coord) read(wc *wconn) {
	for {
		u, e := wc.io.read()
		if e != nil {
			select {
			case c.errCh <- fmt.Errorf("wire: rank %d: %w", wc.rank, e):
			case <-c.done:
			}
			return
		}
		switch Op(u) {
		case OpNode:
			tag, node, ne := readNode(wc.io)
			if ne != nil {
				c.fail(ne, wc.rank)
				return
			}
			select {
			case c.inbox <- comm.Msg{From: wc.rank, Tag: tag, Node: node}:
			case <-c.done:
				return
			}
		case OpBarrier:
			select {
			case c.barCh <- wc.rank:
			case <-c.done:
				return
			}
		case OpAbort:
			code, ce := wc.io.readData()
			if ce != nil {
				c.fail(ce, wc.rank)
				return
			}
			c.down(int(code))
			return
		default:
			c.fail(ErrOp, wc.rank)
			return
		}
	}
}

func (c *coord) fail(e error, rank int) {
	select {
	case c.errCh <- fmt.Errorf("wire: rank %d: %w", rank, e):
	case <-c.done:
	}
}

// down marks the job aborted and severs every connection.
func (c *coord) down(code int) {
	c.once.Do(func() {
		c.code = code
		close(c.done)
		for _, wc := range c.conns {
			wc.nc.Close()
		}
	})
}

func (c *coord) err() error {
	return &comm.AbortError{Code: c.code}
}

func (c *coord) Rank() int { return 0 }
func (c *coord) Size() int { return c.s.workers + 1 }

func (c *coord) Send(to int, tag comm.Tag, node *coloring.Partial) error {
	if to < 1 || to > c.s.workers {
		return ErrRankOp
	}
	wc := c.conns[to-1]
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if e := writeNode(wc.io, tag, node); e != nil {
		return e
	}
	return wc.io.flush()
}

func (c *coord) Recv(from int) (comm.Msg, error) {
	select {
	case m := <-c.inbox:
		return m, nil
	case e := <-c.errCh:
		return comm.Msg{}, e
	case <-c.done:
		return comm.Msg{}, c.err()
	}
}

func (c *coord) Cast(u uint32) error {
	for _, wc := range c.conns {
		wc.mu.Lock()
		e := wc.io.writeFlush(uint32(OpBound), u)
		wc.mu.Unlock()
		if e != nil {
			return e
		}
	}
	return nil
}

func (c *coord) Watch() (uint32, error) {
	return 0, ErrRankOp
}

// Barrier waits for every worker's arrival and then releases them all.
func (c *coord) Barrier() error {
	seen := 0
	for seen < c.s.workers {
		select {
		case <-c.barCh:
			seen++
		case e := <-c.errCh:
			return e
		case <-c.done:
			return c.err()
		}
	}
	for _, wc := range c.conns {
		wc.mu.Lock()
		e := wc.io.writeFlush(uint32(OpBarrier))
		wc.mu.Unlock()
		if e != nil {
			return e
		}
	}
	return nil
}

func (c *coord) Abort(code int) {
	for _, wc := range c.conns {
		wc.mu.Lock()
		wc.io.writeFlush(uint32(OpAbort), uint32(code))
		wc.mu.Unlock()
	}
	c.down(code)
}

func (c *coord) Close() error {
	var e error
	for _, wc := range c.conns {
		if ce := wc.nc.Close(); ce != nil && e == nil {
			e = ce
		}
	}
	return e
}
