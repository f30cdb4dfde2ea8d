// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package wire

import (
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-exact/chroma/coloring"
	"github.com/go-exact/chroma/comm"
	"github.com/go-exact/chroma/graph"
)

// Join dials the coordinator at addr and completes the handshake.  It
// returns the worker's communicator and its replica of the graph.
func Join(addr string, lg zerolog.Logger) (comm.Comm, *graph.G, error) {
	nc, e := net.Dial("tcp", addr)
	if e != nil {
		return nil, nil, e
	}
	io := newVu32(nc)
	if e := hearHello(io); e != nil {
		nc.Close()
		return nil, nil, e
	}
	run, e := readRun(io)
	if e != nil {
		nc.Close()
		return nil, nil, e
	}
	rank, e := io.readData()
	if e != nil {
		nc.Close()
		return nil, nil, e
	}
	size, e := io.readData()
	if e != nil {
		nc.Close()
		return nil, nil, e
	}
	g, e := readGraph(io)
	if e != nil {
		nc.Close()
		return nil, nil, e
	}
	if e := sayHello(io); e != nil {
		nc.Close()
		return nil, nil, e
	}
	if e := io.flush(); e != nil {
		nc.Close()
		return nil, nil, e
	}
	w := &worker{
		rank:    int(rank),
		size:    int(size),
		nc:      nc,
		io:      io,
		nodeCh:  make(chan comm.Msg, 2),
		boundCh: make(chan uint32, g.Order()+2),
		barCh:   make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	lg.Info().Str("run", run.String()).Int("rank", w.rank).Int("size", w.size).
		Int("order", g.Order()).Msg("joined job")
	go w.read()
	return w, g, nil
}

type worker struct {
	rank, size int
	nc         net.Conn
	mu         sync.Mutex // guards the write side
	io         *vu32

	nodeCh  chan comm.Msg
	boundCh chan uint32
	barCh   chan struct{}

	once sync.Once
	err  error
	done chan struct{}
}

// read demultiplexes coordinator traffic: nodes to the main loop, bound
// casts to the listener, barrier releases and aborts to whoever waits.
func (w *worker) read() {
	for {
		u, e := w.io.read()
		if e != nil {
			w.down(e)
			return
		}
		switch Op(u) {
		case OpNode:
			tag, node, ne := readNode(w.io)
			if ne != nil {
				w.down(ne)
				return
			}
			select {
			case w.nodeCh <- comm.Msg{From: 0, Tag: tag, Node: node}:
			case <-w.done:
				return
			}
		case OpBound:
			b, be := w.io.readData()
			if be != nil {
				w.down(be)
				return
			}
			select {
			case w.boundCh <- b:
			case <-w.done:
				return
			}
		case OpBarrier:
			select {
			case w.barCh <- struct{}{}:
			case <-w.done:
				return
			}
		case OpAbort:
			code, ce := w.io.readData()
			if ce != nil {
				w.down(ce)
				return
			}
			w.down(&comm.AbortError{Code: int(code)})
			return
		default:
			w.down(ErrOp)
			return
		}
	}
}

func (w *worker) down(e error) {
	w.once.Do(func() {
		w.err = e
		close(w.done)
		w.nc.Close()
	})
}

func (w *worker) Rank() int { return w.rank }
func (w *worker) Size() int { return w.size }

func (w *worker) Send(to int, tag comm.Tag, node *coloring.Partial) error {
	if to != 0 {
		return ErrRankOp
	}
	select {
	case <-w.done:
		return w.err
	default:
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if e := writeNode(w.io, tag, node); e != nil {
		return e
	}
	return w.io.flush()
}

func (w *worker) Recv(from int) (comm.Msg, error) {
	select {
	case m := <-w.nodeCh:
		return m, nil
	case <-w.done:
		return comm.Msg{}, w.err
	}
}

func (w *worker) Cast(u uint32) error {
	return ErrRankOp
}

func (w *worker) Watch() (uint32, error) {
	select {
	case u := <-w.boundCh:
		return u, nil
	case <-w.done:
		return 0, w.err
	}
}

// Barrier signals arrival and blocks for the coordinator's release.
func (w *worker) Barrier() error {
	w.mu.Lock()
	e := w.io.writeFlush(uint32(OpBarrier))
	w.mu.Unlock()
	if e != nil {
		return e
	}
	select {
	case <-w.barCh:
		return nil
	case <-w.done:
		return w.err
	}
}

func (w *worker) Abort(code int) {
	w.mu.Lock()
	w.io.writeFlush(uint32(OpAbort), uint32(code))
	w.mu.Unlock()
	w.down(&comm.AbortError{Code: code})
}

func (w *worker) Close() error {
	e := w.nc.Close()
	if e != nil {
		return fmt.Errorf("wire: close rank %d: %w", w.rank, e)
	}
	return nil
}
