// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package graph provides the adjacency relation over which chroma colors.
//
// A graph is a fixed-order simple undirected graph with vertices
// 0..Order()-1.  The relation is symmetric with a false diagonal and is
// stored as one bit row per vertex.  Graphs are meant to be built once,
// before any search starts, and read concurrently afterwards.
package graph

import (
	"io"

	"github.com/soniakeys/bits"

	"github.com/go-exact/chroma/dimacs"
)

// G is a simple undirected graph over vertices 0..n-1.
type G struct {
	n    int
	rows []bits.Bits
}

// New creates a graph with order n and no edges.
func New(n int) *G {
	g := &G{n: n, rows: make([]bits.Bits, n)}
	for i := range g.rows {
		g.rows[i] = bits.New(n)
	}
	return g
}

// Order returns the number of vertices.
func (g *G) Order() int {
	return g.n
}

// Add adds the undirected edge {u, v}.  Self edges are ignored, keeping
// the diagonal false.  Add implements inter.EdgeAdder.
func (g *G) Add(u, v int) {
	if u == v {
		return
	}
	g.rows[u].SetBit(v, 1)
	g.rows[v].SetBit(u, 1)
}

// Edge returns whether {u, v} is an edge.
func (g *G) Edge(u, v int) bool {
	return g.rows[u].Bit(v) == 1
}

// Degree returns the number of neighbors of u.
func (g *G) Degree(u int) int {
	return g.rows[u].OnesCount()
}

// Size returns the number of edges.
func (g *G) Size() int {
	d := 0
	for u := 0; u < g.n; u++ {
		d += g.rows[u].OnesCount()
	}
	return d / 2
}

// EachNeighbor calls f for every neighbor of u in increasing order until f
// returns false.  It returns true if every call to f returned true.
func (g *G) EachNeighbor(u int, f func(v int) bool) bool {
	return g.rows[u].IterateOnes(f)
}

// ReadCol reads a graph in DIMACS .col format from r.
func ReadCol(r io.Reader) (*G, error) {
	b := &builder{}
	if e := dimacs.ReadCol(r, b); e != nil {
		return nil, e
	}
	return b.g, nil
}

type builder struct {
	g *G
}

func (b *builder) Init(order, size int) { b.g = New(order) }
func (b *builder) Edge(u, v int)        { b.g.Add(u, v) }
func (b *builder) Eof()                 {}
