// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"fmt"
	"math/rand/v2"

	rgen "gonum.org/v1/gonum/graph/graphs/gen"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/go-exact/chroma/inter"
)

// Gnp adds the edges of a Bernoulli random graph on n vertices: each of
// the n*(n-1)/2 possible edges is present independently with probability
// p.  If src is nil the global source is used.
func Gnp(dst inter.EdgeAdder, n int, p float64, src rand.Source) error {
	ug := simple.NewUndirectedGraph()
	if e := rgen.Gnp(ug, n, p, src); e != nil {
		return e
	}
	it := ug.Edges()
	for it.Next() {
		e := it.Edge()
		dst.Add(int(e.From().ID()), int(e.To().ID()))
	}
	return nil
}

// Gnm adds the edges of a random graph on n vertices with exactly m
// edges, sampled without replacement, so there are no multi-edges and no
// self edges.  Gnm fails if m exceeds n*(n-1)/2.
func Gnm(dst inter.EdgeAdder, n, m int, rnd *rand.Rand) error {
	if m > n*(n-1)/2 {
		return fmt.Errorf("gen: %d edges > %d possible", m, n*(n-1)/2)
	}
	type edge struct {
		u, v int
	}
	es := make([]edge, 0, n*(n-1)/2)
	for u := 0; u < n; u++ {
		for v := 0; v < u; v++ {
			es = append(es, edge{u, v})
		}
	}
	intn := rand.IntN
	if rnd != nil {
		intn = rnd.IntN
	}
	for i := 0; i < m; i++ {
		el := len(es)
		j := intn(el)
		e := es[j]
		dst.Add(e.u, e.v)
		el--
		es[j], es[el] = es[el], es[j]
		es = es[:el]
	}
	return nil
}
