// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package chroma

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/go-exact/chroma/coloring"
	"github.com/go-exact/chroma/gen"
	"github.com/go-exact/chroma/graph"
)

func solve(t *testing.T, g *graph.G, workers int) *coloring.Partial {
	t.Helper()
	best, err := Solve(g, Options{Workers: workers})
	if err != nil && !errors.Is(err, ErrNoParallel) {
		t.Fatal(err)
	}
	if best == nil || !best.IsFinal() || !best.Proper(g) {
		t.Fatalf("bad result %v", best)
	}
	return best
}

func TestComplete4(t *testing.T) {
	g := graph.New(4)
	gen.Complete(g, 4)
	if got := solve(t, g, 3).Colors(); got != 4 {
		t.Errorf("K4: %d", got)
	}
}

func TestCycle5(t *testing.T) {
	g := graph.New(5)
	gen.Cycle(g, 5)
	if got := solve(t, g, 3).Colors(); got != 3 {
		t.Errorf("C5: %d", got)
	}
}

func TestPetersen(t *testing.T) {
	g := graph.New(10)
	gen.Petersen(g)
	if got := solve(t, g, 4).Colors(); got != 3 {
		t.Errorf("Petersen: %d", got)
	}
}

func TestEmpty6(t *testing.T) {
	g := graph.New(6)
	best := solve(t, g, 3)
	if best.Colors() != 1 {
		t.Errorf("empty graph: %d", best.Colors())
	}
	for v := 0; v < 6; v++ {
		if best.Color(v) != 1 {
			t.Errorf("vertex %d got color %d", v, best.Color(v))
		}
	}
}

func TestBipartite33(t *testing.T) {
	g := graph.New(6)
	gen.Bipartite(g, 3, 3)
	if got := solve(t, g, 3).Colors(); got != 2 {
		t.Errorf("K33: %d", got)
	}
}

func TestStar8(t *testing.T) {
	g := graph.New(8)
	gen.Star(g, 8)
	best := solve(t, g, 3)
	if best.Colors() != 2 {
		t.Fatalf("star: %d", best.Colors())
	}
	if best.Color(0) != 1 {
		t.Errorf("center color %d", best.Color(0))
	}
	for v := 1; v < 8; v++ {
		if best.Color(v) != 2 {
			t.Errorf("leaf %d color %d", v, best.Color(v))
		}
	}
}

func TestChi(t *testing.T) {
	g := graph.New(5)
	gen.Cycle(g, 5)
	chi, err := Chi(g)
	if err != nil {
		t.Fatal(err)
	}
	if chi != 3 {
		t.Errorf("chi %d", chi)
	}
}

func TestSolver(t *testing.T) {
	g := graph.New(10)
	gen.Petersen(g)
	s := New(g, Options{Workers: 2, GreedySeed: true})
	best, err := s.Solve()
	if err != nil {
		t.Fatal(err)
	}
	if best.Colors() != 3 {
		t.Errorf("chi %d", best.Colors())
	}
}

// chiBrute is an independent backtracking reference.
func chiBrute(g *graph.G) int {
	n := g.Order()
	cs := make([]uint32, n)
	var try func(v int, k uint32) bool
	try = func(v int, k uint32) bool {
		if v == n {
			return true
		}
		for c := uint32(1); c <= k; c++ {
			ok := g.EachNeighbor(v, func(u int) bool {
				return u >= v || cs[u] != c
			})
			if !ok {
				continue
			}
			cs[v] = c
			if try(v+1, k) {
				return true
			}
			cs[v] = 0
		}
		return false
	}
	for k := uint32(1); k <= uint32(n); k++ {
		if try(0, k) {
			return int(k)
		}
	}
	return 0
}

// TestRandom cross-checks the distributed result against the reference
// on small random graphs.
func TestRandom(t *testing.T) {
	rnd := rand.New(rand.NewPCG(13, 13))
	for round := 0; round < 15; round++ {
		n := 4 + rnd.IntN(5)
		g := graph.New(n)
		if e := gen.Gnm(g, n, rnd.IntN(n*(n-1)/2+1), rnd); e != nil {
			t.Fatal(e)
		}
		want := chiBrute(g)
		if got := solve(t, g, 3).Colors(); got != want {
			t.Errorf("n=%d: got %d want %d", n, got, want)
		}
	}
}
