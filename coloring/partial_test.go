// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package coloring

import (
	"math/rand/v2"
	"testing"

	"github.com/go-exact/chroma/graph"
)

func randGraph(n int, p float64, rnd *rand.Rand) *graph.G {
	g := graph.New(n)
	for u := 0; u < n; u++ {
		for v := 0; v < u; v++ {
			if rnd.Float64() < p {
				g.Add(u, v)
			}
		}
	}
	return g
}

// chiBrute is an independent reference: smallest k admitting a proper
// k-coloring, by plain backtracking.
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

func TestRoot(t *testing.T) {
	p := New(4)
	if p.Next() != 0 || p.Colors() != 0 || p.IsFinal() {
		t.Errorf("bad root: %s", p)
	}
	if !p.Canonical() {
		t.Errorf("root not canonical")
	}
}

func TestChildrenOrder(t *testing.T) {
	// path 0-1-2: at vertex 2 with colors [1 2], color 2 is
	// forbidden, so children are color 1 then the new color 3
	g := graph.New(3)
	g.Add(0, 1)
	g.Add(1, 2)
	p := New(3).Child(1).Child(2)
	kids := p.Children(g, nil)
	if len(kids) != 2 {
		t.Fatalf("%d children", len(kids))
	}
	if kids[0].Color(2) != 1 || kids[1].Color(2) != 3 {
		t.Errorf("children colors %d %d", kids[0].Color(2), kids[1].Color(2))
	}
	if kids[1].Colors() != 3 {
		t.Errorf("new color child has %d colors", kids[1].Colors())
	}
}

func TestChildrenFinal(t *testing.T) {
	g := graph.New(2)
	p := New(2).Child(1).Child(1)
	if !p.IsFinal() {
		t.Fatalf("not final: %s", p)
	}
	if kids := p.Children(g, nil); len(kids) != 0 {
		t.Errorf("final node has %d children", len(kids))
	}
}

// TestChildrenInvariants walks whole trees over random graphs checking
// that every generated node keeps a proper prefix, stays canonical, and
// that the new color child introduces exactly Colors()+1.
func TestChildrenInvariants(t *testing.T) {
	rnd := rand.New(rand.NewPCG(44, 44))
	for round := 0; round < 20; round++ {
		g := randGraph(6, 0.5, rnd)
		stack := []*Partial{New(6)}
		for len(stack) > 0 {
			curr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			kids := curr.Children(g, nil)
			if curr.IsFinal() {
				continue
			}
			last := kids[len(kids)-1]
			if last.Color(curr.Next()) != uint32(curr.Colors())+1 {
				t.Fatalf("new color child got %d at %s", last.Color(curr.Next()), curr)
			}
			for i, k := range kids {
				if !k.Proper(g) {
					t.Fatalf("improper child %s of %s", k, curr)
				}
				if !k.Canonical() {
					t.Fatalf("non-canonical child %s of %s", k, curr)
				}
				if i > 0 && kids[i-1].Color(curr.Next()) >= k.Color(curr.Next()) {
					t.Fatalf("children out of order at %s", curr)
				}
				stack = append(stack, k)
			}
		}
	}
}

// TestChildrenPure checks expansion is a pure function of the graph and
// the node.
func TestChildrenPure(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 3))
	g := randGraph(7, 0.4, rnd)
	p := New(7).Child(1).Child(2).Child(1)
	a := p.Children(g, nil)
	b := p.Children(g, nil)
	if len(a) != len(b) {
		t.Fatalf("lengths %d/%d", len(a), len(b))
	}
	for i := range a {
		if a[i].Color(p.Next()) != b[i].Color(p.Next()) {
			t.Errorf("call %d differs at child %d", i, i)
		}
	}
}

// TestExhaustive checks the tree reaches a leaf of minimum cost: the
// cheapest final node over the whole tree equals the brute force
// chromatic number.
func TestExhaustive(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 7))
	for round := 0; round < 30; round++ {
		n := 2 + rnd.IntN(6)
		g := randGraph(n, rnd.Float64(), rnd)
		min := n + 1
		stack := []*Partial{New(n)}
		for len(stack) > 0 {
			curr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if curr.IsFinal() {
				if curr.Colors() < min {
					min = curr.Colors()
				}
				continue
			}
			stack = append(stack, curr.Children(g, nil)...)
		}
		if want := chiBrute(g); min != want {
			t.Errorf("n=%d: min leaf %d, brute force %d", n, min, want)
		}
	}
}

func TestCodec(t *testing.T) {
	p := New(4).Child(1).Child(2).Child(1)
	ws := p.Encode(nil)
	if len(ws) != 6 {
		t.Fatalf("payload length %d", len(ws))
	}
	q, e := Decode(ws)
	if e != nil {
		t.Fatal(e)
	}
	if q.Next() != p.Next() || q.Colors() != p.Colors() {
		t.Errorf("round trip %s -> %s", p, q)
	}
	for v := 0; v < 4; v++ {
		if p.Color(v) != q.Color(v) {
			t.Errorf("color %d differs", v)
		}
	}
}

func TestDecodeBad(t *testing.T) {
	bad := [][]uint32{
		nil,
		{1},
		{1, 2, 3, 2, 5},       // next out of range
		{1, 0, 1, 1, 3},       // hole in the prefix
		{1, 3, 0, 0, 3, 2},    // color skips 2
		{1, 2, 1, 0, 1, 3},    // count doesn't match prefix
	}
	for i, ws := range bad {
		if _, e := Decode(ws); e == nil {
			t.Errorf("case %d: decoded %v", i, ws)
		}
	}
}
