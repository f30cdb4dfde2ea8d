// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"math/rand/v2"
	"testing"

	"github.com/go-exact/chroma/graph"
)

func TestComplete(t *testing.T) {
	g := graph.New(5)
	Complete(g, 5)
	if g.Size() != 10 {
		t.Errorf("size %d", g.Size())
	}
	for u := 0; u < 5; u++ {
		if g.Degree(u) != 4 {
			t.Errorf("degree %d at %d", g.Degree(u), u)
		}
	}
}

func TestCycle(t *testing.T) {
	g := graph.New(6)
	Cycle(g, 6)
	if g.Size() != 6 {
		t.Errorf("size %d", g.Size())
	}
	for u := 0; u < 6; u++ {
		if !g.Edge(u, (u+1)%6) {
			t.Errorf("missing edge at %d", u)
		}
	}
}

func TestStar(t *testing.T) {
	g := graph.New(8)
	Star(g, 8)
	if g.Degree(0) != 7 {
		t.Errorf("center degree %d", g.Degree(0))
	}
	for v := 1; v < 8; v++ {
		if g.Degree(v) != 1 {
			t.Errorf("leaf degree %d at %d", g.Degree(v), v)
		}
	}
}

func TestBipartite(t *testing.T) {
	g := graph.New(6)
	Bipartite(g, 3, 3)
	if g.Size() != 9 {
		t.Errorf("size %d", g.Size())
	}
	for u := 0; u < 3; u++ {
		for v := 0; v < 3; v++ {
			if g.Edge(u, v) {
				t.Errorf("edge inside part: %d,%d", u, v)
			}
		}
	}
}

func TestPetersen(t *testing.T) {
	g := graph.New(10)
	Petersen(g)
	if g.Size() != 15 {
		t.Errorf("size %d", g.Size())
	}
	for u := 0; u < 10; u++ {
		if g.Degree(u) != 3 {
			t.Errorf("degree %d at %d", g.Degree(u), u)
		}
	}
	// girth 5: no triangles through 0
	for u := 0; u < 10; u++ {
		for v := 0; v < u; v++ {
			if g.Edge(u, v) && g.Edge(u, 0) && g.Edge(v, 0) {
				t.Errorf("triangle 0,%d,%d", v, u)
			}
		}
	}
}

func TestGnm(t *testing.T) {
	rnd := rand.New(rand.NewPCG(9, 9))
	g := graph.New(10)
	if e := Gnm(g, 10, 17, rnd); e != nil {
		t.Fatal(e)
	}
	if g.Size() != 17 {
		t.Errorf("size %d", g.Size())
	}
	if e := Gnm(graph.New(4), 4, 7, rnd); e == nil {
		t.Errorf("no error for too many edges")
	}
}

func TestGnp(t *testing.T) {
	src := rand.NewPCG(11, 11)
	g := graph.New(12)
	if e := Gnp(g, 12, 1, src); e != nil {
		t.Fatal(e)
	}
	if g.Size() != 66 {
		t.Errorf("p=1 size %d", g.Size())
	}
	h := graph.New(12)
	if e := Gnp(h, 12, 0, src); e != nil {
		t.Fatal(e)
	}
	if h.Size() != 0 {
		t.Errorf("p=0 size %d", h.Size())
	}
}
