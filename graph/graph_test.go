// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package graph

import (
	"strings"
	"testing"
)

func TestAddEdge(t *testing.T) {
	g := New(5)
	g.Add(0, 1)
	g.Add(3, 2)
	g.Add(4, 4)
	for u := 0; u < 5; u++ {
		if g.Edge(u, u) {
			t.Errorf("self edge at %d", u)
		}
		for v := 0; v < 5; v++ {
			if g.Edge(u, v) != g.Edge(v, u) {
				t.Errorf("asymmetric at %d,%d", u, v)
			}
		}
	}
	if !g.Edge(0, 1) || !g.Edge(2, 3) {
		t.Errorf("missing edges")
	}
	if g.Size() != 2 {
		t.Errorf("size %d", g.Size())
	}
	if g.Degree(3) != 1 || g.Degree(4) != 0 {
		t.Errorf("degrees %d %d", g.Degree(3), g.Degree(4))
	}
}

func TestEachNeighbor(t *testing.T) {
	g := New(6)
	g.Add(2, 0)
	g.Add(2, 5)
	g.Add(2, 3)
	var ns []int
	g.EachNeighbor(2, func(v int) bool {
		ns = append(ns, v)
		return true
	})
	if len(ns) != 3 || ns[0] != 0 || ns[1] != 3 || ns[2] != 5 {
		t.Errorf("neighbors %v", ns)
	}
	// early stop
	n := 0
	g.EachNeighbor(2, func(v int) bool {
		n++
		return false
	})
	if n != 1 {
		t.Errorf("early stop visited %d", n)
	}
}

func TestReadCol(t *testing.T) {
	g, e := ReadCol(strings.NewReader("c c5\np edge 5 5\ne 1 2\ne 2 3\ne 3 4\ne 4 5\ne 5 1\n"))
	if e != nil {
		t.Fatal(e)
	}
	if g.Order() != 5 || g.Size() != 5 {
		t.Fatalf("order %d size %d", g.Order(), g.Size())
	}
	for u := 0; u < 5; u++ {
		if !g.Edge(u, (u+1)%5) {
			t.Errorf("missing cycle edge %d", u)
		}
		if g.Degree(u) != 2 {
			t.Errorf("degree %d at %d", g.Degree(u), u)
		}
	}
}

func TestReadColBad(t *testing.T) {
	if _, e := ReadCol(strings.NewReader("e 1 2\n")); e == nil {
		t.Errorf("no error for edge before problem line")
	}
	if _, e := ReadCol(strings.NewReader("c nothing\n")); e == nil {
		t.Errorf("no error for missing problem line")
	}
}
