// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dimacs

import (
	"bytes"
	"strings"
	"testing"
)

type colTestData struct {
	D         string
	Strict    bool
	NonStrict bool
}

var cols = []colTestData{
	{`c this
c is
c only
c comments
`, false, false},
	{`c triangle
p edge 3 3
e 1 2
e 2 3
e 1 3
`, true, true},
	{`p edge 4 2
e 1 2
e 3 4`, true, true},
	{`p edge 3 3
e 1 2
`, false, true}, // declared size off, only strict cares
	{`e 1 2
p edge 3 1
`, false, false}, // edge before problem line
	{`p edge 3 1
e 0 2
`, false, false}, // endpoints are 1-based
	{`p edge 3 1
e 1 4
`, false, false},
	{`p cnf 3 1
e 1 2
`, false, false}, // not an edge problem
	{`p edge 3 1
e 1 2
p edge 3 1
`, false, false},
	{`p edge 3 1
x whatever
e 1 2
`, false, true}, // unknown line type, only strict cares
	{`p edge x 1
e 1 2
`, false, false},
}

type countVis struct {
	order, size int
	es          int
	eof         bool
}

func (c *countVis) Init(order, size int) { c.order, c.size = order, size }
func (c *countVis) Edge(u, v int)        { c.es++ }
func (c *countVis) Eof()                 { c.eof = true }

func TestReadColStrict(t *testing.T) {
	for i, d := range cols {
		b := bytes.NewBufferString(d.D)
		e := ReadColStrict(b, &countVis{})
		if d.Strict != (e == nil) {
			t.Errorf("case %d: strict/error mismatch %t/%t: %s", i, d.Strict, e == nil, e)
		}
	}
}

func TestReadCol(t *testing.T) {
	for i, d := range cols {
		b := bytes.NewBufferString(d.D)
		e := ReadCol(b, &countVis{})
		if d.NonStrict != (e == nil) {
			t.Errorf("case %d: non-strict/error mismatch %t/%t: %s", i, d.NonStrict, e == nil, e)
		}
	}
}

func TestReadColVisits(t *testing.T) {
	vis := &countVis{}
	e := ReadCol(bytes.NewBufferString("c k4\np edge 4 6\ne 1 2\ne 1 3\ne 1 4\ne 2 3\ne 2 4\ne 3 4\n"), vis)
	if e != nil {
		t.Fatal(e)
	}
	if vis.order != 4 || vis.size != 6 {
		t.Errorf("problem line: got %d/%d", vis.order, vis.size)
	}
	if vis.es != 6 {
		t.Errorf("edge visits: got %d", vis.es)
	}
	if !vis.eof {
		t.Errorf("no eof visit")
	}
}

type sliceGraph struct {
	n  int
	es [][2]int
}

func (g *sliceGraph) Order() int { return g.n }
func (g *sliceGraph) Edge(u, v int) bool {
	for _, e := range g.es {
		if (e[0] == u && e[1] == v) || (e[0] == v && e[1] == u) {
			return true
		}
	}
	return false
}

func TestWriteCol(t *testing.T) {
	g := &sliceGraph{n: 3, es: [][2]int{{0, 1}, {1, 2}}}
	var b bytes.Buffer
	if e := WriteCol(&b, g); e != nil {
		t.Fatal(e)
	}
	want := "p edge 3 2\ne 1 2\ne 2 3\n"
	if b.String() != want {
		t.Errorf("got %q want %q", b.String(), want)
	}
	// and it reads back
	vis := &countVis{}
	if e := ReadColStrict(strings.NewReader(b.String()), vis); e != nil {
		t.Fatal(e)
	}
	if vis.order != 3 || vis.es != 2 {
		t.Errorf("round trip: %d/%d", vis.order, vis.es)
	}
}
