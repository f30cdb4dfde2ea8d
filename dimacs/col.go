// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dimacs provides reading and writing of graphs in the DIMACS
// .col format.
//
// The format is line oriented:
//
//	c <anything>     comment, ignored
//	p edge N M       problem line, declares N vertices and M edges
//	e u v            edge between 1-based vertices u and v
//
// Reading goes through a visitor so callers decide on the graph
// representation.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ColVis is a visitor for reading .col files.
//
// Init is called once, when the problem line is read, with the declared
// order and edge count.  Edge is called for each edge line with 0-based
// endpoints.  Eof is called at the end of input.
type ColVis interface {
	Init(order, size int)
	Edge(u, v int)
	Eof()
}

type ColErr uint32

const (
	ErrNoProblem ColErr = 1 + iota
	ErrDupProblem
	ErrProblemFormat
	ErrNotEdgeProblem
	ErrEdgeFormat
	ErrEndpoint
	ErrLine
	ErrSize
)

func (ce ColErr) String() string {
	switch ce {
	case ErrNoProblem:
		return "no problem line before edges"
	case ErrDupProblem:
		return "duplicate problem line"
	case ErrProblemFormat:
		return "malformed problem line"
	case ErrNotEdgeProblem:
		return "problem line is not edge format"
	case ErrEdgeFormat:
		return "malformed edge line"
	case ErrEndpoint:
		return "edge endpoint out of range"
	case ErrLine:
		return "unknown line type"
	case ErrSize:
		return "edge count doesn't match problem line"
	default:
		return "unknown error"
	}
}

func (ce ColErr) Error() string {
	return ce.String()
}

// ReadCol reads a .col formatted graph from r into vis.  Unknown line
// types are ignored and the declared edge count is not checked against
// the number of edge lines.
func ReadCol(r io.Reader, vis ColVis) error {
	return readCol(r, vis, false)
}

// ReadColStrict is like ReadCol but rejects unknown line types and
// requires exactly the declared number of edge lines.
func ReadColStrict(r io.Reader, vis ColVis) error {
	return readCol(r, vis, true)
}

func readCol(r io.Reader, vis ColVis, strict bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<22)
	ln := 0
	order, size := 0, 0
	es := 0
	sawP := false
	for scanner.Scan() {
		ln++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			if sawP {
				return lineErr(ln, ErrDupProblem)
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return lineErr(ln, ErrProblemFormat)
			}
			if fields[1] != "edge" && fields[1] != "edges" && fields[1] != "col" {
				return lineErr(ln, ErrNotEdgeProblem)
			}
			n, ne := strconv.Atoi(fields[2])
			m, me := strconv.Atoi(fields[3])
			if ne != nil || me != nil || n < 0 || m < 0 {
				return lineErr(ln, ErrProblemFormat)
			}
			order, size = n, m
			sawP = true
			vis.Init(order, size)
		case 'e':
			if !sawP {
				return lineErr(ln, ErrNoProblem)
			}
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return lineErr(ln, ErrEdgeFormat)
			}
			u, ue := strconv.Atoi(fields[1])
			v, ve := strconv.Atoi(fields[2])
			if ue != nil || ve != nil {
				return lineErr(ln, ErrEdgeFormat)
			}
			if u < 1 || u > order || v < 1 || v > order {
				return lineErr(ln, ErrEndpoint)
			}
			es++
			vis.Edge(u-1, v-1)
		default:
			if strict {
				return lineErr(ln, ErrLine)
			}
		}
	}
	if e := scanner.Err(); e != nil {
		return e
	}
	if !sawP {
		return ErrNoProblem
	}
	if strict && es != size {
		return ErrSize
	}
	vis.Eof()
	return nil
}

func lineErr(ln int, ce ColErr) error {
	return fmt.Errorf("col: line %d: %w", ln, ce)
}

// ColGraph is the view of a graph the writer needs.
type ColGraph interface {
	Order() int
	Edge(u, v int) bool
}

// WriteCol writes g to w in .col format, one edge line per edge {u, v}
// with u < v.
func WriteCol(w io.Writer, g ColGraph) error {
	n := g.Order()
	m := 0
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if g.Edge(u, v) {
				m++
			}
		}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p edge %d %d\n", n, m)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if g.Edge(u, v) {
				fmt.Fprintf(bw, "e %d %d\n", u+1, v+1)
			}
		}
	}
	return bw.Flush()
}
