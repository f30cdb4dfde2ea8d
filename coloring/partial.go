// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package coloring provides the node type of the coloring search tree.
//
// A Partial assigns colors 1..n to a prefix of the vertices of a graph of
// order n.  Colors are introduced in order of first use: the first vertex
// to use color k+1 appears after the first vertex to use color k.  This
// makes each class of colorings under color renaming have exactly one
// representative, so a search over Partials visits every chromatically
// distinct coloring exactly once.
package coloring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soniakeys/bits"

	"github.com/go-exact/chroma/graph"
)

// Partial is a node of the search tree: a proper coloring of the vertices
// 0..Next()-1, with vertices Next()..Order()-1 still uncolored.
//
// A Partial is immutable once created.  Children and Child return fresh
// values.
type Partial struct {
	color []uint32
	next  uint32
	tot   uint32
}

// New creates the root node for a graph of order n: nothing colored.
func New(n int) *Partial {
	return &Partial{color: make([]uint32, n)}
}

// Order returns the order of the underlying graph.
func (p *Partial) Order() int {
	return len(p.color)
}

// Next returns the index of the next vertex to color.
func (p *Partial) Next() int {
	return int(p.next)
}

// Colors returns the number of distinct colors used so far.
func (p *Partial) Colors() int {
	return int(p.tot)
}

// Color returns the color of vertex v: 1-based, or 0 if v is uncolored.
func (p *Partial) Color(v int) uint32 {
	return p.color[v]
}

// IsFinal returns whether every vertex is colored.
func (p *Partial) IsFinal() bool {
	return int(p.next) == len(p.color)
}

// Child returns a copy of p with color c assigned to the next vertex.
// c must be in 1..Colors()+1.
func (p *Partial) Child(c uint32) *Partial {
	if c == 0 || c > p.tot+1 {
		panic(fmt.Sprintf("coloring: child color %d out of range 1..%d", c, p.tot+1))
	}
	q := &Partial{
		color: make([]uint32, len(p.color)),
		next:  p.next + 1,
		tot:   p.tot,
	}
	copy(q.color, p.color)
	q.color[p.next] = c
	if c > p.tot {
		q.tot = c
	}
	return q
}

// Children appends the children of p to dst and returns it.  For the next
// vertex v the children are, in order: one child per existing color
// 1..Colors() not used by a colored neighbor of v, ascending, then one
// child introducing the new color Colors()+1.  A final node has no
// children.
//
// The order is part of the contract: a depth-first search pushing
// children in reverse explores the fewest-colors child first.
func (p *Partial) Children(g *graph.G, dst []*Partial) []*Partial {
	if p.IsFinal() {
		return dst
	}
	v := int(p.next)
	forbidden := bits.New(int(p.tot) + 2)
	g.EachNeighbor(v, func(u int) bool {
		if u < v {
			forbidden.SetBit(int(p.color[u]), 1)
		}
		return true
	})
	for c := uint32(1); c <= p.tot; c++ {
		if forbidden.Bit(int(c)) == 1 {
			continue
		}
		dst = append(dst, p.Child(c))
	}
	return append(dst, p.Child(p.tot+1))
}

// Proper reports whether the colored prefix is a proper partial coloring
// of g: no edge within 0..Next()-1 joins two vertices of equal color.
func (p *Partial) Proper(g *graph.G) bool {
	for v := 0; v < int(p.next); v++ {
		ok := g.EachNeighbor(v, func(u int) bool {
			return u >= int(p.next) || p.color[u] != p.color[v]
		})
		if !ok {
			return false
		}
	}
	return true
}

// Canonical reports whether the node's bookkeeping invariants hold:
// vertices before Next() are colored and the rest are not, each color is
// at most one more than the maximum color before it, and Colors() is the
// maximum assigned color.
func (p *Partial) Canonical() bool {
	max := uint32(0)
	for v, c := range p.color {
		if v < int(p.next) {
			if c == 0 || c > max+1 {
				return false
			}
			if c > max {
				max = c
			}
		} else if c != 0 {
			return false
		}
	}
	return max == p.tot
}

// ErrPayload is returned by Decode for a payload that cannot encode a
// Partial.
var ErrPayload = errors.New("coloring: malformed payload")

// Encode appends the wire form of p to dst and returns it: the n colors
// followed by the color count and the next index, n+2 words in all.
func (p *Partial) Encode(dst []uint32) []uint32 {
	dst = append(dst, p.color...)
	return append(dst, p.tot, p.next)
}

// Decode rebuilds a Partial from its wire form: n+2 words for a graph of
// order n.  Decode fails on a short payload or inconsistent bookkeeping
// fields, but does not check the coloring against any graph.
func Decode(ws []uint32) (*Partial, error) {
	if len(ws) < 2 {
		return nil, ErrPayload
	}
	n := len(ws) - 2
	p := &Partial{
		color: make([]uint32, n),
		tot:   ws[n],
		next:  ws[n+1],
	}
	copy(p.color, ws[:n])
	if int(p.next) > n || !p.Canonical() {
		return nil, ErrPayload
	}
	return p, nil
}

// String renders the assignment, one token per vertex, with "." for an
// uncolored vertex.
func (p *Partial) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d-coloring", p.tot)
	sep := " ["
	for v, c := range p.color {
		if v >= int(p.next) {
			fmt.Fprintf(&sb, "%s.", sep)
		} else {
			fmt.Fprintf(&sb, "%s%d", sep, c)
		}
		sep = " "
	}
	sb.WriteString("]")
	return sb.String()
}
