// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package wire

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/go-exact/chroma/coloring"
	"github.com/go-exact/chroma/comm"
	"github.com/go-exact/chroma/graph"
)

// Message helpers.  None of these flush; the caller owns message
// boundaries and flushing.

func writeNode(v *vu32, tag comm.Tag, node *coloring.Partial) error {
	ws := node.Encode(make([]uint32, 0, node.Order()+2))
	if e := v.write(uint32(OpNode)); e != nil {
		return e
	}
	if e := v.write(uint32(tag)); e != nil {
		return e
	}
	if e := v.write(uint32(len(ws))); e != nil {
		return e
	}
	for _, w := range ws {
		if e := v.write(w); e != nil {
			return e
		}
	}
	return nil
}

// readNode reads the body of an OpNode frame; the opcode itself has
// already been consumed.
func readNode(v *vu32) (comm.Tag, *coloring.Partial, error) {
	t, e := v.readData()
	if e != nil {
		return 0, nil, e
	}
	n, e := v.readData()
	if e != nil {
		return 0, nil, e
	}
	ws := make([]uint32, n)
	for i := range ws {
		if ws[i], e = v.readData(); e != nil {
			return 0, nil, e
		}
	}
	node, e := coloring.Decode(ws)
	if e != nil {
		return 0, nil, ErrPayload
	}
	tag := comm.Tag(t)
	switch tag {
	case comm.Initial, comm.Idle, comm.Solution, comm.Done:
	default:
		return 0, nil, ErrPayload
	}
	return tag, node, nil
}

func writeGraph(v *vu32, g *graph.G) error {
	if e := v.write(uint32(OpGraph)); e != nil {
		return e
	}
	n := g.Order()
	if e := v.write(uint32(n)); e != nil {
		return e
	}
	if e := v.write(uint32(g.Size())); e != nil {
		return e
	}
	for u := 0; u < n; u++ {
		for w := u + 1; w < n; w++ {
			if !g.Edge(u, w) {
				continue
			}
			if e := v.write(uint32(u)); e != nil {
				return e
			}
			if e := v.write(uint32(w)); e != nil {
				return e
			}
		}
	}
	return nil
}

func readGraph(v *vu32) (*graph.G, error) {
	op, e := v.read()
	if e != nil {
		return nil, e
	}
	if Op(op) != OpGraph {
		return nil, ErrOp
	}
	n, e := v.readData()
	if e != nil {
		return nil, e
	}
	m, e := v.readData()
	if e != nil {
		return nil, e
	}
	g := graph.New(int(n))
	for i := uint32(0); i < m; i++ {
		a, e := v.readData()
		if e != nil {
			return nil, e
		}
		b, e := v.readData()
		if e != nil {
			return nil, e
		}
		if a >= n || b >= n {
			return nil, ErrPayload
		}
		g.Add(int(a), int(b))
	}
	return g, nil
}

func sayHello(v *vu32) error {
	for i := 0; i < len(magic); i++ {
		if e := v.write(uint32(magic[i])); e != nil {
			return e
		}
	}
	return v.write(V)
}

func hearHello(v *vu32) error {
	for i := 0; i < len(magic); i++ {
		u, e := v.read()
		if e != nil {
			return e
		}
		if u != uint32(magic[i]) {
			return ErrMagic
		}
	}
	u, e := v.read()
	if e != nil {
		return e
	}
	if u != V {
		return ErrVersion
	}
	return nil
}

func writeRun(v *vu32, run uuid.UUID) error {
	for i := 0; i < 16; i += 4 {
		if e := v.write(binary.BigEndian.Uint32(run[i : i+4])); e != nil {
			return e
		}
	}
	return nil
}

func readRun(v *vu32) (uuid.UUID, error) {
	var run uuid.UUID
	for i := 0; i < 16; i += 4 {
		u, e := v.read()
		if e != nil {
			return run, e
		}
		binary.BigEndian.PutUint32(run[i:i+4], u)
	}
	return run, nil
}
