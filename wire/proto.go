// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package wire implements comm.Comm over TCP.
//
// The coordinator listens; each worker dials in, receives its rank and a
// replica of the graph during the handshake, and then exchanges framed
// messages with the coordinator.  Every value on the wire is a varint
// encoded uint32.  Opcodes live at the top of the uint32 range, above the
// values node, bound and graph frames carry (colors, counts, vertex
// indices and edge counts), and readers of those frames reject any value
// in the opcode range.  The handshake's run id words are read raw.
package wire

import "fmt"

// V is the protocol version exchanged in the handshake.
const V uint32 = 1

// magic opens every connection, coordinator first.
const magic = "CHROMA"

// Op is a wire opcode.
type Op uint32

const top Op = 0xffffffff

const (
	// OpNode frames a point-to-point search node: tag, word count,
	// then count payload words.
	OpNode Op = top - iota
	// OpBound carries one bound broadcast value.
	OpBound
	// OpBarrier signals barrier arrival (worker to coordinator) or
	// release (coordinator to worker).
	OpBarrier
	// OpAbort tears the job down; it carries the abort code.
	OpAbort
	// OpGraph frames the graph replica in the handshake: order, edge
	// count, then the endpoint pairs.
	OpGraph
)

// minOp is the smallest opcode; anything below it is payload data.
const minOp = OpGraph

func (o Op) String() string {
	switch o {
	case OpNode:
		return "<node>"
	case OpBound:
		return "<bound>"
	case OpBarrier:
		return "<barrier>"
	case OpAbort:
		return "<abort>"
	case OpGraph:
		return "<graph>"
	default:
		return fmt.Sprintf("<!data(%d)!>", uint32(o))
	}
}

// Violation is a fatal protocol error: the peer sent something the
// protocol does not allow, which indicates a bug rather than a
// transient fault.
type Violation uint32

const (
	ErrMagic Violation = 1 + iota
	ErrVersion
	ErrVarint
	ErrOp
	ErrData
	ErrPayload
	ErrRankOp
)

func (v Violation) String() string {
	switch v {
	case ErrMagic:
		return "peer is not a chroma endpoint"
	case ErrVersion:
		return "protocol version mismatch"
	case ErrVarint:
		return "varint32 encoding overflow"
	case ErrOp:
		return "not an opcode"
	case ErrData:
		return "expected data, got an opcode"
	case ErrPayload:
		return "malformed node payload"
	case ErrRankOp:
		return "operation not valid on this rank"
	default:
		return "unknown violation"
	}
}

func (v Violation) Error() string {
	return v.String()
}
