// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package comm provides the rank communicator the search engine runs on.
//
// A job is a fixed set of ranks: the coordinator at rank 0 and workers at
// ranks 1..Size()-1.  Each rank holds one Comm.  Point-to-point messages
// carry a search node and a tag; a separate one-way channel carries upper
// bound broadcasts from the coordinator to every worker.  The two message
// classes are independent so that a rank's main loop and its bound
// listener can block concurrently, each on its own traffic.
//
// The in-process implementation lives here; package wire implements the
// same interface over TCP.
package comm

import (
	"fmt"

	"github.com/go-exact/chroma/coloring"
)

// Tag identifies the kind of a point-to-point message.
type Tag uint32

const (
	// Initial carries the root of the subtree a worker must search.
	Initial Tag = 1 + iota
	// Idle carries a dummy node; the receiving worker skips searching.
	Idle
	// Solution carries an improved complete coloring to the coordinator.
	Solution
	// Done tells the coordinator a worker finished its subtree.
	Done
)

func (t Tag) String() string {
	switch t {
	case Initial:
		return "<initial>"
	case Idle:
		return "<idle>"
	case Solution:
		return "<solution>"
	case Done:
		return "<done>"
	default:
		return fmt.Sprintf("<!tag(%d)!>", uint32(t))
	}
}

// AnySource matches any sending rank in Recv.
const AnySource = -1

// Msg is a received point-to-point message.  Node is the decoded n+2
// word payload.
type Msg struct {
	From int
	Tag  Tag
	Node *coloring.Partial
}

// Terminate returns the sentinel broadcast value that releases worker
// bound listeners for a graph of order n.  It is strictly greater than
// any legal color count, and distinct from the initial bound n+1, so it
// can never collide with a bound update.
func Terminate(n int) uint32 {
	return uint32(n) + 2
}

// Comm is one rank's handle on the job.
//
// Send and Recv move tagged nodes point-to-point: workers exchange only
// with rank 0, and rank 0 receives with AnySource.  Cast, called on rank
// 0 only, broadcasts a bound value to every worker; Watch, called on
// workers only, blocks for the next broadcast value.  Barrier blocks
// until every rank arrives.  All methods are safe for use by a rank's
// two threads concurrently.
type Comm interface {
	Rank() int
	Size() int

	Send(to int, tag Tag, node *coloring.Partial) error
	Recv(from int) (Msg, error)

	Cast(u uint32) error
	Watch() (uint32, error)

	Barrier() error

	// Abort tears the whole job down with the given code.  Every rank
	// blocked in a Comm call fails with an AbortError.
	Abort(code int)

	Close() error
}

// AbortError is returned from Comm calls on a job that has been aborted.
type AbortError struct {
	Code int
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("comm: job aborted with code %d", e.Code)
}
