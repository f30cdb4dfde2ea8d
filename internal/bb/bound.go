// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package bb implements the branch and bound search over partial
// colorings: a coordinator that seeds a frontier breadth-first and
// workers that exhaust their subtrees depth-first, pruning against a
// shared upper bound.
package bb

import "sync/atomic"

// Bound is the process-wide upper bound on the chromatic number.  It
// only ever decreases.  A worker's main loop reads it on every node and
// its listener thread lowers it on broadcasts, so access is atomic;
// correctness needs only monotonicity, not any ordering with other
// memory.
type Bound struct {
	v atomic.Uint32
}

// NewBound creates a bound with the given initial value.
func NewBound(init uint32) *Bound {
	b := &Bound{}
	b.v.Store(init)
	return b
}

// Value returns the current bound.
func (b *Bound) Value() uint32 {
	return b.v.Load()
}

// Tighten lowers the bound to u and reports whether it did.  A value
// not strictly below the current bound leaves it unchanged.
func (b *Bound) Tighten(u uint32) bool {
	for {
		cur := b.v.Load()
		if u >= cur {
			return false
		}
		if b.v.CompareAndSwap(cur, u) {
			return true
		}
	}
}
