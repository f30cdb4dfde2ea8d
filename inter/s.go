// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package inter

import "github.com/go-exact/chroma/coloring"

// EdgeAdder encapsulates something to which undirected edges over 0-based
// vertices can be added.
//
// Self edges are ignored.  The generators in gen write through
// EdgeAdder; the dimacs reader uses its own visitor, dimacs.ColVis.
type EdgeAdder interface {
	Add(u, v int)
}

// Interface S encapsulates a chromatic-number solver.
//
// Solve runs the search to completion and returns a minimum proper
// coloring.  The returned node is final and its color count is the
// chromatic number of the underlying graph.
type S interface {
	Solve() (*coloring.Partial, error)
}
