// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import "github.com/go-exact/chroma/inter"

// Complete adds the edges of the complete graph on n vertices.
func Complete(dst inter.EdgeAdder, n int) {
	for u := 0; u < n; u++ {
		for v := 0; v < u; v++ {
			dst.Add(u, v)
		}
	}
}

// Cycle adds the edges of the n-cycle 0-1-...-(n-1)-0.
func Cycle(dst inter.EdgeAdder, n int) {
	for u := 0; u < n; u++ {
		dst.Add(u, (u+1)%n)
	}
}

// Star adds the edges of the star with center 0 and n-1 leaves.
func Star(dst inter.EdgeAdder, n int) {
	for v := 1; v < n; v++ {
		dst.Add(0, v)
	}
}

// Bipartite adds the edges of the complete bipartite graph with parts
// 0..a-1 and a..a+b-1.
func Bipartite(dst inter.EdgeAdder, a, b int) {
	for u := 0; u < a; u++ {
		for v := a; v < a+b; v++ {
			dst.Add(u, v)
		}
	}
}

// Petersen adds the edges of the Petersen graph: an outer 5-cycle on
// 0..4, an inner pentagram on 5..9, and the five spokes.
func Petersen(dst inter.EdgeAdder) {
	for i := 0; i < 5; i++ {
		dst.Add(i, (i+1)%5)
		dst.Add(5+i, 5+(i+2)%5)
		dst.Add(i, 5+i)
	}
}
