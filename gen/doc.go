// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen generates graphs for tests and benchmarks.
//
// All generators write edges through an inter.EdgeAdder, so they can fill
// a graph.G or anything else that accepts edges.
package gen
