// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bb

// Stats counts what a worker's search did.  Only the search loop
// touches a Stats, so the fields are plain integers.
type Stats struct {
	// Expanded counts internal nodes whose children were generated.
	Expanded uint64
	// Pruned counts internal nodes cut off by the bound.
	Pruned uint64
	// Improved counts complete colorings that tightened the bound here.
	Improved uint64
}
