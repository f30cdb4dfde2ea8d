// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

var usage = `%s is a chroma search worker.

usage:

	%s -join addr

The worker dials the coordinator at addr, receives its rank and a
replica of the graph, searches the subtree it is assigned, and exits
when the job completes.

options:
`
