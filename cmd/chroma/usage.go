// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

var usage = `%s computes the chromatic number of a graph exactly.

usage:

	%s [options] <path>
	%s [options] -gnp n,p
	%s [options] -listen addr <path>

<path> is a DIMACS .col file, optionally gzip or bzip2 compressed, or
"-" for stdin.  With -listen, this process coordinates a cluster job:
it waits for the configured number of chromad workers to join and hands
each a subtree of the search.  Without it, the search runs in-process.

The result is printed as an "s" line with the chromatic number and a
"v" line with one color per vertex.  If the coordinator finishes the
search while seeding the frontier, the job exits with code 69 after
printing the optimum.

options:
`
