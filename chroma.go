// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package chroma computes exact chromatic numbers of simple undirected
// graphs by distributed branch and bound.
//
// The search tree enumerates partial colorings whose colors appear in
// order of first use, so each coloring is visited once per renaming
// class.  Rank 0 grows a breadth-first frontier of at most one subtree
// per worker, workers exhaust their subtrees depth-first, and an
// asynchronous bound broadcast lets every worker prune against the best
// coloring found anywhere.
//
// This package runs all ranks in one process.  For a multi-machine job
// see package wire and the chroma and chromad commands.
package chroma

import (
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-exact/chroma/coloring"
	"github.com/go-exact/chroma/comm"
	"github.com/go-exact/chroma/graph"
	"github.com/go-exact/chroma/inter"
	"github.com/go-exact/chroma/internal/bb"
)

// ErrNoParallel reports that rank 0 finished the search while building
// the frontier.  The accompanying coloring is still the optimum.
var ErrNoParallel = bb.ErrNoParallel

// Options configure a solve.
type Options struct {
	// Workers is the number of search ranks.  Zero means one fewer
	// than the number of CPUs, and at least one.
	Workers int
	// GreedySeed starts the bound from a greedy first-fit coloring.
	GreedySeed bool
	// Logger receives progress; nil disables logging.
	Logger *zerolog.Logger
}

// Solve returns a minimum proper coloring of g.  The result is final
// and its color count is the chromatic number of g.
func Solve(g *graph.G, opt Options) (*coloring.Partial, error) {
	lg := zerolog.Nop()
	if opt.Logger != nil {
		lg = *opt.Logger
	}
	w := opt.Workers
	if w <= 0 {
		w = max(runtime.NumCPU()-1, 1)
	}
	cs := comm.Local(w+1, g.Order())
	var wg sync.WaitGroup
	errs := make([]error, w)
	for r := 1; r <= w; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			errs[r-1] = bb.NewWorker(cs[r], g, lg).Run()
		}(r)
	}
	co := bb.NewCoordinator(cs[0], g, lg)
	co.Seed = opt.GreedySeed
	best, err := co.Run()
	wg.Wait()
	if errors.Is(err, ErrNoParallel) {
		// the workers were torn down before dispatch; their abort
		// errors are this same condition
		return best, err
	}
	if err != nil {
		return nil, err
	}
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}
	return best, nil
}

// Chi returns the chromatic number of g.
func Chi(g *graph.G) (int, error) {
	best, err := Solve(g, Options{})
	if err != nil && !errors.Is(err, ErrNoParallel) {
		return 0, err
	}
	return best.Colors(), nil
}

// New returns an inter.S solving g with opt.
func New(g *graph.G, opt Options) inter.S {
	return &s{g: g, opt: opt}
}

type s struct {
	g   *graph.G
	opt Options
}

func (s *s) Solve() (*coloring.Partial, error) {
	best, err := Solve(s.g, s.opt)
	if errors.Is(err, ErrNoParallel) {
		err = nil
	}
	return best, err
}
