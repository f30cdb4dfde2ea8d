// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/go-exact/chroma/graph"
	"github.com/go-exact/chroma/internal/bb"
	"github.com/go-exact/chroma/wire"
)

// runCluster runs rank 0 of a multi-process job: wait for the workers
// to dial in, then coordinate.
func runCluster(cfg *bb.Config, g *graph.G, lg zerolog.Logger) {
	srv, e := wire.NewServer(cfg.Listen(), cfg.Workers(), g, lg)
	if e != nil {
		log.Printf("error listening on %s: %s\n", cfg.Listen(), e)
		os.Exit(1)
	}
	lg.Info().Stringer("addr", srv.Addr()).Int("workers", cfg.Workers()).
		Msg("waiting for workers")
	cm, e := srv.Wait()
	if e != nil {
		log.Printf("error forming job: %s\n", e)
		os.Exit(1)
	}
	defer cm.Close()

	co := bb.NewCoordinator(cm, g, lg)
	co.Seed = cfg.GreedySeed()
	best, err := co.Run()
	if err == bb.ErrNoParallel {
		output(best)
		os.Exit(bb.ExitNoParallel)
	}
	if err != nil {
		log.Printf("error solving: %s\n", err)
		os.Exit(1)
	}
	output(best)
}
