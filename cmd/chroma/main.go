// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"compress/bzip2"
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-exact/chroma"
	"github.com/go-exact/chroma/coloring"
	"github.com/go-exact/chroma/dimacs"
	"github.com/go-exact/chroma/gen"
	"github.com/go-exact/chroma/graph"
	"github.com/go-exact/chroma/internal/bb"
)

var pprofAddr = flag.String("pprof", "", "address to serve http profile (eg :6060)")
var workers = flag.Int("w", 0, "number of search workers (default NumCPU-1)")
var seed = flag.Bool("seed", false, "seed the bound with a greedy coloring")
var listen = flag.String("listen", "", "run as cluster coordinator on this address")
var level = flag.String("level", "info", "log level (trace..error)")
var confPath = flag.String("config", "", "configuration file")
var gnp = flag.String("gnp", "", "solve a random G(n,p) graph, eg 20,0.5")
var gnm = flag.String("gnm", "", "solve a random G(n,m) graph, eg 20,40")
var randSeed = flag.Uint64("rand", 0, "random graph seed (0 means nondeterministic)")
var order = flag.Int("order", 0, "require the input graph to have this order")
var write = flag.String("write", "", "write the input graph to this .col file")
var model = flag.Bool("model", true, "output the optimal coloring (v line)")

func path2Reader(p string) (io.Reader, error) {
	if p == "-" {
		return os.Stdin, nil
	}
	f, e := os.Open(p)
	if e != nil {
		return nil, e
	}
	if strings.HasSuffix(p, ".gz") {
		r, e := gzip.NewReader(f)
		if e != nil {
			return nil, e
		}
		return r, nil
	}
	if strings.HasSuffix(p, ".bz2") {
		return bzip2.NewReader(f), nil
	}
	return f, nil
}

func parsePair(s string) (int, string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("expected n,x: %q", s)
	}
	n, e := strconv.Atoi(parts[0])
	if e != nil || n < 0 {
		return 0, "", fmt.Errorf("bad order in %q", s)
	}
	return n, parts[1], nil
}

func inputGraph() (*graph.G, error) {
	var src rand.Source
	var rnd *rand.Rand
	if *randSeed != 0 {
		src = rand.NewPCG(*randSeed, *randSeed)
		rnd = rand.New(src)
	}
	if *gnp != "" {
		n, ps, e := parsePair(*gnp)
		if e != nil {
			return nil, e
		}
		p, pe := strconv.ParseFloat(ps, 64)
		if pe != nil {
			return nil, fmt.Errorf("bad probability in %q", *gnp)
		}
		g := graph.New(n)
		if e := gen.Gnp(g, n, p, src); e != nil {
			return nil, e
		}
		return g, nil
	}
	if *gnm != "" {
		n, ms, e := parsePair(*gnm)
		if e != nil {
			return nil, e
		}
		m, me := strconv.Atoi(ms)
		if me != nil || m < 0 {
			return nil, fmt.Errorf("bad edge count in %q", *gnm)
		}
		g := graph.New(n)
		if e := gen.Gnm(g, n, m, rnd); e != nil {
			return nil, e
		}
		return g, nil
	}
	if flag.NArg() != 1 {
		return nil, fmt.Errorf("need exactly one input file (or -gnp/-gnm)")
	}
	r, e := path2Reader(flag.Arg(0))
	if e != nil {
		return nil, e
	}
	return graph.ReadCol(r)
}

func output(best *coloring.Partial) {
	fmt.Printf("s %d\n", best.Colors())
	if !*model {
		return
	}
	fmt.Printf("v")
	for v := 0; v < best.Order(); v++ {
		fmt.Printf(" %d", best.Color(v))
	}
	fmt.Printf("\n")
}

func main() {
	flag.Usage = func() {
		p := os.Args[0]
		_, p = filepath.Split(p)
		fmt.Fprintf(os.Stderr, usage, p, p, p, p)
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}
	flag.Parse()
	log.SetPrefix("c [chroma] ")

	cfg := bb.NewConfig()
	if *confPath != "" {
		if e := cfg.LoadFromFile(*confPath); e != nil {
			log.Printf("error loading config: %s\n", e)
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			cfg.Set("search.workers", *workers)
		case "seed":
			cfg.Set("search.greedy_seed", *seed)
		case "listen":
			cfg.Set("net.listen", *listen)
		case "level":
			cfg.Set("log.level", *level)
		}
	})
	lg := cfg.CreateLogger()

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	g, e := inputGraph()
	if e != nil {
		log.Printf("error reading graph: %s\n", e)
		os.Exit(1)
	}
	if *order != 0 && g.Order() != *order {
		log.Printf("graph has order %d, want %d\n", g.Order(), *order)
		os.Exit(1)
	}
	lg.Info().Int("order", g.Order()).Int("size", g.Size()).Msg("graph loaded")

	if *write != "" {
		f, fe := os.Create(*write)
		if fe != nil {
			log.Printf("error creating %s: %s\n", *write, fe)
			os.Exit(1)
		}
		if we := dimacs.WriteCol(f, g); we != nil {
			log.Printf("error writing %s: %s\n", *write, we)
			os.Exit(1)
		}
		f.Close()
	}

	if cfg.Listen() != "" {
		runCluster(cfg, g, lg)
		return
	}

	best, err := chroma.Solve(g, chroma.Options{
		Workers:    cfg.Workers(),
		GreedySeed: cfg.GreedySeed(),
		Logger:     &lg,
	})
	if err == chroma.ErrNoParallel {
		output(best)
		os.Exit(bb.ExitNoParallel)
	}
	if err != nil {
		log.Printf("error solving: %s\n", err)
		os.Exit(1)
	}
	output(best)
}
