// Copyright 2025 The Chroma Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-exact/chroma/comm"
	"github.com/go-exact/chroma/internal/bb"
	"github.com/go-exact/chroma/wire"
)

var join = flag.String("join", "", "address of the coordinator to join")
var level = flag.String("level", "info", "log level (trace..error)")

func main() {
	flag.Usage = func() {
		p := os.Args[0]
		_, p = filepath.Split(p)
		fmt.Fprintf(os.Stderr, usage, p, p)
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}
	flag.Parse()
	log.SetPrefix("c [chromad] ")
	if *join == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg := bb.NewConfig()
	cfg.Set("log.level", *level)
	lg := cfg.CreateLogger()

	cm, g, e := wire.Join(*join, lg)
	if e != nil {
		log.Printf("error joining %s: %s\n", *join, e)
		os.Exit(1)
	}
	defer cm.Close()

	if err := bb.NewWorker(cm, g, lg).Run(); err != nil {
		var ab *comm.AbortError
		if errors.As(err, &ab) {
			// the coordinator tore the job down; exit with its code
			os.Exit(ab.Code)
		}
		log.Printf("error searching: %s\n", err)
		os.Exit(1)
	}
}
