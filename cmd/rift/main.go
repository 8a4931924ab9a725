// rift is a parallel iterative-deepening UCI chess engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/seekerror/logw"

	"github.com/riftchess/rift/pkg/engine"
	"github.com/riftchess/rift/pkg/engine/console"
	"github.com/riftchess/rift/pkg/engine/uci"
	"github.com/riftchess/rift/pkg/eval"
	"github.com/riftchess/rift/pkg/journal"
	"github.com/riftchess/rift/pkg/livepv"
)

var (
	ply     = flag.Int("ply", 0, "Search depth limit (zero if no limit)")
	hash    = flag.Int("hash", 16, "Transposition table size in MB")
	threads = flag.Int("threads", 1, "Number of search worker threads")
	seed    = flag.Int64("seed", 1, "Zobrist hashing seed")

	journalDir = flag.String("journal", "", "Directory for the analysis journal (disabled if empty)")
	listen     = flag.String("listen", "", "Address to serve live PV updates over WebSocket (disabled if empty)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: rift [options]

RIFT is a parallel iterative-deepening UCI chess engine. It uses the UCI
protocol for use in modern chess programs.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	logw.Infof(ctx, "RIFT chess engine (%v ply, hash=%vMB, threads=%v)", *ply, *hash, *threads)

	var opts []engine.Option
	opts = append(opts, engine.WithOptions(engine.Options{Depth: *ply, Hash: *hash, Threads: *threads}))
	opts = append(opts, engine.WithZobrist(*seed))

	if *journalDir != "" {
		j, err := journal.Open(ctx, *journalDir)
		if err != nil {
			logw.Exitf(ctx, "Failed to open journal at %v: %v", *journalDir, err)
		}
		defer j.Close()
		opts = append(opts, engine.WithJournal(j))
	}

	var broadcaster *livepv.Broadcaster
	if *listen != "" {
		broadcaster = livepv.NewBroadcaster()
		opts = append(opts, engine.WithBroadcaster(broadcaster))

		mux := http.NewServeMux()
		mux.HandleFunc("/pv", broadcaster.Handler)
		go func() {
			logw.Infof(ctx, "Serving live PV updates at %v/pv", *listen)
			if err := http.ListenAndServe(*listen, mux); err != nil {
				logw.Errorf(ctx, "livepv server stopped: %v", err)
			}
		}()
	}

	e := engine.New(ctx, "RIFT", "riftchess", eval.Material{}, opts...)

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
