package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/theapemachine/qcolor"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("qcolor", pflag.ContinueOnError)
	edges := flags.String("edges", "", `edge list, e.g. "0-1, 1-2, 2-0"`)
	vertices := flags.Int("vertices", 0, "vertex count (default: inferred from the edges)")
	bits := flags.Int("bits", 2, "bits per color register")
	debug := flags.Bool("debug", false, "verbose logging and a dump of the result")

	flags.Int("max-attempts", 10, "verification attempts before giving up")
	flags.Int("ceiling-bits", 24, "largest simulated register in qubits")
	flags.Int("exact-bits", 20, "count valid colorings exactly up to this many qubits")
	flags.Int("workers", 0, "pool workers (default: number of CPUs)")
	flags.Int("chunk-size", 4096, "minimum indices per pool job")
	flags.Int("concurrent", 1, "attempts in flight at once")
	flags.Uint64("seed", 1, "measurement seed")
	flags.Int("iterations", qcolor.AutoIterations, "fixed Grover iterations (-1: automatic)")
	flags.String("prep", "uniform", "state preparation: uniform or hadamard")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *debug {
		qcolor.SetLogger(log.NewWithOptions(os.Stderr, log.Options{
			Prefix:          "qcolor",
			ReportTimestamp: true,
			Level:           log.DebugLevel,
		}))
	}
	logger := qcolor.Logger()

	v := qcolor.NewViper()
	// Only flags the user actually set override defaults and environment.
	flags.Visit(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})

	cfg, err := qcolor.LoadConfig(v)
	if err != nil {
		logger.Error("bad configuration", "err", err)
		return 2
	}

	var g *qcolor.Graph
	if *vertices > 0 {
		g, err = qcolor.ParseGraphWithVertices(*edges, *vertices)
	} else {
		g, err = qcolor.ParseGraph(*edges)
	}
	if err != nil {
		logger.Error("bad graph", "err", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	solver := qcolor.NewSolver(ctx, qcolor.WithConfig(cfg))
	defer solver.Close()

	res, err := solver.FindColoring(ctx, g, *bits)
	if err != nil {
		return exitCode(err)
	}

	if *debug {
		logger.Debug("result", "dump", spew.Sdump(res))
		logger.Debug("pool", "metrics", solver.Pool().Metrics().ExportMetrics())
	}

	for vertex, color := range res.Coloring {
		fmt.Printf("%d %d\n", vertex, color)
	}
	return 0
}

// exitCode maps a search error to 1 when the search ran and came up empty,
// and to 2 when the input was rejected before any amplification.
func exitCode(err error) int {
	logger := qcolor.Logger()

	switch {
	case errors.Is(err, qcolor.ErrNoColoringFound):
		logger.Error("no coloring", "err", err)
		return 1
	case errors.Is(err, qcolor.ErrInvalidWidth),
		errors.Is(err, qcolor.ErrInconsistentVertexCount),
		errors.Is(err, qcolor.ErrInvalidGraph),
		errors.Is(err, qcolor.ErrResourceExceeded):
		logger.Error("bad input", "err", err)
		return 2
	default:
		logger.Error("search failed", "err", err)
		return 1
	}
}
