// explore.go implements the 'interleave explore' command.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/kolkov/interleave/explore"
)

// exploreConfig holds parsed 'explore' arguments.
type exploreConfig struct {
	scenarioConfig
	budget   time.Duration
	execs    int
	parallel int
	size     uint
	source   uint64
	out      string
	verbose  bool
}

func parseExploreArgs(args []string) (*exploreConfig, error) {
	fs := flag.NewFlagSet("explore", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &exploreConfig{}
	fs.StringVar(&cfg.scenario, "scenario", "counter", "scenario to run (counter, bank)")
	fs.StringVar(&cfg.mode, "mode", "buggy", "update mode (buggy, atomic)")
	fs.IntVar(&cfg.workers, "workers", 2, "number of controlled workers")
	fs.DurationVar(&cfg.budget, "budget", 10*time.Second, "time budget (0 for none)")
	fs.IntVar(&cfg.execs, "execs", 0, "maximum number of runs (0 for none)")
	fs.IntVar(&cfg.parallel, "parallel", 0, "concurrent runs (default GOMAXPROCS)")
	fs.UintVar(&cfg.size, "size", 64, "input size in bytes per seed")
	fs.Uint64Var(&cfg.source, "source", 0, "seed generator source (default from clock)")
	fs.StringVar(&cfg.out, "out", "", "save the finding to this file")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.budget == 0 && cfg.execs == 0 {
		return nil, fmt.Errorf("one of -budget or -execs must be set")
	}
	if cfg.size == 0 || cfg.size > 1<<20 {
		return nil, fmt.Errorf("-size must be between 1 and %d", 1<<20)
	}
	return cfg, nil
}

// exploreCommand implements 'interleave explore'.
//
// Exits 1 when a divergence is found, 0 when the budget is spent without one.
func exploreCommand(args []string) {
	cfg, err := parseExploreArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	run, err := cfg.exploreRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := newLogger(cfg.verbose)
	finding, stats, err := explore.Explore(ctx, explore.Config{
		Scenario: cfg.name(),
		Workers:  cfg.workers,
		Size:     uint32(cfg.size),
		Parallel: cfg.parallel,
		Execs:    cfg.execs,
		Budget:   cfg.budget,
		Source:   cfg.source,
		Log:      log.WithField("cmd", "explore"),
	}, run)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if finding == nil {
		fmt.Printf("no divergence in %d runs (%s, %.0f runs/sec)\n", stats.Execs, stats.Elapsed.Truncate(time.Millisecond), stats.Rate())
		return
	}

	fmt.Printf("DIVERGENCE after %d runs\n%s", stats.Execs, finding)
	if cfg.out != "" {
		if err := finding.Save(cfg.out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			fmt.Printf("saved: %s\n", cfg.out)
		}
	}
	os.Exit(1)
}
