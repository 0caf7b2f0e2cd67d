// run.go implements the 'interleave run' command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/kolkov/interleave/driver"
	"github.com/kolkov/interleave/oracle"
)

// seedEnv names the environment variable holding the default seed.
const seedEnv = "INTERLEAVE_SEED"

// runConfig holds parsed 'run' arguments.
type runConfig struct {
	scenarioConfig
	seed    oracle.Seed
	verbose bool
}

// parseRunArgs parses 'run' flags. getenv supplies INTERLEAVE_SEED; when
// neither the flag nor the variable is set a random seed of -size bytes is
// drawn.
func parseRunArgs(args []string, getenv func(string) string) (*runConfig, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &runConfig{}
	fs.StringVar(&cfg.scenario, "scenario", "counter", "scenario to run (counter, bank)")
	fs.StringVar(&cfg.mode, "mode", "buggy", "update mode (buggy, atomic)")
	fs.IntVar(&cfg.workers, "workers", 2, "number of controlled workers")
	seedFlag := fs.String("seed", "", "oracle seed (default $"+seedEnv+" or random)")
	size := fs.Uint("size", 64, "input size in bytes for a random seed")
	fs.BoolVar(&cfg.verbose, "v", false, "log every step")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	seedText := *seedFlag
	if seedText == "" {
		seedText = getenv(seedEnv)
	}
	if seedText != "" {
		seed, err := oracle.ParseSeed(seedText)
		if err != nil {
			return nil, err
		}
		cfg.seed = seed
	} else {
		cfg.seed = oracle.NewSeed(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), uint32(*size))
	}
	return cfg, nil
}

// runCommand implements 'interleave run'.
//
// Example:
//
//	interleave run -scenario counter -mode buggy -seed 0x43e1e68400000020
func runCommand(args []string) {
	cfg, err := parseRunArgs(args, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.verbose)
	run, err := cfg.runner(log.WithField("seed", cfg.seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := run(cfg.seed.Oracle())
	if code := report(os.Stdout, cfg.name(), cfg.seed, res, err); code != 0 {
		os.Exit(code)
	}
}

// report prints the outcome of one run and returns the exit status.
func report(w io.Writer, name string, seed oracle.Seed, res *driver.Result, err error) int {
	var div *driver.Divergence
	switch {
	case errors.As(err, &div):
		fmt.Fprintf(w, "DIVERGENCE %s seed %s\n%v\n", name, seed, div)
		fmt.Fprintf(w, "reproduce: %s=%s\n", seedEnv, seed)
		return 1
	case err != nil:
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	default:
		fmt.Fprintf(w, "ok %s seed %s: %d steps, %d bytes\n%s", name, seed, len(res.Trace), res.Consumed, res.Trace)
		return 0
	}
}
