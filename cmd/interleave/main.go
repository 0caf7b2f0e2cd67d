// Package main implements the interleave CLI tool.
//
// The tool runs the built-in scenarios under oracle-chosen interleavings:
//
//	interleave run -scenario counter -mode buggy -seed 0x43e1e68400000020
//	interleave explore -scenario bank -mode buggy -budget 30s -out finding.json
//	interleave replay finding.json
//
// A run that diverges from its reference model prints the interleaving that
// caused it and exits with status 1.
package main

import (
	"fmt"
	"os"

	"github.com/kolkov/interleave/interleave"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runCommand(os.Args[2:])
	case "explore":
		exploreCommand(os.Args[2:])
	case "replay":
		replayCommand(os.Args[2:])
	case "version", "--version", "-v":
		info := interleave.GetInfo()
		fmt.Printf("interleave version %s (%s)\n", info.Version, info.Strategy)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`interleave - deterministic goroutine interleaving for fuzzing

USAGE:
    interleave <command> [arguments]

COMMANDS:
    run        Run one scenario with one seed and print its interleaving
    explore    Search random seeds for a divergence
    replay     Re-run a saved finding
    version    Show version information
    help       Show this help message

SCENARIOS:
    counter    Workers increment a shared counter
    bank       Workers transfer money between accounts

MODES:
    buggy      Read-then-write updates (loses updates under some schedules)
    atomic     Atomic updates (never diverges)

EXAMPLES:
    # Replay one seed
    interleave run -scenario counter -mode buggy -seed 0x43e1e68400000020

    # Search for 30 seconds on 8 goroutines and save what is found
    interleave explore -scenario bank -budget 30s -parallel 8 -out finding.json

    # Check whether a finding still reproduces
    interleave replay finding.json

ENVIRONMENT:
    INTERLEAVE_SEED    Default seed for 'run'

`)
}
