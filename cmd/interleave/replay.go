// replay.go implements the 'interleave replay' command.
package main

import (
	"fmt"
	"os"

	"github.com/kolkov/interleave/explore"
)

// replayCommand implements 'interleave replay <finding.json>'.
//
// Exits 1 while the finding still reproduces.
func replayCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: interleave replay <finding.json>")
		os.Exit(1)
	}

	finding, err := explore.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := parseScenarioName(finding.Scenario)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.workers = finding.Workers

	run, err := cfg.runner(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("replaying %s (%s)\n", finding.ID, finding.FoundAt.Format("2006-01-02 15:04:05"))
	res, err := run(finding.Seed.Oracle())
	if code := report(os.Stdout, cfg.name(), finding.Seed, res, err); code != 0 {
		os.Exit(code)
	}
	fmt.Println("finding no longer reproduces")
}
