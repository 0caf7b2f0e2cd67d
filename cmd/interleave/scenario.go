// scenario.go maps scenario names to driver runs.
package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kolkov/interleave/driver"
	"github.com/kolkov/interleave/explore"
	"github.com/kolkov/interleave/oracle"
	"github.com/kolkov/interleave/subject/bank"
	"github.com/kolkov/interleave/subject/counter"
)

// Bank scenario shape.
const (
	bankAccounts = 2
	bankBalance  = 500
)

// scenarioConfig selects what to run.
type scenarioConfig struct {
	scenario string
	mode     string
	workers  int
}

// name returns the scenario/mode pair recorded in findings.
func (c scenarioConfig) name() string {
	return c.scenario + "/" + c.mode
}

// parseScenarioName splits a recorded "scenario/mode" name.
func parseScenarioName(name string) (scenarioConfig, error) {
	scenario, mode, ok := strings.Cut(name, "/")
	if !ok {
		return scenarioConfig{}, fmt.Errorf("invalid scenario name %q (want scenario/mode)", name)
	}
	return scenarioConfig{scenario: scenario, mode: mode}, nil
}

// runner builds the run for cfg. Each call to the runner starts from a fresh
// subject. log may be nil.
func (c scenarioConfig) runner(log *logrus.Entry) (func(o oracle.Oracle) (*driver.Result, error), error) {
	if c.workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", c.workers)
	}
	opts := []driver.Option{driver.WithWorkers(c.workers)}
	if log != nil {
		opts = append(opts, driver.WithLogger(log))
	}

	switch c.scenario {
	case "counter":
		mode, err := counter.ParseMode(c.mode)
		if err != nil {
			return nil, err
		}
		sc := driver.CounterScenario(mode)
		return func(o oracle.Oracle) (*driver.Result, error) {
			return driver.Run(o, sc, opts...)
		}, nil

	case "bank":
		var mode bank.Mode
		switch c.mode {
		case "buggy":
			mode = bank.Buggy
		case "atomic":
			mode = bank.Atomic
		default:
			return nil, fmt.Errorf("bank: unknown mode %q (want buggy or atomic)", c.mode)
		}
		sc := driver.BankScenario(mode, bankAccounts, bankBalance)
		return func(o oracle.Oracle) (*driver.Result, error) {
			return driver.Run(o, sc, opts...)
		}, nil

	default:
		return nil, fmt.Errorf("unknown scenario %q (want counter or bank)", c.scenario)
	}
}

// exploreRunner adapts runner to explore.Runner.
func (c scenarioConfig) exploreRunner() (explore.Runner, error) {
	run, err := c.runner(nil)
	if err != nil {
		return nil, err
	}
	return func(o oracle.Oracle) error {
		_, err := run(o)
		return err
	}, nil
}

// newLogger returns the CLI logger on stderr.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
