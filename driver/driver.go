// Package driver runs a subject under an oracle-chosen interleaving and
// checks it against a sequential reference model.
//
// Each round asks the oracle one yes/no question per worker. A yes releases
// the worker if it is parked at a suspension point, or hands it a new unit of
// work if it is idle. Submitting work also applies that work's effect to the
// reference model, so the model always holds the result a correct
// implementation would reach. When the oracle runs dry every parked worker is
// drained to completion, the workers are joined, and the scenario compares
// subject and model.
package driver

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/kolkov/interleave/interleave"
	"github.com/kolkov/interleave/oracle"
)

// Scenario describes a subject of type S and its reference model of type M.
type Scenario[S, M any] struct {
	// Name identifies the scenario in traces and findings.
	Name string
	// New builds the subject shared by all workers.
	New func() S
	// Model builds the reference model for a fresh subject.
	Model func() M
	// Op draws the next unit of work from the oracle and applies its
	// sequential effect to model. label describes the work in traces.
	Op func(o oracle.Oracle, model *M) (work func(S), label string, err error)
	// Check compares the subject with the model after every worker has
	// finished. It returns a *Mismatch, or nil.
	Check func(subject S, model M) error
}

// Option configures Run.
type Option func(*config)

type config struct {
	workers  int
	observer func(worker int, tr interleave.Transition)
	log      *logrus.Entry
}

// WithWorkers sets the number of workers. The default is 2.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithObserver reports every status change of every worker. fn runs on the
// worker goroutine with its cell locked.
func WithObserver(fn func(worker int, tr interleave.Transition)) Option {
	return func(c *config) { c.observer = fn }
}

// WithLogger logs each step at debug level.
func WithLogger(log *logrus.Entry) Option {
	return func(c *config) { c.log = log }
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Result summarizes a run.
type Result struct {
	Scenario string
	Workers  int
	// Trace is the executed interleaving, drain steps included.
	Trace Trace
	// Consumed is the number of oracle bytes the run used.
	Consumed int
}

// Run drives sc with the decisions of o.
//
// A *Divergence error is a finding about the subject. Any other error means
// the scenario could not draw its work from the oracle. Protocol violations
// panic.
func Run[S, M any](o oracle.Oracle, sc Scenario[S, M], opts ...Option) (*Result, error) {
	cfg := config{workers: 2}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		return nil, ErrNoWorkers
	}
	if cfg.log == nil {
		cfg.log = discardLogger()
	}
	log := cfg.log.WithField("scenario", sc.Name)

	subject := sc.New()
	model := sc.Model()
	res := &Result{Scenario: sc.Name, Workers: cfg.workers}

	threads := make([]*interleave.Thread[S], cfg.workers)
	for i := range threads {
		topts := []interleave.Option{interleave.WithName(fmt.Sprintf("worker %d", i))}
		if cfg.observer != nil {
			topts = append(topts, interleave.WithObserver(func(tr interleave.Transition) {
				cfg.observer(i, tr)
			}))
		}
		threads[i] = interleave.Spawn(subject, topts...)
	}
	// Close drains, so this also covers the error return below.
	defer func() {
		for _, th := range threads {
			th.Close()
		}
	}()

	record := func(worker int, action Action, label string) {
		th := threads[worker]
		step := Step{Worker: worker, Action: action, Label: label, After: th.Status(), Site: th.Site()}
		res.Trace = append(res.Trace, step)
		log.WithFields(logrus.Fields{
			"step":   len(res.Trace) - 1,
			"worker": worker,
			"action": action,
			"after":  step.After,
			"site":   step.Site,
		}).Debug("step")
	}

	for !o.Empty() {
		for i, th := range threads {
			if !o.Bool() {
				continue
			}
			if th.IsBlocked() {
				th.Unblock()
				record(i, Unblock, "")
				continue
			}
			work, label, err := sc.Op(o, &model)
			if err != nil {
				res.Consumed = o.Consumed()
				return res, fmt.Errorf("driver: %s: worker %d: %w", sc.Name, i, err)
			}
			th.Act(work)
			record(i, Act, label)
		}
	}
	res.Consumed = o.Consumed()

	for i, th := range threads {
		for th.IsBlocked() {
			th.Unblock()
			record(i, Drain, "")
		}
		th.Close()
	}

	if err := sc.Check(subject, model); err != nil {
		log.WithError(err).Debug("divergence")
		return res, &Divergence{Scenario: sc.Name, Cause: err, Trace: res.Trace}
	}
	return res, nil
}
