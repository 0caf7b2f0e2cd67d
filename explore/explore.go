// Package explore searches oracle seeds for an input that makes a run
// diverge from its reference model.
//
// Seeds are generated from a single source and run in parallel. The first
// divergence stops the search and is returned as a Finding that can be saved,
// loaded and replayed.
package explore

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kolkov/interleave/driver"
	"github.com/kolkov/interleave/oracle"
)

// Runner executes one run against an oracle. A *driver.Divergence error is
// a finding; any other error aborts the search.
type Runner func(o oracle.Oracle) error

// Config controls a search.
type Config struct {
	// Scenario and Workers are copied into findings so they can be replayed.
	Scenario string
	Workers  int

	// Size is the number of oracle bytes per seed. Default 64.
	Size uint32
	// Parallel is the number of concurrent runs. Default GOMAXPROCS.
	Parallel int
	// Execs stops the search after this many runs. 0 means no limit.
	Execs int
	// Budget stops the search after this much time. 0 means no limit.
	Budget time.Duration
	// Source seeds the seed generator. 0 picks one from the clock.
	Source uint64
	// ProgressEvery is the interval between progress log lines. Default 3s.
	ProgressEvery time.Duration
	// Log receives progress and findings. Default discards.
	Log *logrus.Entry
}

func (c *Config) applyDefaults() {
	if c.Size == 0 {
		c.Size = 64
	}
	if c.Parallel <= 0 {
		c.Parallel = runtime.GOMAXPROCS(0)
	}
	if c.Source == 0 {
		c.Source = uint64(time.Now().UnixNano())
	}
	if c.ProgressEvery <= 0 {
		c.ProgressEvery = 3 * time.Second
	}
	if c.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Log = logrus.NewEntry(l)
	}
}

// Stats summarizes a search.
type Stats struct {
	Execs   int
	Elapsed time.Duration
}

// Rate returns runs per second.
func (s Stats) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Execs) / s.Elapsed.Seconds()
}

// errFound cancels the remaining runs once a finding is recorded.
var errFound = errors.New("explore: divergence found")

// Explore runs seeds until one diverges, the run or time budget is spent, or
// ctx is canceled. It returns a nil Finding when nothing diverged.
func Explore(ctx context.Context, cfg Config, run Runner) (*Finding, Stats, error) {
	cfg.applyDefaults()
	log := cfg.Log.WithField("scenario", cfg.Scenario)

	searchCtx := ctx
	if cfg.Budget > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, cfg.Budget)
		defer cancel()
	}
	g, gctx := errgroup.WithContext(searchCtx)
	g.SetLimit(cfg.Parallel)

	var (
		execs   atomic.Int64
		mu      sync.Mutex
		finding *Finding
	)
	start := time.Now()
	lastProgress := start
	seeds := rand.New(rand.NewPCG(cfg.Source, cfg.Source>>32))

	log.WithFields(logrus.Fields{
		"parallel": cfg.Parallel,
		"size":     cfg.Size,
		"budget":   cfg.Budget,
		"execs":    cfg.Execs,
	}).Info("exploring")

	for submitted := 0; cfg.Execs == 0 || submitted < cfg.Execs; submitted++ {
		if gctx.Err() != nil {
			break
		}
		if time.Since(lastProgress) >= cfg.ProgressEvery {
			lastProgress = time.Now()
			s := Stats{Execs: int(execs.Load()), Elapsed: time.Since(start)}
			log.WithFields(logrus.Fields{
				"elapsed": s.Elapsed.Truncate(time.Second),
				"execs":   s.Execs,
				"rate":    int(s.Rate()),
			}).Info("progress")
		}

		seed := oracle.NewSeed(seeds, cfg.Size)
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			err := run(seed.Oracle())
			execs.Add(1)
			if err == nil {
				return nil
			}
			var div *driver.Divergence
			if !errors.As(err, &div) {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if finding == nil {
				finding = newFinding(cfg, seed, div)
			}
			return errFound
		})
	}

	err := g.Wait()
	stats := Stats{Execs: int(execs.Load()), Elapsed: time.Since(start)}

	if finding != nil {
		log.WithFields(logrus.Fields{
			"id":    finding.ID,
			"seed":  finding.Seed,
			"execs": stats.Execs,
		}).Warn("divergence found")
		return finding, stats, nil
	}
	if err != nil && !errors.Is(err, errFound) {
		return nil, stats, err
	}
	if ctx.Err() != nil {
		return nil, stats, ctx.Err()
	}
	log.WithFields(logrus.Fields{
		"execs":   stats.Execs,
		"elapsed": stats.Elapsed.Truncate(time.Millisecond),
	}).Info("no divergence")
	return nil, stats, nil
}
