package explore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kolkov/interleave/driver"
	"github.com/kolkov/interleave/interleave"
	"github.com/kolkov/interleave/oracle"
)

// ErrIncompatible is returned by Load for findings recorded by a version
// whose seeds decode into different schedules.
var ErrIncompatible = errors.New("explore: finding recorded by an incompatible version")

// Finding is a seed whose run diverged from its reference model.
type Finding struct {
	ID       uuid.UUID   `json:"id"`
	Scenario string      `json:"scenario"`
	Workers  int         `json:"workers"`
	Seed     oracle.Seed `json:"seed"`
	Version  string      `json:"version"`
	Message  string      `json:"message"`
	Trace    string      `json:"trace"`
	FoundAt  time.Time   `json:"found_at"`
}

func newFinding(cfg Config, seed oracle.Seed, div *driver.Divergence) *Finding {
	return &Finding{
		ID:       uuid.New(),
		Scenario: cfg.Scenario,
		Workers:  cfg.Workers,
		Seed:     seed,
		Version:  interleave.Version,
		Message:  div.Cause.Error(),
		Trace:    div.Trace.String(),
		FoundAt:  time.Now().UTC(),
	}
}

func (f *Finding) String() string {
	return fmt.Sprintf("%s: %s (seed %s, %d workers)\ninterleaving:\n%s", f.Scenario, f.Message, f.Seed, f.Workers, f.Trace)
}

// Save writes f to path as indented JSON.
func (f *Finding) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("explore: encoding finding: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("explore: saving finding: %w", err)
	}
	return nil
}

// Load reads a finding saved by Save.
func Load(path string) (*Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("explore: loading finding: %w", err)
	}
	var f Finding
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("explore: decoding %s: %w", path, err)
	}
	if !interleave.Compatible(f.Version) {
		return nil, fmt.Errorf("%w: %s was recorded by %q, this is %q", ErrIncompatible, path, f.Version, interleave.Version)
	}
	return &f, nil
}

// Replay re-runs the finding's seed. It returns the run's error: a
// *driver.Divergence when the finding still reproduces, nil when it no
// longer does.
func Replay(f *Finding, run Runner) error {
	return run(f.Seed.Oracle())
}
