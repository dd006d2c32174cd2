package raymondsim

import (
	"fmt"
	"time"
)

// SimLoad selects the synthetic workload intensity, which determines the
// service-rate parameter mu used by the per-node time generator (§4.1).
type SimLoad int

const (
	// LoadLow corresponds to mu = floor(N*lambda / 0.1).
	LoadLow SimLoad = iota + 1
	// LoadMed corresponds to mu = floor(N*lambda / 0.5).
	LoadMed
	// LoadHigh corresponds to mu = floor(N*lambda / 0.8).
	LoadHigh
)

func (l SimLoad) String() string {
	switch l {
	case LoadLow:
		return "LOW"
	case LoadMed:
		return "MED"
	case LoadHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("SimLoad(%d)", int(l))
	}
}

// ParseSimLoad accepts both the interactive 1/2/3 codes from spec §6 and
// the --load {low,med,high} flag spelling.
func ParseSimLoad(s string) (SimLoad, error) {
	switch s {
	case "1", "low", "LOW", "Low":
		return LoadLow, nil
	case "2", "med", "MED", "Med":
		return LoadMed, nil
	case "3", "high", "HIGH", "High":
		return LoadHigh, nil
	default:
		return 0, InputError{Field: "load", Reason: fmt.Sprintf("unrecognized value %q", s)}
	}
}

// serviceDivisor is the denominator in mu = floor(N*lambda / divisor).
func (l SimLoad) serviceDivisor() float64 {
	switch l {
	case LoadLow:
		return 0.1
	case LoadMed:
		return 0.5
	case LoadHigh:
		return 0.8
	default:
		return 0.1
	}
}

// DefaultRequests is K from spec §3 - the number of CS cycles each node
// runs before signalling local completion.
const DefaultRequests = 500

// Config collects every parameter needed to build and run a Simulation.
// It is the single point both the CLI flag parser and the interactive
// prompt populate, per SPEC_FULL.md §10.3.
type Config struct {
	Nodes    int
	Load     SimLoad
	Seed     int64
	Requests int

	// Verbose enables the supplemental per-run statistics from
	// SPEC_FULL.md §12.4, which are logged at Debug level. It does not
	// change the logger's level; the caller's logger sets that.
	Verbose bool

	// WatchdogInterval, if positive, aborts the run if the mediator
	// makes no progress for this long. Zero disables it (default).
	WatchdogInterval time.Duration

	// LogPath is where the append-only summary block is written.
	// Empty disables persistent logging.
	LogPath string
}

// Validate reports an InputError for any parameter that violates spec.md's
// external-interface contract.
func (c Config) Validate() error {
	if c.Nodes < 1 {
		return InputError{Field: "nodes", Reason: "must be >= 1"}
	}
	if c.Load != LoadLow && c.Load != LoadMed && c.Load != LoadHigh {
		return InputError{Field: "load", Reason: "must be LOW, MED, or HIGH"}
	}
	if c.Requests < 1 {
		return InputError{Field: "requests", Reason: "must be >= 1"}
	}
	return nil
}

// WithDefaults returns a copy of c with zero-valued optional fields
// replaced by their documented defaults.
func (c Config) WithDefaults() Config {
	if c.Requests == 0 {
		c.Requests = DefaultRequests
	}
	return c
}
