// Command simraymond runs a discrete-event simulation of Raymond's
// tree-based distributed mutual-exclusion algorithm and reports
// per-critical-section message and token-pass statistics.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kprusa/simraymond/internal/logging"
	"github.com/kprusa/simraymond/internal/raymondsim"
	"github.com/kprusa/simraymond/internal/trace"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("simraymond", "Discrete-event simulator for Raymond's tree mutual-exclusion algorithm.")

	nodes = app.Flag("nodes", "number of nodes in the tree").Int()
	load  = app.Flag("load", "workload intensity: low, med, or high").String()
	seed  = app.Flag("seed", "RNG seed for reproducible runs").Default("1").Int64()
	reqs  = app.Flag("requests", "critical sections requested per node (K)").Default(fmt.Sprint(raymondsim.DefaultRequests)).Int()
	logFile = app.Flag("log-file", "append-only summary log path").Default("simRaymondLog.txt").String()
	verbose = app.Flag("verbose", "enable debug logging and per-node statistics").Short('v').Bool()
	quiet   = app.Flag("quiet", "suppress the per-event stdout trace").Bool()
	watchdog = app.Flag("watchdog", "abort if the mediator stalls for this long (0 disables)").Default("0").Duration()
)

func main() {
	os.Exit(run())
}

func run() int {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := logging.NewStderrLogger(*verbose)

	cfg, err := resolveConfig(logger)
	if err != nil {
		logger.Errorf("%s", err)
		return 2
	}
	cfg.WatchdogInterval = *watchdog
	cfg.LogPath = *logFile
	cfg.Verbose = *verbose

	var tracer trace.Tracer = trace.NullTracer{}
	if !*quiet {
		tracer = trace.ColorTracer{Out: os.Stdout}
	}

	sim, err := raymondsim.NewSimulation(cfg, logger, tracer)
	if err != nil {
		logger.Errorf("%s", err)
		return 2
	}

	stats, err := sim.Run(context.Background())
	if err != nil {
		if _, ok := err.(raymondsim.InvariantViolation); ok {
			logger.Errorf("%s", err)
			return 3
		}
		logger.Errorf("simulation aborted: %s", err)
		return 3
	}

	block := raymondsim.Summary(cfg, stats)
	fmt.Print(block)
	if cfg.LogPath != "" {
		if logErr := raymondsim.AppendSummaryLog(cfg.LogPath, block, logger); logErr != nil {
			logger.Warnf("%s", logErr)
		}
	}
	return 0
}

// resolveConfig builds a Config from flags when --nodes is positive,
// otherwise (flag absent, zero or negative) falls back to the
// interactive prompt from spec §6.
func resolveConfig(logger logging.Logger) (raymondsim.Config, error) {
	cfg := raymondsim.Config{
		Seed:     *seed,
		Requests: *reqs,
	}

	if *nodes > 0 {
		cfg.Nodes = *nodes
		l, err := raymondsim.ParseSimLoad(*load)
		if err != nil {
			return cfg, err
		}
		cfg.Load = l
		return cfg, cfg.Validate()
	}

	return promptConfig(os.Stdin, os.Stdout, cfg)
}
