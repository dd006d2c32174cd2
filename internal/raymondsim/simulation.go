package raymondsim

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/kprusa/simraymond/internal/logging"
	"github.com/kprusa/simraymond/internal/trace"
)

// Simulation is the C6 controller: it wires nodes and the mediator,
// releases the start barrier, awaits termination, and reports
// statistics (spec §4.6).
type Simulation struct {
	cfg    Config
	logger logging.Logger
	tracer trace.Tracer

	// sleep is the driver's stall/enter-CS wait. Defaults to
	// time.Sleep; tests in this package override it to run the
	// generated time sequences without spending real wall-clock time.
	sleep func(time.Duration)
}

// NewSimulation validates cfg (applying defaults first) and returns a
// ready-to-run Simulation.
func NewSimulation(cfg Config, logger logging.Logger, tracer trace.Tracer) (*Simulation, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if tracer == nil {
		tracer = trace.NullTracer{}
	}
	return &Simulation{cfg: cfg, logger: logger, tracer: tracer, sleep: time.Sleep}, nil
}

// Run builds the topology, starts the mediator and every node driver,
// releases the start barrier, and blocks until the mediator reports
// termination. A healthy run completes on its own. Cancelling ctx, or
// the optional watchdog described in SPEC_FULL.md §12.5 firing, aborts
// the run: Run then returns the mediator's error without waiting for the
// node drivers, which stay blocked on their token or done signals.
func (s *Simulation) Run(ctx context.Context) (Stats, error) {
	holders := buildHeapTree(s.cfg.Nodes)

	mediator := NewMediator(nil, s.cfg.Nodes, s.logger, s.tracer)
	nodes := make(map[NodeID]*node, s.cfg.Nodes)
	for id, holder := range holders {
		nodes[id] = newNode(id, holder, mediator.enqueue)
	}
	mediator.nodes = nodes

	drivers := make([]*driver, 0, s.cfg.Nodes)
	for id := NodeID(1); int(id) <= s.cfg.Nodes; id++ {
		rng := rand.New(rand.NewSource(nodeSeed(s.cfg.Seed, id)))
		times := generateTimes(rng, s.cfg.Nodes, s.cfg.Requests, s.cfg.Load)
		drivers = append(drivers, newDriver(nodes[id], times, mediator.RequestCS, mediator.ExitCS, mediator.NotifyDone, s.sleep))
	}

	startGate := make(chan struct{})
	var wg sync.WaitGroup
	for _, d := range drivers {
		wg.Add(1)
		go func(d *driver) {
			defer wg.Done()
			d.run(startGate)
		}(d)
	}

	runCtx, cancelWatchdog := context.WithCancel(ctx)
	defer cancelWatchdog()
	if s.cfg.WatchdogInterval > 0 {
		go s.watch(runCtx, mediator, cancelWatchdog)
	}

	close(startGate)

	result, err := mediator.Run(runCtx)
	if err != nil {
		return result, err
	}
	wg.Wait()

	if s.cfg.Verbose {
		s.logSupplementalStats(mediator)
	}

	return result, nil
}

// logSupplementalStats emits the §12.4 debug-level statistics: per-node
// serviced-CS counts and the messages-per-CS trend across the run's
// first and second halves.
func (s *Simulation) logSupplementalStats(m *Mediator) {
	serviced, firstHalf, secondHalf := m.SupplementalStats()
	for id := NodeID(1); int(id) <= s.cfg.Nodes; id++ {
		s.logger.Debugf("node %s serviced %d critical sections", id, serviced[int(id)])
	}
	s.logger.Debugf("messages/CS trend: first half %.2f, second half %.2f", firstHalf, secondHalf)
}

// watch aborts runCtx if the mediator's dispatch count has not advanced
// for WatchdogInterval (SPEC_FULL.md §12.5). It is opt-in and off by
// default so it never interferes with the deterministic scenarios in
// spec §8.
func (s *Simulation) watch(ctx context.Context, m *Mediator, abort context.CancelFunc) {
	ticker := time.NewTicker(s.cfg.WatchdogInterval)
	defer ticker.Stop()

	lastTotal := -1
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mu.Lock()
			total := m.stats.Requests + m.stats.Serviced + m.stats.Messages + m.stats.TokenPasses
			m.mu.Unlock()
			if total == lastTotal {
				s.logger.Errorf("watchdog: no mediator progress for %s, aborting", s.cfg.WatchdogInterval)
				abort()
				return
			}
			lastTotal = total
		}
	}
}
