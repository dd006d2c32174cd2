package raymondsim

import (
	"context"
	"sync"
	"time"

	"github.com/kprusa/simraymond/internal/logging"
	"github.com/kprusa/simraymond/internal/stats"
	"github.com/kprusa/simraymond/internal/trace"
)

// Stats are the mediator's global counters (spec §3, §6).
type Stats struct {
	Requests    int
	Serviced    int
	Messages    int
	TokenPasses int
}

// MessagesPerRequest is "messages/requests" for the summary block (spec
// §6). Zero requests yields zero rather than dividing by zero.
func (s Stats) MessagesPerRequest() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.Messages) / float64(s.Requests)
}

// TokenPassesPerRequest is "token_passes/requests" for the summary block.
func (s Stats) TokenPassesPerRequest() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.TokenPasses) / float64(s.Requests)
}

// Mediator is the single FIFO message serializer from spec §4.3. All
// state-machine rules execute inside its dispatch loop; no two rules
// ever run concurrently, so message delivery is totally ordered by
// dequeue sequence (spec §5).
type Mediator struct {
	mu   sync.Mutex
	cond *sync.Cond

	queue   []Message
	nodes   map[NodeID]*node
	doneSet map[NodeID]struct{}
	total   int

	stats        Stats
	invariantErr error

	// serviced and samples feed the §12.4 supplemental statistics;
	// populated on every ExitCS dispatch, read only after Run returns.
	serviced stats.ServicedCount
	samples  []stats.DispatchSample

	logger logging.Logger
	tracer trace.Tracer
	now    func() time.Time

	// afterDispatch, if set, runs after every successful dispatch. It
	// exists for the S6 invariant-harness test (P1, P2, P6) and is nil
	// in normal operation.
	afterDispatch func()
}

// NewMediator constructs a Mediator over the given nodes. total is the
// node count N, used by the termination condition (|done_set| < N).
func NewMediator(nodes map[NodeID]*node, total int, logger logging.Logger, tracer trace.Tracer) *Mediator {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if tracer == nil {
		tracer = trace.NullTracer{}
	}
	m := &Mediator{
		nodes:    nodes,
		doneSet:  make(map[NodeID]struct{}, total),
		total:    total,
		logger:   logger,
		tracer:   tracer,
		now:      time.Now,
		serviced: make(stats.ServicedCount, total),
	}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// enqueue appends a message to the FIFO and wakes the dispatch loop.
// Safe for concurrent callers: node drivers call it directly (REQUEST_CS,
// EXIT_CS) and rules call it indirectly via node.sendFn while the
// dispatch loop itself holds no lock during rule application.
func (m *Mediator) enqueue(msg Message) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	m.mu.Unlock()
	m.cond.Broadcast()
}

// RequestCS is called by a node's driver to request the CS. Per the
// open question resolved in spec §9, this is always self-directed; the
// mediator dispatch table ignores any receiver other than the sender
// for this kind.
func (m *Mediator) RequestCS(id NodeID) {
	m.enqueue(Message{Sender: id, Receiver: id, Kind: RequestCS})
}

// ExitCS is called by a node's driver when it leaves the CS.
func (m *Mediator) ExitCS(id NodeID) {
	m.enqueue(Message{Sender: id, Receiver: id, Kind: ExitCS})
}

// NotifyDone adds id to the done set and wakes the dispatch loop so it
// can re-check the termination condition (spec §4.6). A done set that
// would exceed N is an InvariantViolation (spec §7); it is recorded and
// surfaced as Run's return error rather than panicking, since it can
// only be reached by a bug in the driver lifecycle, not by untrusted
// input.
func (m *Mediator) NotifyDone(id NodeID) {
	m.mu.Lock()
	if len(m.doneSet) >= m.total {
		m.invariantErr = InvariantViolation{Detail: "done set exceeded node count"}
		m.mu.Unlock()
		m.cond.Broadcast()
		return
	}
	m.doneSet[id] = struct{}{}
	m.mu.Unlock()
	m.cond.Broadcast()
}

// Run drains the queue until every node has signalled completion and the
// queue is empty, applying spec §4.3's dispatch table to each message.
// It returns the final Stats, or an error if an InvariantViolation was
// raised while dispatching. Cancelling ctx causes Run to return early
// with ctx.Err() without releasing node done signals - callers should
// treat that as a failed run, not normal termination (spec §5).
func (m *Mediator) Run(ctx context.Context) (Stats, error) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			m.cond.Broadcast()
		case <-stop:
		}
	}()

	for {
		m.mu.Lock()
		for len(m.queue) == 0 && len(m.doneSet) < m.total && ctx.Err() == nil && m.invariantErr == nil {
			m.cond.Wait()
		}

		if m.invariantErr != nil {
			err := m.invariantErr
			m.mu.Unlock()
			return m.stats, err
		}

		if ctx.Err() != nil {
			m.mu.Unlock()
			return m.stats, ctx.Err()
		}

		if len(m.queue) == 0 && len(m.doneSet) >= m.total {
			m.mu.Unlock()
			break
		}

		msg := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()

		if err := m.dispatch(msg); err != nil {
			return m.stats, err
		}
		if m.afterDispatch != nil {
			m.afterDispatch()
		}
	}

	m.releaseDoneSignals()
	return m.stats, nil
}

// SupplementalStats returns the §12.4 debug-level statistics accumulated
// over the run: per-node serviced-CS counts, and the messages-per-CS
// trend across the run's first and second halves. Safe to call only
// after Run has returned.
func (m *Mediator) SupplementalStats() (serviced stats.ServicedCount, firstHalfTrend, secondHalfTrend float64) {
	firstHalfTrend, secondHalfTrend = stats.MessagesPerCSTrend(m.samples)
	return m.serviced, firstHalfTrend, secondHalfTrend
}

func (m *Mediator) releaseDoneSignals() {
	for id := range m.doneSet {
		m.nodes[id].doneSignal.Post()
	}
}

// dispatch applies one message per spec §4.3's table. It is only ever
// called from Run's single goroutine, so rule application on the
// recipient node needs no further synchronization.
func (m *Mediator) dispatch(msg Message) error {
	m.tracer.Trace(traceEvent(m.now().UnixMilli(), msg))
	m.logger.Debugf("dispatch %s", msg)

	switch msg.Kind {
	case RequestCS:
		snd := m.nodes[msg.Sender]
		snd.enqueue(msg.Sender)
		snd.assignPrivilege()
		snd.makeRequest()
		m.stats.Requests++

	case PassRequest:
		recv, ok := m.nodes[msg.Receiver]
		if !ok {
			return InvariantViolation{Detail: "PASS_REQUEST to unknown node " + msg.Receiver.String()}
		}
		recv.enqueue(msg.Sender)
		recv.assignPrivilege()
		recv.makeRequest()
		m.stats.Messages++

	case PassToken:
		recv, ok := m.nodes[msg.Receiver]
		if !ok {
			return InvariantViolation{Detail: "PASS_TOKEN to unknown node " + msg.Receiver.String()}
		}
		recv.holder = recv.id
		recv.assignPrivilege()
		recv.makeRequest()
		m.stats.Messages++
		m.stats.TokenPasses++

	case ExitCS:
		snd := m.nodes[msg.Sender]
		snd.using = false
		snd.assignPrivilege()
		snd.makeRequest()
		m.stats.Serviced++
		m.serviced[int(msg.Sender)]++
		m.samples = append(m.samples, stats.DispatchSample{Messages: m.stats.Messages, Requests: m.stats.Requests})

	default:
		return InvariantViolation{Detail: "unknown message kind"}
	}
	return nil
}

func traceEvent(epochMS int64, msg Message) trace.Event {
	e := trace.Event{EpochMS: epochMS, Sender: int(msg.Sender)}
	switch msg.Kind {
	case RequestCS:
		e.Verb = "requested the CS,"
	case PassRequest:
		e.Verb = "sent request to"
		e.Object = msg.Receiver.String()
	case PassToken:
		e.Verb = "passed the token to"
		e.Object = msg.Receiver.String()
	case ExitCS:
		e.Verb = "exited the CS"
	}
	return e
}
