package raymondsim

import (
	"context"
	"testing"
	"time"

	"github.com/kprusa/simraymond/internal/logging"
)

// buildTestMediator wires an n-node heap tree (node 1 is root, holding
// the token; every other node points at its parent) without starting
// any driver goroutines, so dispatch can be driven directly.
func buildTestMediator(n int) (*Mediator, map[NodeID]*node) {
	holders := buildHeapTree(n)
	m := NewMediator(nil, n, logging.NopLogger{}, nil)
	nodes := make(map[NodeID]*node, n)
	for id, holder := range holders {
		nodes[id] = newNode(id, holder, m.enqueue)
	}
	m.nodes = nodes
	return m, nodes
}

func TestMediator_RequestCS_IgnoresReceiverField(t *testing.T) {
	m, nodes := buildTestMediator(2)

	// Per spec §9's resolved open question, REQUEST_CS is always
	// self-directed regardless of the Receiver field.
	if err := m.dispatch(Message{Sender: 2, Receiver: 99, Kind: RequestCS}); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	if len(nodes[2].requestQueue) != 1 || nodes[2].requestQueue[0] != 2 {
		t.Errorf("expected node 2's own queue to receive the self-request, got %v", nodes[2].requestQueue)
	}
	if m.stats.Requests != 1 {
		t.Errorf("Requests = %d, want 1", m.stats.Requests)
	}
}

func TestMediator_SingleNode_GrantsImmediately(t *testing.T) {
	m, nodes := buildTestMediator(1)

	if err := m.dispatch(Message{Sender: 1, Receiver: 1, Kind: RequestCS}); err != nil {
		t.Fatalf("dispatch error: %v", err)
	}
	if !nodes[1].using {
		t.Error("expected the single node to immediately enter the CS")
	}
	if m.stats.Messages != 0 {
		t.Errorf("expected no inter-node messages for a single node, got %d", m.stats.Messages)
	}
}

func TestMediator_TwoNodes_PassesTokenAndRequest(t *testing.T) {
	m, nodes := buildTestMediator(2)
	// Node 2 requests the CS; node 1 (root/holder) must receive a
	// PASS_REQUEST and reply with PASS_TOKEN.
	if err := m.dispatch(Message{Sender: 2, Receiver: 2, Kind: RequestCS}); err != nil {
		t.Fatal(err)
	}
	if !nodes[2].asked {
		t.Fatal("expected node 2 to have asked its holder")
	}
	if len(m.queue) != 1 || m.queue[0].Kind != PassRequest {
		t.Fatalf("expected a queued PASS_REQUEST, got %v", m.queue)
	}

	msg := m.queue[0]
	m.queue = m.queue[1:]
	if err := m.dispatch(msg); err != nil {
		t.Fatal(err)
	}
	if len(m.queue) != 1 || m.queue[0].Kind != PassToken {
		t.Fatalf("expected a queued PASS_TOKEN, got %v", m.queue)
	}

	msg = m.queue[0]
	m.queue = m.queue[1:]
	if err := m.dispatch(msg); err != nil {
		t.Fatal(err)
	}
	if !nodes[2].using {
		t.Error("expected node 2 to be using the CS after receiving the token")
	}
	if m.stats.Messages != 2 {
		t.Errorf("Messages = %d, want 2 (one PASS_REQUEST + one PASS_TOKEN)", m.stats.Messages)
	}
	if m.stats.TokenPasses != 1 {
		t.Errorf("TokenPasses = %d, want 1", m.stats.TokenPasses)
	}
}

func TestMediator_UnknownMessageKind_IsInvariantViolation(t *testing.T) {
	m, _ := buildTestMediator(1)
	err := m.dispatch(Message{Sender: 1, Receiver: 1, Kind: MessageKind(99)})
	if _, ok := err.(InvariantViolation); !ok {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
}

func TestMediator_NotifyDone_BeyondTotal_IsInvariantViolation(t *testing.T) {
	m, _ := buildTestMediator(1)
	m.NotifyDone(1)
	m.NotifyDone(1) // already done once; total is 1, this overflows

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := m.Run(ctx)
	if _, ok := err.(InvariantViolation); !ok {
		t.Fatalf("expected InvariantViolation from Run, got %v", err)
	}
}

func TestMediator_SupplementalStats_TracksServicedPerNode(t *testing.T) {
	m, nodes := buildTestMediator(1)
	nodes[1].using = true

	if err := m.dispatch(Message{Sender: 1, Receiver: 1, Kind: ExitCS}); err != nil {
		t.Fatal(err)
	}
	if err := m.dispatch(Message{Sender: 1, Receiver: 1, Kind: RequestCS}); err != nil {
		t.Fatal(err)
	}
	nodes[1].using = true
	if err := m.dispatch(Message{Sender: 1, Receiver: 1, Kind: ExitCS}); err != nil {
		t.Fatal(err)
	}

	serviced, _, _ := m.SupplementalStats()
	if serviced[1] != 2 {
		t.Errorf("serviced[1] = %d, want 2", serviced[1])
	}
}

func TestMediator_Run_TerminatesWhenAllNodesDone(t *testing.T) {
	m, _ := buildTestMediator(2)
	m.NotifyDone(1)
	m.NotifyDone(2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := m.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
