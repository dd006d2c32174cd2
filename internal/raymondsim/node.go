package raymondsim

import "github.com/kprusa/simraymond/internal/rendezvous"

// node holds the per-node Raymond state machine fields from spec §3. Its
// rules (enqueue, assignPrivilege, makeRequest) are applied exclusively
// by the mediator's single dispatch loop (spec §5); the `using` flag is
// never written by the node's own driver, and `sendFn` is the only way a
// rule may produce a new message, so the mediator's FIFO remains the
// single point of ordering.
type node struct {
	id NodeID

	// holder identifies the neighbor (or self) believed to lie on the
	// path toward the current token holder.
	holder NodeID

	// requestQueue is the FIFO of pending CS requests, local and
	// forwarded.
	requestQueue []NodeID

	// using is true iff this node is currently inside the CS.
	using bool

	// asked is true between sending a PASS_REQUEST and receiving the
	// matching PASS_TOKEN.
	asked bool

	// tokenSignal is posted when this node becomes holder-and-wanting;
	// the driver blocks on it before entering the CS.
	tokenSignal *rendezvous.Signal

	// doneSignal is posted by the mediator during termination, once
	// this node has been added to the done set.
	doneSignal *rendezvous.Signal

	// sendFn enqueues a message produced by a rule onto the mediator's
	// single FIFO. Never nil once constructed.
	sendFn func(Message)
}

// newNode creates a node with the given initial holder pointer (self for
// the root of the heap tree, the parent otherwise; see topology.go).
func newNode(id, holder NodeID, sendFn func(Message)) *node {
	return &node{
		id:          id,
		holder:      holder,
		tokenSignal: rendezvous.New(),
		doneSignal:  rendezvous.New(),
		sendFn:      sendFn,
	}
}

// enqueue implements spec §4.2's enqueue(self, x) rule.
func (n *node) enqueue(x NodeID) {
	n.requestQueue = append(n.requestQueue, x)
}

// assignPrivilege implements spec §4.2's assign_privilege rule.
func (n *node) assignPrivilege() {
	if n.holder != n.id || n.using || len(n.requestQueue) == 0 {
		return
	}

	next := n.requestQueue[0]
	n.requestQueue = n.requestQueue[1:]
	n.holder = next
	n.asked = false

	if n.holder == n.id {
		n.using = true
		n.tokenSignal.Post()
		return
	}
	n.sendFn(Message{Sender: n.id, Receiver: n.holder, Kind: PassToken})
}

// makeRequest implements spec §4.2's make_request rule.
func (n *node) makeRequest() {
	if n.holder == n.id || len(n.requestQueue) == 0 || n.asked {
		return
	}
	n.sendFn(Message{Sender: n.id, Receiver: n.holder, Kind: PassRequest})
	n.asked = true
}

// isTokenHolder reports whether this node currently believes itself to
// be the token holder (holder == self). Used only by node tests; the
// mediator and the invariant harness compare the holder field directly.
func (n *node) isTokenHolder() bool {
	return n.holder == n.id
}
