package raymondsim

import "time"

// driver is a node's control loop (spec §4.4): stall, request, wait for
// the token, enter the CS, exit, repeated K times (or until its times
// sequence is exhausted), then signal completion and wait to be
// released at termination.
type driver struct {
	id    NodeID
	times []timePair
	node  *node

	requestCS func(NodeID)
	exitCS    func(NodeID)
	notifyDone func(NodeID)

	// sleep is overridable in tests so the K-cycle loop does not need
	// to spend real wall-clock time.
	sleep func(time.Duration)
}

// run executes the driver's full lifecycle. startGate is closed once by
// the simulation controller after every node and the mediator are
// wired, so no driver issues a request before the tree is ready (spec
// §4.4's start barrier).
func (d *driver) run(startGate <-chan struct{}) {
	<-startGate

	for _, pair := range d.times {
		d.sleep(time.Duration(pair.interArrivalMS) * time.Millisecond)

		d.requestCS(d.id)
		d.node.tokenSignal.Wait()

		d.sleep(time.Duration(pair.executionMS) * time.Millisecond)

		d.exitCS(d.id)
	}

	d.notifyDone(d.id)
	d.node.doneSignal.Wait()
}

func newDriver(n *node, times []timePair, requestCS, exitCS, notifyDone func(NodeID), sleep func(time.Duration)) *driver {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &driver{
		id:         n.id,
		times:      times,
		node:       n,
		requestCS:  requestCS,
		exitCS:     exitCS,
		notifyDone: notifyDone,
		sleep:      sleep,
	}
}
