// Package trace implements the advisory per-event stdout trace from
// spec.md §6: "<epoch_ms>: <sender_id> <verb> <object>". It is kept
// independent of the simulation core (SPEC_FULL.md treats it, like the
// interactive prompt, as a thin I/O layer) so it can be swapped for a
// NullTracer or redirected to any io.Writer without the core depending
// on terminal concerns.
package trace

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
)

// Event is one traceable occurrence: a sender performing verb against an
// optional object (the neighbor a request/token was sent to; empty for
// self-directed events).
type Event struct {
	EpochMS int64
	Sender  int
	Verb    string
	Object  string
}

// Tracer emits Events. Implementations must be safe for the mediator's
// single dispatch goroutine to call repeatedly; no concurrent callers
// are expected per spec §5 (dispatch is serialized).
type Tracer interface {
	Trace(e Event)
}

// NullTracer discards every event - the "suppress behind a verbosity
// flag" option spec §6 allows.
type NullTracer struct{}

func (NullTracer) Trace(Event) {}

// WriterTracer writes the plain, uncolored line format to an io.Writer.
type WriterTracer struct {
	Out io.Writer
}

func (t WriterTracer) Trace(e Event) {
	fmt.Fprintln(t.Out, format(e))
}

// ColorTracer colorizes each of the four verbs unless color.NoColor is
// set. fatih/color sets NoColor when os.Stdout is not a terminal; it does
// not look at Out, so an Out other than os.Stdout is colored whenever
// stdout is a terminal.
type ColorTracer struct {
	Out io.Writer
}

func (t ColorTracer) Trace(e Event) {
	fmt.Fprintln(t.Out, colorFor(e.Verb)(format(e)))
}

func format(e Event) string {
	line := strconv.FormatInt(e.EpochMS, 10) + ": " + strconv.Itoa(e.Sender) + " " + e.Verb
	if e.Object != "" {
		line += " " + e.Object
	}
	return line
}

func colorFor(verb string) func(format string, a ...interface{}) string {
	switch verb {
	case "requested the CS,":
		return color.CyanString
	case "sent request to":
		return color.YellowString
	case "passed the token to":
		return color.MagentaString
	case "exited the CS":
		return color.GreenString
	default:
		return color.WhiteString
	}
}
