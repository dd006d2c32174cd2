package raymondsim

import (
	"fmt"
	"os"
	"strings"

	"github.com/kprusa/simraymond/internal/logging"
)

// Summary formats the eight-line block from spec §6, given the Config
// used for the run and the final Stats.
func Summary(cfg Config, stats Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Load: %s\n", cfg.Load)
	fmt.Fprintf(&b, "Number of nodes: %d\n", cfg.Nodes)
	fmt.Fprintf(&b, "Number of critical section: %d\n", stats.Requests)
	fmt.Fprintf(&b, "Number of critical sections serviced: %d\n", stats.Serviced)
	fmt.Fprintf(&b, "Number of messages: %d\n", stats.Messages)
	fmt.Fprintf(&b, "Number of messages per request: %g\n", stats.MessagesPerRequest())
	fmt.Fprintf(&b, "Number of token passes: %d\n", stats.TokenPasses)
	fmt.Fprintf(&b, "Number of token passes per critical section: %g\n", stats.TokenPassesPerRequest())
	return b.String()
}

// AppendSummaryLog appends block to path, matching spec §6's "appended
// to simRaymondLog.txt". A failure to open the file is reported as a
// LogIOError and is never fatal - the caller should log it and continue
// with stdout-only output (spec §7).
func AppendSummaryLog(path, block string, logger logging.Logger) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return LogIOError{Op: "open", Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warnf("close summary log: %s", cerr)
		}
	}()

	if _, err := f.WriteString(block); err != nil {
		return LogIOError{Op: "write", Err: err}
	}
	return nil
}
