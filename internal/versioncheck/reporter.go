package versioncheck

import (
	"io"

	"github.com/ethpandaops/nso-version-check/internal/output"
	"github.com/ethpandaops/nso-version-check/internal/suite"
)

// DeviceReporter is a terminal reporter whose short test summary names the device of every
// failed case.
type DeviceReporter struct {
	*suite.TerminalReporter

	formatter output.Formatter
}

// NewDeviceReporter creates a reporter writing to w. formatter may be nil.
func NewDeviceReporter(w io.Writer, width int, formatter output.Formatter) *DeviceReporter {
	return &DeviceReporter{
		TerminalReporter: suite.NewTerminalReporter(w, width),
		formatter:        formatter,
	}
}

// ShortTestSummary writes one line per failed case, suffixed with " for <device>" when the
// report carries a device.
func (r *DeviceReporter) ShortTestSummary() {
	r.WriteSep("=", "short test summary info")

	for _, rep := range r.Stats(suite.OutcomeFailed) {
		line := r.LineWithCrashMessage(rep)
		if len(rep.Extra) > 0 {
			line += " for " + rep.Extra[0]
		}

		r.WriteLine(line)
	}
}

// Summary writes the failure details, the short summary, the device tables and the totals.
func (r *DeviceReporter) Summary() {
	r.WriteFailures()
	r.ShortTestSummary()

	if r.formatter != nil {
		r.formatter.PrintResults()
		r.formatter.PrintSummary()
	}

	r.WriteStats()
}

// Compile-time interface compliance check
var _ suite.Reporter = (*DeviceReporter)(nil)
