// Package output provides human-friendly run output.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/ethpandaops/nso-version-check/internal/format"
	"github.com/ethpandaops/nso-version-check/internal/metrics"
	"github.com/ethpandaops/nso-version-check/internal/table"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Formatter provides clean, human-friendly output
type Formatter interface {
	PrintPhase(phase string)
	PrintProgress(message string, duration time.Duration)
	PrintSuccess(message string)
	PrintError(message string, err error)
	PrintResults()
	PrintSummary()
}

type formatter struct {
	writer  io.Writer
	metrics metrics.Collector

	resultsFormatter *table.ResultsFormatter
	summaryFormatter *table.SummaryFormatter

	green *color.Color
	red   *color.Color
	blue  *color.Color
	gray  *color.Color
}

// NewFormatter creates a new output formatter
func NewFormatter(log logrus.FieldLogger, writer io.Writer, collector metrics.Collector) Formatter {
	renderer := table.NewRenderer(log)

	return &formatter{
		writer:           writer,
		metrics:          collector,
		resultsFormatter: table.NewResultsFormatter(log, renderer),
		summaryFormatter: table.NewSummaryFormatter(log, renderer),
		green:            color.New(color.FgGreen),
		red:              color.New(color.FgRed),
		blue:             color.New(color.FgBlue),
		gray:             color.New(color.FgHiBlack),
	}
}

// PrintPhase prints phase separator
func (f *formatter) PrintPhase(phase string) {
	f.blue.Fprintf(f.writer, "\n▸ %s\n", phase)
}

// PrintProgress prints progress with timing
func (f *formatter) PrintProgress(message string, duration time.Duration) {
	if duration > 0 {
		f.gray.Fprintf(f.writer, "%s (%s)\n", message, format.Duration(duration))
	} else {
		fmt.Fprintf(f.writer, "%s\n", message)
	}
}

// PrintSuccess prints a green message
func (f *formatter) PrintSuccess(message string) {
	f.green.Fprintf(f.writer, "%s\n", message)
}

// PrintError prints a red message with error details
func (f *formatter) PrintError(message string, err error) {
	f.red.Fprintf(f.writer, "%s", message)
	if err != nil {
		f.red.Fprintf(f.writer, ": %v", err)
	}
	fmt.Fprintf(f.writer, "\n")
}

// PrintResults prints a table of per-device check results
func (f *formatter) PrintResults() {
	fmt.Fprintln(f.writer, f.resultsFormatter.Format(f.metrics.GetCheckMetrics()))
}

// PrintSummary prints a summary table with aggregate statistics
func (f *formatter) PrintSummary() {
	fmt.Fprintln(f.writer, f.summaryFormatter.Format(f.metrics.GetSummary()))
}
