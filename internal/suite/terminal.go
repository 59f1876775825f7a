package suite

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ethpandaops/nso-version-check/internal/format"
	"github.com/fatih/color"
)

const (
	defaultWidth = 80
	ellipsis     = "..."
)

// TerminalReporter is the default Reporter. It prints one line per outcome and, at the end,
// the failure details, the short test summary and the totals.
type TerminalReporter struct {
	writer io.Writer
	width  int
	start  time.Time
	stats  map[Outcome][]*Report

	green *color.Color
	red   *color.Color
	bold  *color.Color
}

// NewTerminalReporter creates a reporter writing to w. width <= 0 uses 80 columns.
func NewTerminalReporter(w io.Writer, width int) *TerminalReporter {
	if width <= 0 {
		width = defaultWidth
	}

	return &TerminalReporter{
		writer: w,
		width:  width,
		start:  time.Now(),
		stats:  make(map[Outcome][]*Report),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		bold:   color.New(color.Bold),
	}
}

// ReportOutcome records rep and prints its progress line.
func (r *TerminalReporter) ReportOutcome(rep *Report) {
	r.stats[rep.Outcome] = append(r.stats[rep.Outcome], rep)

	word := strings.ToUpper(string(rep.Outcome))
	if rep.Failed() {
		word = r.red.Sprint(word)
	} else {
		word = r.green.Sprint(word)
	}

	r.WriteLine(fmt.Sprintf("%s %s", rep.NodeID, word))
}

// Stats returns the reports recorded with outcome.
func (r *TerminalReporter) Stats(outcome Outcome) []*Report {
	return r.stats[outcome]
}

// WriteLine writes line followed by a newline.
func (r *TerminalReporter) WriteLine(line string) {
	fmt.Fprintln(r.writer, line)
}

// WriteSep writes title centered in a line of sep characters.
func (r *TerminalReporter) WriteSep(sep, title string) {
	if title == "" {
		r.WriteLine(strings.Repeat(sep, r.width))
		return
	}

	title = " " + title + " "

	fill := (r.width - len(title)) / 2
	if fill < 1 {
		fill = 1
	}

	line := strings.Repeat(sep, fill) + title + strings.Repeat(sep, fill)
	if len(line) < r.width {
		line += strings.Repeat(sep, r.width-len(line))
	}

	r.WriteLine(r.bold.Sprint(line))
}

// LineWithCrashMessage renders the summary line for a failed report:
// "FAILED <node id> - <crash message>", with the message cut to fit the width.
func (r *TerminalReporter) LineWithCrashMessage(rep *Report) string {
	line := fmt.Sprintf("%s %s", strings.ToUpper(string(rep.Outcome)), rep.NodeID)
	if rep.Crash == "" {
		return line
	}

	available := r.width - utf8.RuneCountInString(line) - len(" - ")
	if available < len(ellipsis) {
		return line
	}

	return line + " - " + format.Truncate(rep.Crash, available)
}

// WriteFailures prints the full failure output of every failed report.
func (r *TerminalReporter) WriteFailures() {
	failed := r.stats[OutcomeFailed]
	if len(failed) == 0 {
		return
	}

	r.WriteSep("=", "FAILURES")

	for _, rep := range failed {
		r.WriteSep("_", rep.NodeID)
		r.WriteLine(rep.Longrepr)
		r.WriteLine("")
	}
}

// ShortTestSummary prints one line per failed report.
func (r *TerminalReporter) ShortTestSummary() {
	failed := r.stats[OutcomeFailed]
	if len(failed) == 0 {
		return
	}

	r.WriteSep("=", "short test summary info")

	for _, rep := range failed {
		r.WriteLine(r.LineWithCrashMessage(rep))
	}
}

// WriteStats prints the final totals line.
func (r *TerminalReporter) WriteStats() {
	var (
		parts   = make([]string, 0, 2)
		elapsed = time.Since(r.start).Seconds()
	)

	if n := len(r.stats[OutcomeFailed]); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}

	if n := len(r.stats[OutcomePassed]); n > 0 {
		parts = append(parts, fmt.Sprintf("%d passed", n))
	}

	summary := "no tests ran"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}

	r.WriteSep("=", fmt.Sprintf("%s in %.2fs", summary, elapsed))
}

// Summary prints everything that follows the last outcome.
func (r *TerminalReporter) Summary() {
	r.WriteFailures()
	r.ShortTestSummary()
	r.WriteStats()
}

// Compile-time interface compliance check
var _ Reporter = (*TerminalReporter)(nil)
