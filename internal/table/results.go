package table

import (
	"fmt"
	"strings"

	"github.com/ethpandaops/nso-version-check/internal/format"
	"github.com/ethpandaops/nso-version-check/internal/metrics"
	"github.com/ethpandaops/nso-version-check/internal/nso"
	"github.com/sirupsen/logrus"
)

const maxMessageLen = 60

// ResultsFormatter formats device check results as a table.
type ResultsFormatter struct {
	log      logrus.FieldLogger
	renderer Renderer
	colors   *ColorHelper
}

// NewResultsFormatter creates a new results table formatter.
func NewResultsFormatter(log logrus.FieldLogger, renderer Renderer) *ResultsFormatter {
	return &ResultsFormatter{
		log:      log.WithField("component", "table.results_formatter"),
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format converts check metrics into a table followed by a detail section for every
// device that did not pass.
func (f *ResultsFormatter) Format(checks []metrics.CheckMetric) string {
	if len(checks) == 0 {
		return "No devices checked"
	}

	var (
		headers = []string{"Device", "Status", "Duration", "Message"}
		rows    = make([][]string, 0, len(checks))
		failed  = make([]metrics.CheckMetric, 0)
	)

	for _, check := range checks {
		message := format.Truncate(check.Message, maxMessageLen)

		if check.Status != nso.StatusOK {
			failed = append(failed, check)
			message = f.colors.Muted(message)
		}

		rows = append(rows, []string{
			check.Device,
			f.colors.FormatStatus(check.Status),
			format.Duration(check.Duration),
			message,
		})
	}

	output := "\n" + f.colors.Header("▸ Device Results") + "\n\n" + f.renderer.RenderToString(headers, rows)

	if len(failed) > 0 {
		output += f.formatFailureDetails(failed)
	}

	return output
}

func (f *ResultsFormatter) formatFailureDetails(failed []metrics.CheckMetric) string {
	var builder strings.Builder

	builder.WriteString("\n" + f.colors.Header("▸ Failed Device Details") + "\n\n")

	for _, check := range failed {
		label := string(check.Status)
		if check.Unreachable {
			label += ", unreachable"
		}

		builder.WriteString(fmt.Sprintf("  %s %s (%s)\n",
			f.colors.Failure("✗"),
			f.colors.Bold(check.Device),
			label,
		))
		builder.WriteString(fmt.Sprintf("    %s\n", check.Message))
	}

	return builder.String()
}
