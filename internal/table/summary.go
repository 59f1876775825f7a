package table

import (
	"fmt"

	"github.com/ethpandaops/nso-version-check/internal/format"
	"github.com/ethpandaops/nso-version-check/internal/metrics"
	"github.com/sirupsen/logrus"
)

// SummaryFormatter formats summary statistics as a table.
type SummaryFormatter struct {
	log      logrus.FieldLogger
	renderer Renderer
	colors   *ColorHelper
}

// NewSummaryFormatter creates a new summary table formatter.
func NewSummaryFormatter(log logrus.FieldLogger, renderer Renderer) *SummaryFormatter {
	return &SummaryFormatter{
		log:      log.WithField("component", "table.summary_formatter"),
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format converts summary metrics into a formatted table string.
func (f *SummaryFormatter) Format(summary metrics.SummaryMetric) string {
	passRate := format.Percentage(summary.Passed, summary.TotalChecks)

	passedValue := fmt.Sprintf("%d (%s)", summary.Passed, f.colors.FormatPercentage(passRate))
	if summary.Passed == summary.TotalChecks {
		passedValue = f.colors.Success(fmt.Sprintf("%d (%.1f%%)", summary.Passed, passRate))
	}

	failedValue := f.colors.Success("0")
	if summary.Failed > 0 {
		failedValue = f.colors.Failure(fmt.Sprintf("%d", summary.Failed))
	}

	erroredValue := f.colors.Success("0")
	if summary.Errored > 0 {
		erroredValue = f.colors.Warning(fmt.Sprintf("%d", summary.Errored))
	}

	unreachableValue := f.colors.Muted("0")
	if summary.Unreachable > 0 {
		unreachableValue = f.colors.Failure(fmt.Sprintf("%d", summary.Unreachable))
	}

	var (
		headers = []string{"Metric", "Value"}
		rows    = [][]string{
			{"Devices Checked", f.colors.Bold(fmt.Sprintf("%d", summary.TotalChecks))},
			{"Passed", passedValue},
			{"Failed (NOK)", failedValue},
			{"Errored", erroredValue},
			{"Unreachable", unreachableValue},
			{"Total Duration", format.Duration(summary.TotalDuration)},
		}
	)

	if summary.TotalCases > 0 {
		rows = append(rows, []string{"Cases Passed", f.colors.FormatPassed(summary.CasesPassed, summary.TotalCases)})
	}

	return "\n" + f.colors.Header("▸ Summary") + "\n\n" + f.renderer.RenderToString(headers, rows, WithRightAligned(1))
}
