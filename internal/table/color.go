package table

import (
	"fmt"

	"github.com/ethpandaops/nso-version-check/internal/nso"
	"github.com/fatih/color"
)

type tone int

const (
	toneSuccess tone = iota
	toneFailure
	toneWarning
	toneMuted
	toneBold
	toneHeader
)

var palette = map[tone]*color.Color{
	toneSuccess: color.New(color.FgGreen),
	toneFailure: color.New(color.FgRed),
	toneWarning: color.New(color.FgYellow),
	toneMuted:   color.New(color.FgHiBlack),
	toneBold:    color.New(color.Bold),
	toneHeader:  color.New(color.FgCyan, color.Bold),
}

// statusLabels are the table labels of each check status.
var statusLabels = map[nso.CheckStatus]struct {
	label string
	tone  tone
}{
	nso.StatusOK:    {label: "✓ OK", tone: toneSuccess},
	nso.StatusNOK:   {label: "✗ NOK", tone: toneFailure},
	nso.StatusError: {label: "! ERROR", tone: toneWarning},
}

// ColorHelper colors table cells. It is a no-op when color.NoColor was set at creation.
type ColorHelper struct {
	enabled bool
}

// NewColorHelper creates a new color helper
func NewColorHelper() *ColorHelper {
	return &ColorHelper{
		enabled: !color.NoColor,
	}
}

func (c *ColorHelper) paint(t tone, text string) string {
	if !c.enabled {
		return text
	}

	return palette[t].Sprint(text)
}

// Success returns green text
func (c *ColorHelper) Success(text string) string { return c.paint(toneSuccess, text) }

// Failure returns red text
func (c *ColorHelper) Failure(text string) string { return c.paint(toneFailure, text) }

// Warning returns yellow text
func (c *ColorHelper) Warning(text string) string { return c.paint(toneWarning, text) }

// Muted returns gray text
func (c *ColorHelper) Muted(text string) string { return c.paint(toneMuted, text) }

// Bold returns bold text
func (c *ColorHelper) Bold(text string) string { return c.paint(toneBold, text) }

// Header returns bold cyan text for section headers
func (c *ColorHelper) Header(text string) string { return c.paint(toneHeader, text) }

// FormatStatus labels a check status. Unknown statuses are shown as warnings.
func (c *ColorHelper) FormatStatus(status nso.CheckStatus) string {
	s, ok := statusLabels[status]
	if !ok {
		return c.Warning("! " + string(status))
	}

	return c.paint(s.tone, s.label)
}

// FormatPassed renders passed/total, green when all passed and red when none did.
func (c *ColorHelper) FormatPassed(passed, total int) string {
	text := fmt.Sprintf("%d/%d", passed, total)

	switch passed {
	case total:
		return c.Success(text)
	case 0:
		return c.Failure(text)
	default:
		return c.Warning(text)
	}
}

// FormatPercentage renders a pass rate, yellow from 90% and green only at 100%.
func (c *ColorHelper) FormatPercentage(value float64) string {
	text := fmt.Sprintf("%.1f%%", value)

	switch {
	case value >= 100:
		return c.Success(text)
	case value >= 90:
		return c.Warning(text)
	default:
		return c.Failure(text)
	}
}
