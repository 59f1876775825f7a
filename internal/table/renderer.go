// Package table provides table formatting for device check results.
package table

import (
	"bytes"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
)

// Renderer draws rows as a box table.
type Renderer interface {
	RenderToString(headers []string, rows [][]string, opts ...RenderOption) string
	RenderToWriter(w io.Writer, headers []string, rows [][]string, opts ...RenderOption)
}

// RenderOption configures table rendering
type RenderOption func(*settings)

type settings struct {
	border    bool
	alignment []int
}

// WithBorder controls border visibility
func WithBorder(show bool) RenderOption {
	return func(s *settings) { s.border = show }
}

// WithRightAligned right-aligns the given zero-based columns.
func WithRightAligned(columns ...int) RenderOption {
	return func(s *settings) {
		for _, col := range columns {
			for len(s.alignment) <= col {
				s.alignment = append(s.alignment, tablewriter.ALIGN_LEFT)
			}

			s.alignment[col] = tablewriter.ALIGN_RIGHT
		}
	}
}

type renderer struct {
	log logrus.FieldLogger
}

// NewRenderer creates a new table renderer
func NewRenderer(log logrus.FieldLogger) Renderer {
	return &renderer{
		log: log.WithField("component", "table_renderer"),
	}
}

func (r *renderer) RenderToString(headers []string, rows [][]string, opts ...RenderOption) string {
	var buf bytes.Buffer

	r.RenderToWriter(&buf, headers, rows, opts...)

	return buf.String()
}

func (r *renderer) RenderToWriter(w io.Writer, headers []string, rows [][]string, opts ...RenderOption) {
	s := settings{border: true}
	for _, opt := range opts {
		opt(&s)
	}

	t := tablewriter.NewWriter(w)
	t.SetHeader(headers)
	t.SetAutoWrapText(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetCenterSeparator("┼")
	t.SetColumnSeparator("│")
	t.SetRowSeparator("─")
	t.SetBorder(s.border)

	if len(s.alignment) > 0 {
		for len(s.alignment) < len(headers) {
			s.alignment = append(s.alignment, tablewriter.ALIGN_LEFT)
		}

		t.SetColumnAlignment(s.alignment)
	}

	t.AppendBulk(rows)
	t.Render()

	r.log.WithFields(logrus.Fields{
		"columns": len(headers),
		"rows":    len(rows),
	}).Debug("rendered table")
}

// Compile-time interface compliance check
var _ Renderer = (*renderer)(nil)
