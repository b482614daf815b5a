// Package pacetable renders a pace.Table as a two-row table: labels on top, paces below.
package pacetable

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"clubsite/internal/domain/pace"
)

var htmlTable = template.Must(template.New("paces").Parse(
	`<table class="paces"><tr>{{range .}}<th>{{.Label}}</th>{{end}}</tr><tr>{{range .}}<td>{{.Pace}}</td>{{end}}</tr></table>`,
))

// HTML renders t as an escaped <table> fragment.
// PRE: none
// POST: Column order matches entry order; an empty table yields two empty rows
func HTML(t pace.Table) template.HTML {
	var buf bytes.Buffer
	if err := htmlTable.Execute(&buf, t); err != nil {
		slog.Error("pacetable_render_failed", "error", err.Error())
		return ""
	}
	return template.HTML(buf.String())
}

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
)

// Terminal renders t for a terminal with box-drawing borders.
func Terminal(t pace.Table) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(t.Labels()...).
		Row(t.Paces()...)
	return tbl.Render()
}
