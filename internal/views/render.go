// Package views renders browser screens with lipgloss and glamour.
package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"planline/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	lineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// BrowserData is the assembled content of the browser screen.
type BrowserData struct {
	Header     string
	ListPane   string
	DetailPane string
	StatusLine string
	IsError    bool
	Footer     string
}

// RenderBrowser lays out the two-pane browser screen.
func RenderBrowser(data BrowserData) string {
	left := panelStyle.Width(48).Render(data.ListPane)
	right := panelStyle.Width(64).Render(data.DetailPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if data.IsError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderRecord formats one record's structured fields for the detail pane.
// The serialized line shows what the task would look like written back in
// its own dialect.
func RenderRecord(rec model.Record, serialized string) string {
	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}

	row("title", rec.Title)
	row("status", fmt.Sprintf("[%s]", rec.Status))
	row("scheduled", rec.Scheduled)
	if rec.Length != nil {
		row("length", fmt.Sprintf("%dh %dm", rec.Length.Hour, rec.Length.Minute))
	}
	row("due", rec.Due)
	row("start", rec.Start)
	row("created", rec.Created)
	row("completion", rec.Completion)
	row("reminder", rec.Reminder)
	if rec.Priority != model.PriorityDefault {
		row("priority", rec.Priority.String())
	}
	row("repeat", rec.Repeat)
	row("tags", strings.Join(rec.Tags, " "))
	row("block ref", rec.BlockReference)
	if len(rec.Extra) > 0 {
		keys := make([]string, 0, len(rec.Extra))
		for key := range rec.Extra {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, key := range keys {
			pairs = append(pairs, key+"="+rec.Extra[key])
		}
		row("extra", strings.Join(pairs, " "))
	}
	row("heading", rec.Heading)
	row("source", fmt.Sprintf("%s:%d", rec.Path, rec.Position.StartLine+1))

	b.WriteByte('\n')
	b.WriteString(lineStyle.Render(serialized))
	b.WriteByte('\n')
	return b.String()
}

// RenderMarkdown renders task notes as markdown; on failure it falls back to
// the raw text.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
