package update

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	domainmodel "planline/internal/model"
)

func browserRecords() []domainmodel.Record {
	return []domainmodel.Record{
		{
			ID:            "inbox::1",
			Status:        " ",
			Title:         "Buy milk",
			OriginalTitle: "Buy milk",
			Tags:          []string{"#errand"},
			Scheduled:     "2024-03-01T14:00",
			Priority:      domainmodel.PriorityHigh,
			Path:          "inbox.md",
		},
		{
			ID:            "inbox::2",
			Status:        " ",
			Title:         "Water plants",
			OriginalTitle: "Water plants",
			Tags:          []string{"#garden"},
			Priority:      domainmodel.PriorityDefault,
			Path:          "inbox.md",
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(browserRecords(), domainmodel.DialectBracket)
	if len(m.all) != 2 {
		t.Fatalf("expected 2 items, got %d", len(m.all))
	}
	if m.status != "2 tasks" {
		t.Fatalf("unexpected status: %q", m.status)
	}
	if m.filtering {
		t.Fatal("filter must start inactive")
	}
	if m.all[0].line == "" || !strings.Contains(m.all[0].line, "- [ ]") {
		t.Fatalf("serialized line not precomputed: %q", m.all[0].line)
	}
}

func TestApplyTagFilter(t *testing.T) {
	m := NewModel(browserRecords(), domainmodel.DialectBracket)

	m.applyTagFilter("#garden")
	if got := len(m.taskList.Items()); got != 1 {
		t.Fatalf("expected 1 item after filter, got %d", got)
	}
	if m.status != "1 tasks tagged #garden" {
		t.Fatalf("unexpected status: %q", m.status)
	}

	// The leading hash is optional.
	m.applyTagFilter("errand")
	if got := len(m.taskList.Items()); got != 1 {
		t.Fatalf("expected 1 item for bare tag, got %d", got)
	}
	it, ok := m.selected()
	if !ok || it.rec.ID != "inbox::1" {
		t.Fatalf("unexpected selection after filter: %+v", it.rec)
	}

	m.applyTagFilter("")
	if got := len(m.taskList.Items()); got != 2 {
		t.Fatalf("expected full list after clearing, got %d", got)
	}
}

func TestUpdateKeyFilterFlow(t *testing.T) {
	m := NewModel(browserRecords(), domainmodel.DialectBracket)

	updated, _ := m.Update(keyMsg("/"))
	next := updated.(Model)
	if !next.filtering {
		t.Fatal("expected filter input active after /")
	}

	for _, r := range "#garden" {
		updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		next = updated.(Model)
	}
	updated, _ = next.Update(keyMsg("enter"))
	next = updated.(Model)

	if next.filtering {
		t.Fatal("expected filter input closed after enter")
	}
	if next.activeTag != "#garden" {
		t.Fatalf("active tag = %q", next.activeTag)
	}
	if got := len(next.taskList.Items()); got != 1 {
		t.Fatalf("expected 1 item after filter, got %d", got)
	}

	updated, _ = next.Update(keyMsg("esc"))
	next = updated.(Model)
	if next.activeTag != "" {
		t.Fatalf("esc must clear the filter, tag = %q", next.activeTag)
	}
	if got := len(next.taskList.Items()); got != 2 {
		t.Fatalf("expected full list after esc, got %d", got)
	}
}

func TestUpdateKeyFilterCancel(t *testing.T) {
	m := NewModel(browserRecords(), domainmodel.DialectBracket)

	updated, _ := m.Update(keyMsg("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyMsg("x"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("esc"))
	next = updated.(Model)

	if next.filtering {
		t.Fatal("expected filter input closed after esc")
	}
	if next.tagFilter.Value() != "" {
		t.Fatalf("cancelled input must reset, got %q", next.tagFilter.Value())
	}
	if got := len(next.taskList.Items()); got != 2 {
		t.Fatalf("cancel must not filter, got %d items", got)
	}
}

func TestUpdateKeyQuit(t *testing.T) {
	m := NewModel(browserRecords(), domainmodel.DialectBracket)
	updated, cmd := m.Update(keyMsg("q"))
	next := updated.(Model)
	if !next.quitting {
		t.Fatal("expected quitting after q")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.View() != "" {
		t.Fatal("quitting view must be empty")
	}
}

func TestUpdateWindowSize(t *testing.T) {
	m := NewModel(browserRecords(), domainmodel.DialectBracket)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	next := updated.(Model)
	if next.detail.Width <= 0 || next.detail.Height <= 0 {
		t.Fatalf("detail pane not sized: %dx%d", next.detail.Width, next.detail.Height)
	}

	// Tiny terminals clamp to the minimums instead of going negative.
	updated, _ = next.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	next = updated.(Model)
	if next.detail.Width < 30 || next.detail.Height < 6 {
		t.Fatalf("small window not clamped: %dx%d", next.detail.Width, next.detail.Height)
	}
}

func TestTaskItemStrings(t *testing.T) {
	recs := browserRecords()
	it := taskItem{rec: recs[0]}
	if it.Title() != "Buy milk" {
		t.Fatalf("Title() = %q", it.Title())
	}
	if !strings.Contains(it.Description(), "2024-03-01T14:00") {
		t.Fatalf("Description() = %q", it.Description())
	}
	if !strings.Contains(it.FilterValue(), "#errand") {
		t.Fatalf("FilterValue() = %q", it.FilterValue())
	}

	empty := taskItem{rec: domainmodel.Record{Path: "inbox.md"}}
	if empty.Title() != "(untitled)" {
		t.Fatalf("empty Title() = %q", empty.Title())
	}
	if empty.Description() != "inbox.md" {
		t.Fatalf("empty Description() = %q", empty.Description())
	}
}
