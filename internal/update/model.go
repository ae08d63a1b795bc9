// Package update holds the bubbletea program driving the read-only task
// browser.
package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	domainmodel "planline/internal/model"
	"planline/internal/taskline"
)

// taskItem adapts one parsed record for the list component. The serialized
// line is precomputed so selection changes never reserialize.
type taskItem struct {
	rec  domainmodel.Record
	line string
}

func (t taskItem) Title() string {
	title := strings.TrimSpace(t.rec.Title)
	if title == "" {
		title = "(untitled)"
	}
	return title
}

func (t taskItem) Description() string {
	parts := make([]string, 0, 3)
	if t.rec.Scheduled != "" {
		parts = append(parts, t.rec.Scheduled)
	}
	if t.rec.Due != "" {
		parts = append(parts, "due "+t.rec.Due)
	}
	if len(t.rec.Tags) > 0 {
		parts = append(parts, strings.Join(t.rec.Tags, " "))
	}
	if len(parts) == 0 {
		return t.rec.Path
	}
	return strings.Join(parts, "  ")
}

func (t taskItem) FilterValue() string {
	return t.rec.Title + " " + strings.Join(t.rec.Tags, " ")
}

type keyMap struct {
	Filter key.Binding
	Clear  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter by tag")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Filter, k.Clear}, {k.Help, k.Quit}}
}

// Model is the browser state.
type Model struct {
	all       []taskItem
	taskList  list.Model
	detail    viewport.Model
	tagFilter textinput.Model
	helpModel help.Model
	keys      keyMap

	filtering bool
	activeTag string
	status    string
	quitting  bool
}

// NewModel builds the browser over a set of parsed records. Each record's
// line is reserialized in the dialect detected from its own source text.
func NewModel(records []domainmodel.Record, fallback domainmodel.Dialect) Model {
	items := make([]taskItem, 0, len(records))
	listItems := make([]list.Item, 0, len(records))
	for _, rec := range records {
		it := taskItem{rec: rec, line: taskline.Serialize(rec, fallback)}
		items = append(items, it)
		listItems = append(listItems, it)
	}

	taskList := list.New(listItems, list.NewDefaultDelegate(), 44, 20)
	taskList.Title = "Tasks"
	taskList.SetShowHelp(false)
	taskList.SetFilteringEnabled(false)

	detail := viewport.New(60, 20)

	tagFilter := textinput.New()
	tagFilter.Placeholder = "#tag"
	tagFilter.CharLimit = 64

	m := Model{
		all:       items,
		taskList:  taskList,
		detail:    detail,
		tagFilter: tagFilter,
		helpModel: help.New(),
		keys:      defaultKeyMap(),
		status:    fmt.Sprintf("%d tasks", len(items)),
	}
	m.refreshDetail()
	return m
}

func (m *Model) selected() (taskItem, bool) {
	it, ok := m.taskList.SelectedItem().(taskItem)
	return it, ok
}

func (m *Model) applyTagFilter(tag string) {
	m.activeTag = strings.TrimSpace(tag)
	items := make([]list.Item, 0, len(m.all))
	for _, it := range m.all {
		if m.activeTag == "" || hasTag(it.rec.Tags, m.activeTag) {
			items = append(items, it)
		}
	}
	m.taskList.SetItems(items)
	m.taskList.ResetSelected()
	if m.activeTag == "" {
		m.status = fmt.Sprintf("%d tasks", len(items))
	} else {
		m.status = fmt.Sprintf("%d tasks tagged %s", len(items), m.activeTag)
	}
	m.refreshDetail()
}

func hasTag(tags []string, want string) bool {
	if !strings.HasPrefix(want, "#") {
		want = "#" + want
	}
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
