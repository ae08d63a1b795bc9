package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"planline/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		listWidth := msg.Width * 2 / 5
		if listWidth < 30 {
			listWidth = 30
		}
		detailWidth := msg.Width - listWidth - 8
		if detailWidth < 30 {
			detailWidth = 30
		}
		height := msg.Height - 8
		if height < 6 {
			height = 6
		}
		m.taskList.SetSize(listWidth, height)
		m.detail.Width = detailWidth
		m.detail.Height = height
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				m.tagFilter.Blur()
				m.applyTagFilter(m.tagFilter.Value())
				return m, nil
			case "esc":
				m.filtering = false
				m.tagFilter.Blur()
				m.tagFilter.SetValue("")
				return m, nil
			}
			var cmd tea.Cmd
			m.tagFilter, cmd = m.tagFilter.Update(msg)
			return m, cmd
		}

		switch {
		case msg.String() == "/":
			m.filtering = true
			m.tagFilter.SetValue(m.activeTag)
			return m, m.tagFilter.Focus()
		case msg.String() == "esc":
			if m.activeTag != "" {
				m.tagFilter.SetValue("")
				m.applyTagFilter("")
			}
			return m, nil
		case msg.String() == "?":
			m.helpModel.ShowAll = !m.helpModel.ShowAll
			return m, nil
		case msg.String() == "q" || msg.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	cmds = append(cmds, cmd)
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	m.refreshDetail()
	return m, tea.Batch(cmds...)
}

func (m *Model) refreshDetail() {
	it, ok := m.selected()
	if !ok {
		m.detail.SetContent("No tasks match the current filter.")
		return
	}
	content := views.RenderRecord(it.rec, it.line)
	if it.rec.Notes != "" {
		content += "\n" + views.RenderMarkdown(it.rec.Notes)
	}
	m.detail.SetContent(content)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	status := m.status
	if m.filtering {
		status = "filter: " + m.tagFilter.View()
	}

	data := views.BrowserData{
		Header:     "planline",
		ListPane:   m.taskList.View(),
		DetailPane: m.detail.View(),
		StatusLine: status,
		Footer:     m.helpModel.View(m.keys),
	}
	return views.RenderBrowser(data)
}

// Run starts the browser and blocks until the user quits.
func Run(m Model) error {
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
