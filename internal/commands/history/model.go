package history

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func initialModel(source RequestSource, limit int) Model {
	// Create an empty list initially, will be populated after load
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 60, 14)
	l.Title = "Request History"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return Model{
		Screen:    ScreenRequestList,
		List:      l,
		Source:    source,
		Limit:     limit,
		StatusMsg: "Loading requests...",
	}
}

func (m Model) Init() tea.Cmd {
	return loadRecords(m.Source, m.Limit)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.List.SetSize(min(msg.Width-4, 100), min(msg.Height-6, 24))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.Screen == ScreenRequestList {
				m.Quitting = true
				return m, tea.Quit
			}
			m.backToList()
			return m, nil

		case "esc":
			if m.Screen != ScreenRequestList {
				m.backToList()
				return m, nil
			}
		}

	case RecordsLoadedMsg:
		m.StatusMsg = ""
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Records = msg.Records
		m.List = createRequestList(m.Records, m.Width, m.Height)
		return m, nil

	case RecordsClearedMsg:
		m.StatusMsg = ""
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.backToList()
		m.StatusMsg = "History cleared!"
		return m, loadRecords(m.Source, m.Limit)
	}

	switch m.Screen {
	case ScreenRequestList:
		return m.updateRequestList(msg)
	case ScreenRequestDetail:
		return m.updateRequestDetail(msg)
	case ScreenConfirmClear:
		return m.updateConfirmClear(msg)
	}

	return m, nil
}

func (m Model) View() string {
	return m.renderView()
}

func (m *Model) backToList() {
	m.Screen = ScreenRequestList
	m.Selected = nil
	m.Err = nil
	m.StatusMsg = ""
}
