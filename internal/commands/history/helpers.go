package history

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/austiecodes/promptrec/internal/store"
)

func createRequestList(records []store.RequestRecord, width, height int) list.Model {
	items := make([]list.Item, len(records))
	for i, rec := range records {
		items[i] = RequestListItem{Record: rec}
	}

	delegate := list.NewDefaultDelegate()
	w := min(width-4, 100)
	h := min(height-6, 24)
	if w < 40 {
		w = 40
	}
	if h < 10 {
		h = 10
	}

	l := list.New(items, delegate, w, h)
	l.Title = "Request History"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
			key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		}
	}
	return l
}

func loadRecords(source RequestSource, limit int) tea.Cmd {
	return func() tea.Msg {
		records, err := source.Recent(limit)
		return RecordsLoadedMsg{Records: records, Err: err}
	}
}

func clearRecords(source RequestSource) tea.Cmd {
	return func() tea.Msg {
		return RecordsClearedMsg{Err: source.Clear()}
	}
}
