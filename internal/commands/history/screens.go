package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/austiecodes/promptrec/internal/commands/ui"
)

func (m *Model) updateRequestList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// let the list own keys while the filter prompt is open
		if m.List.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if len(m.Records) == 0 {
				return *m, nil
			}
			selected, ok := m.List.SelectedItem().(RequestListItem)
			if !ok {
				return *m, nil
			}
			m.Selected = &selected.Record
			m.Screen = ScreenRequestDetail
			return *m, nil

		case "r":
			m.StatusMsg = "Loading requests..."
			return *m, loadRecords(m.Source, m.Limit)

		case "c":
			if len(m.Records) == 0 {
				return *m, nil
			}
			m.Screen = ScreenConfirmClear
			return *m, nil
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return *m, cmd
}

func (m *Model) updateRequestDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	return *m, nil
}

func (m *Model) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			m.StatusMsg = "Clearing..."
			return *m, clearRecords(m.Source)

		case "n", "N":
			m.Screen = ScreenRequestList
			return *m, nil
		}
	}

	return *m, nil
}

func (m *Model) renderView() string {
	if m.Quitting {
		return "Goodbye!\n"
	}

	var s strings.Builder

	switch m.Screen {
	case ScreenRequestList:
		if len(m.Records) == 0 {
			s.WriteString(ui.TitleStyle.Render("Request History"))
			s.WriteString("\n\n")
			s.WriteString(ui.SubtitleStyle.Render("No requests recorded yet."))
			s.WriteString("\n\n")
			s.WriteString(ui.HelpStyle.Render("Press 'r' to reload, 'q' to quit"))
		} else {
			s.WriteString(m.List.View())
		}

	case ScreenRequestDetail:
		if m.Selected != nil {
			s.WriteString(ui.TitleStyle.Render("Request Detail"))
			s.WriteString("\n\n")

			s.WriteString(ui.DetailLabelStyle.Render("Query:"))
			s.WriteString("\n")
			s.WriteString(ui.DetailValueStyle.Render(m.Selected.Query))
			s.WriteString("\n\n")

			writeField(&s, "ID:", m.Selected.ID)
			writeField(&s, "Kind:", string(m.Selected.Kind))
			writeField(&s, "Status:", string(m.Selected.Status))
			writeField(&s, "Results:", fmt.Sprintf("%d", m.Selected.ResultCount))
			writeField(&s, "Latency:", m.Selected.Latency.String())
			writeField(&s, "Created:", m.Selected.CreatedAt.Format("2006-01-02 15:04:05"))

			if m.Selected.Error != "" {
				s.WriteString(ui.DetailLabelStyle.Render("Error:"))
				s.WriteString("\n")
				s.WriteString(ui.ErrorStyle.Render(m.Selected.Error))
				s.WriteString("\n\n")
			}

			s.WriteString(ui.HelpStyle.Render("Press Esc to go back"))
		}

	case ScreenConfirmClear:
		s.WriteString(ui.WarningStyle.Render("Confirm Clear"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Delete all %d recorded requests?\n\n", len(m.Records)))
		s.WriteString(ui.HelpStyle.Render("Press 'y' to confirm, 'n' or Esc to cancel"))
	}

	if m.StatusMsg != "" {
		s.WriteString("\n\n")
		s.WriteString(ui.SubtitleStyle.Render(m.StatusMsg))
	}

	if m.Err != nil {
		s.WriteString("\n\n")
		s.WriteString(ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
	}

	return s.String()
}

func writeField(s *strings.Builder, label, value string) {
	s.WriteString(ui.DetailLabelStyle.Render(label))
	s.WriteString(" ")
	s.WriteString(ui.DetailValueStyle.Render(value))
	s.WriteString("\n\n")
}
