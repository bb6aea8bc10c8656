package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/austiecodes/promptrec/internal/commands/ui"
	"github.com/austiecodes/promptrec/internal/session"
	"github.com/austiecodes/promptrec/internal/store"
)

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && keyMsg.Type == tea.KeyEnter {
		return m.submit()
	}
	if isKey && keyMsg.Paste {
		m.Input.SetValue(string(keyMsg.Runes))
		m.Input.CursorEnd()
		return *m, m.inputChanged(m.Input.Value(), true)
	}

	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	after := m.Input.Value()
	if after == before {
		return *m, cmd
	}
	return *m, tea.Batch(cmd, m.inputChanged(after, false))
}

// inputChanged feeds the new compose text to the session and starts a
// retrieval when the trigger fires.
func (m *Model) inputChanged(text string, paste bool) tea.Cmd {
	var req *session.SuggestionRequest
	var ok bool
	if paste {
		req, ok = m.Session.Paste(text)
	} else {
		req, ok = m.Session.SetInput(text)
	}
	if !ok {
		return nil
	}
	m.Logger.Debug("fetching suggestions", "seq", req.Seq, "query", req.Query)
	return fetchSuggestions(m.ctx, m.Suggester, *req)
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	req, ok := m.Session.Submit()
	if !ok {
		return *m, nil
	}
	m.Input.Reset()
	m.Selected = 0
	m.Err = nil
	m.refreshTranscript()
	return *m, sendChat(m.ctx, m.Chat, *req)
}

func (m *Model) updateSuggestions(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		count := len(m.Session.Suggestions())
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
			}
		case "down", "j":
			if m.Selected < count-1 {
				m.Selected++
			}
		case "enter":
			if err := m.Session.PickSuggestion(m.Selected); err != nil {
				m.Err = err
				return *m, nil
			}
			m.Input.Reset()
			m.Selected = 0
			m.Err = nil
			m.refreshTranscript()
			return *m, m.focusInput()
		}
	}
	return *m, nil
}

func (m *Model) handleSuggestions(msg SuggestionsMsg) (tea.Model, tea.Cmd) {
	err := m.Session.ResolveSuggestions(msg.Result)
	rec := store.RequestRecord{Kind: store.KindSuggest, Query: msg.Query, Latency: msg.Latency}

	switch {
	case session.IsStale(err):
		m.Logger.Debug("dropping stale suggestions", "seq", msg.Result.Seq, "query", msg.Query)
		rec.Status = store.StatusStale
	case err != nil:
		// the list stays as it was and nothing is shown inline
		m.Logger.Warn("suggestion request failed", "query", msg.Query, "err", err)
		rec.Status = store.StatusFailed
		rec.Error = err.Error()
	default:
		m.Err = nil
		m.Selected = 0
		rec.Status = store.StatusOK
		rec.ResultCount = len(msg.Result.Suggestions)
	}

	if m.Focus == FocusSuggestions && len(m.Session.Suggestions()) == 0 {
		return *m, tea.Batch(m.focusInput(), m.record(rec))
	}
	return *m, m.record(rec)
}

func (m *Model) handleChatReply(msg ChatReplyMsg) (tea.Model, tea.Cmd) {
	err := m.Session.ResolveChat(msg.Result)
	rec := store.RequestRecord{Kind: store.KindChat, Query: msg.Message, Latency: msg.Latency}

	if err != nil {
		m.Logger.Warn("chat request failed", "err", err)
		rec.Status = store.StatusFailed
		rec.Error = err.Error()
	} else {
		rec.Status = store.StatusOK
		rec.ResultCount = 1
	}

	m.refreshTranscript()
	return *m, m.record(rec)
}

func (m *Model) renderView() string {
	if m.Quitting {
		return "Goodbye!\n"
	}

	width := m.Width
	if width == 0 {
		width = 120
	}
	chatWidth, sideWidth := paneWidths(width, m.Session.SplitRatio())

	chatStyle, sideStyle := ui.FocusedPaneStyle, ui.PaneStyle
	if m.Focus == FocusSuggestions {
		chatStyle, sideStyle = ui.PaneStyle, ui.FocusedPaneStyle
	}

	chatPane := chatStyle.Width(max(chatWidth-2, 10)).Render(
		m.Transcript.View() + "\n\n" + m.Input.View())
	sidePane := sideStyle.Width(max(sideWidth-2, 10)).Render(
		renderSuggestions(m.Session.Suggestions(), m.Selected, m.Focus == FocusSuggestions,
			m.ShowStats, m.Session.SuggestionsPending()))

	var s strings.Builder
	s.WriteString(ui.TitleStyle.Render("Prompt Suggestions Chat"))
	s.WriteString("\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chatPane, sidePane))
	s.WriteString("\n")
	s.WriteString(ui.SubtitleStyle.Render(fmt.Sprintf("API Calls Made: %d · %s", m.Session.APICalls(), m.Session.State())))

	if m.Err != nil {
		s.WriteString("\n")
		s.WriteString(ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
	}

	s.WriteString("\n")
	s.WriteString(ui.HelpStyle.Render("Enter send/pick · Tab switch pane · ↑/↓ select · Ctrl+S stats · Ctrl+←/→ resize · Esc quit"))

	return s.String()
}
