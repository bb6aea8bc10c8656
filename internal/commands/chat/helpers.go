package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/austiecodes/promptrec/internal/client"
	"github.com/austiecodes/promptrec/internal/commands/ui"
	"github.com/austiecodes/promptrec/internal/session"
	"github.com/austiecodes/promptrec/internal/store"
	"github.com/austiecodes/promptrec/internal/types"
)

func fetchSuggestions(ctx context.Context, suggester Suggester, req session.SuggestionRequest) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		suggestions, err := suggester.Suggest(ctx, req.Query, req.Config)
		return SuggestionsMsg{
			Result:  session.SuggestionResult{Seq: req.Seq, Suggestions: suggestions, Err: err},
			Query:   req.Query,
			Latency: time.Since(start),
		}
	}
}

func sendChat(ctx context.Context, chat client.ChatClient, req session.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		reply, err := chat.Chat(ctx, req.Message)
		return ChatReplyMsg{
			Result:  session.ChatResult{ID: req.ID, Reply: reply, Err: err},
			Message: req.Message,
			Latency: time.Since(start),
		}
	}
}

// record writes rec off the event loop. Failures are logged only.
func (m *Model) record(rec store.RequestRecord) tea.Cmd {
	if m.Recorder == nil {
		return nil
	}
	recorder, logger := m.Recorder, m.Logger
	return func() tea.Msg {
		if err := recorder.Record(&rec); err != nil {
			logger.Warn("failed to record request", "kind", rec.Kind, "err", err)
		}
		return nil
	}
}

// paneWidths splits total columns between the chat and suggestion panes.
func paneWidths(total int, ratio float64) (int, int) {
	chat := int(float64(total) * ratio / 100)
	return chat, total - chat
}

func renderTranscript(messages []types.ChatMessage, pending int, width int) string {
	if len(messages) == 0 && pending == 0 {
		return ui.HelpStyle.Render("Start typing to get prompt suggestions.")
	}

	wrap := lipgloss.NewStyle().Width(max(width, 10))
	var s strings.Builder
	for i, msg := range messages {
		if i > 0 {
			s.WriteString("\n\n")
		}
		if msg.Sender == types.SenderBot {
			s.WriteString(ui.BotStyle.Render("Assistant"))
		} else {
			s.WriteString(ui.UserStyle.Render("You"))
		}
		s.WriteString("\n")
		s.WriteString(wrap.Render(ui.RenderMessage(msg.Text)))
	}

	if pending > 0 {
		s.WriteString("\n\n")
		s.WriteString(ui.SubtitleStyle.Render("Assistant is typing..."))
	}
	return s.String()
}

func renderSuggestions(suggestions []types.WeightedSuggestion, selected int, focused, showStats, pending bool) string {
	var s strings.Builder
	s.WriteString(ui.InputLabelStyle.Render("Suggestions"))
	s.WriteString("\n\n")

	if pending {
		s.WriteString(ui.SubtitleStyle.Render("Fetching suggestions..."))
		s.WriteString("\n")
	}

	if len(suggestions) == 0 {
		if !pending {
			s.WriteString(ui.HelpStyle.Render("No suggestions yet. Keep typing..."))
		}
		return s.String()
	}

	for i, sg := range suggestions {
		line := fmt.Sprintf("%d. [%s] %s", i+1, ui.FormatNumber(sg.WeightedScore), sg.Prompt)
		if i == selected && focused {
			s.WriteString(ui.SelectedStyle.Render("› " + line))
		} else {
			s.WriteString("  " + line)
		}
		s.WriteString("\n")
	}

	if showStats && selected < len(suggestions) {
		s.WriteString("\n")
		s.WriteString(ui.ContributionTable(suggestions[selected]))
	}
	return s.String()
}
