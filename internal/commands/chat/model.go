package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/austiecodes/promptrec/internal/client"
	"github.com/austiecodes/promptrec/internal/session"
)

// splitStep is how far ctrl+left/right move the pane divider, in percent.
const splitStep = 5.0

func initialModel(ctx context.Context, sess *session.Session, suggester Suggester, chat client.ChatClient, recorder Recorder, logger *log.Logger) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = log.Default()
	}

	input := textinput.New()
	input.Placeholder = "Ask a DevOps question..."
	input.CharLimit = 2000
	input.Width = 60
	input.Focus()

	m := Model{
		Session:    sess,
		Suggester:  suggester,
		Chat:       chat,
		Recorder:   recorder,
		Logger:     logger.WithPrefix("chat"),
		Input:      input,
		Transcript: viewport.New(60, 20),
		Focus:      FocusInput,
		ctx:        ctx,
	}
	m.refreshTranscript()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Quitting = true
			return m, tea.Quit

		case "esc":
			if m.Focus == FocusSuggestions {
				return m, m.focusInput()
			}
			m.Quitting = true
			return m, tea.Quit

		case "tab":
			if m.Focus == FocusInput && len(m.Session.Suggestions()) > 0 {
				m.Focus = FocusSuggestions
				m.Input.Blur()
				return m, nil
			}
			return m, m.focusInput()

		case "ctrl+s":
			m.ShowStats = !m.ShowStats
			return m, nil

		case "ctrl+left":
			m.Session.SetSplitRatio(m.Session.SplitRatio() - splitStep)
			m.layout()
			return m, nil

		case "ctrl+right":
			m.Session.SetSplitRatio(m.Session.SplitRatio() + splitStep)
			m.layout()
			return m, nil
		}

	case SuggestionsMsg:
		return m.handleSuggestions(msg)

	case ChatReplyMsg:
		return m.handleChatReply(msg)
	}

	switch m.Focus {
	case FocusInput:
		return m.updateInput(msg)
	case FocusSuggestions:
		return m.updateSuggestions(msg)
	}

	return m, nil
}

func (m Model) View() string {
	return m.renderView()
}

func (m *Model) focusInput() tea.Cmd {
	m.Focus = FocusInput
	return m.Input.Focus()
}

// layout resizes the panes for the current window and split ratio.
func (m *Model) layout() {
	if m.Width == 0 {
		return
	}
	chatWidth, _ := paneWidths(m.Width, m.Session.SplitRatio())
	m.Input.Width = max(chatWidth-8, 10)
	m.Transcript.Width = max(chatWidth-4, 10)
	m.Transcript.Height = max(m.Height-10, 3)
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	m.Transcript.SetContent(renderTranscript(m.Session.Transcript(), m.Session.PendingChats(), m.Transcript.Width))
	m.Transcript.GotoBottom()
}
