package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"

	"github.com/austiecodes/promptrec/internal/client"
	"github.com/austiecodes/promptrec/internal/session"
	"github.com/austiecodes/promptrec/internal/store"
	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/types"
)

// Focus is the pane receiving key input
type Focus int

const (
	FocusInput Focus = iota
	FocusSuggestions
)

// Suggester ranks suggestions for a query.
type Suggester interface {
	Suggest(ctx context.Context, query string, cfg suggest.Configuration) ([]types.WeightedSuggestion, error)
}

// Recorder persists request outcomes.
type Recorder interface {
	Record(rec *store.RequestRecord) error
}

// Model is the Bubble Tea model for the chat command
type Model struct {
	Session    *session.Session
	Suggester  Suggester
	Chat       client.ChatClient
	Recorder   Recorder
	Logger     *log.Logger
	Input      textinput.Model
	Transcript viewport.Model
	Focus      Focus
	Selected   int
	ShowStats  bool
	Err        error
	Quitting   bool
	Width      int
	Height     int

	ctx context.Context
}

// SuggestionsMsg is sent when a retrieval finishes
type SuggestionsMsg struct {
	Result  session.SuggestionResult
	Query   string
	Latency time.Duration
}

// ChatReplyMsg is sent when a chat call finishes
type ChatReplyMsg struct {
	Result  session.ChatResult
	Message string
	Latency time.Duration
}
