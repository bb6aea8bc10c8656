package session

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/types"
)

// State summarizes what the session is waiting for.
type State int

const (
	StateIdle State = iota
	StateAwaitingSuggestions
	StateAwaitingChatReply
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSuggestions:
		return "awaiting suggestions"
	case StateAwaitingChatReply:
		return "awaiting reply"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	DefaultSplitRatio = 50.0
	minSplitRatio     = 10.0
	maxSplitRatio     = 90.0
)

// SuggestionRequest is a retrieval the caller should run. Config is a
// snapshot taken at issuance; later settings changes do not affect it.
type SuggestionRequest struct {
	Seq    uint64
	Query  string
	Config suggest.Configuration
}

// SuggestionResult is the outcome of running a SuggestionRequest.
type SuggestionResult struct {
	Seq         uint64
	Suggestions []types.WeightedSuggestion
	Err         error
}

// ChatRequest is a chat call the caller should run. ID is the ID of the
// user transcript entry it answers.
type ChatRequest struct {
	ID      string
	Message string
}

// ChatResult is the outcome of running a ChatRequest.
type ChatResult struct {
	ID    string
	Reply string
	Err   error
}

// Session owns the transcript and the current suggestion list and turns
// user actions into requests. It is not safe for concurrent use; callers
// drive it from a single event loop and run the returned requests
// elsewhere, feeding the results back through Resolve*.
type Session struct {
	config      suggest.Configuration
	trigger     suggest.TriggerState
	compose     string
	transcript  []types.ChatMessage
	suggestions []types.WeightedSuggestion

	issuedSeq  uint64 // last sequence handed out
	currentSeq uint64 // sequence whose result may still be shown; 0 if none
	pendingSeq bool
	pendingIDs map[string]struct{}

	apiCalls   int
	splitRatio float64
	newID      func() string
}

// New creates a session using cfg.
func New(cfg suggest.Configuration) *Session {
	return &Session{
		config:     cfg.Clone(),
		pendingIDs: make(map[string]struct{}),
		splitRatio: DefaultSplitRatio,
		newID:      func() string { return uuid.New().String() },
	}
}

// SetInput replaces the compose text and asks the trigger policy whether
// to fetch suggestions. When it fires the returned request must be run.
func (s *Session) SetInput(text string) (*SuggestionRequest, bool) {
	s.compose = text
	if !s.trigger.Observe(text) {
		return nil, false
	}

	s.issuedSeq++
	s.currentSeq = s.issuedSeq
	s.pendingSeq = true
	s.apiCalls++

	return &SuggestionRequest{
		Seq:    s.issuedSeq,
		Query:  text,
		Config: s.config.Clone(),
	}, true
}

// Paste replaces the compose text with pasted content. Only the final
// length is evaluated, so a paste triggers at most once.
func (s *Session) Paste(text string) (*SuggestionRequest, bool) {
	return s.SetInput(text)
}

// ResolveSuggestions applies a retrieval result. A result for a superseded
// request returns *StaleResponseError. A failed result returns its error.
// In both cases the current list is left as it was.
func (s *Session) ResolveSuggestions(res SuggestionResult) error {
	if res.Seq == 0 || res.Seq != s.currentSeq {
		return &StaleResponseError{Seq: res.Seq, Latest: s.issuedSeq}
	}
	s.pendingSeq = false
	if res.Err != nil {
		return res.Err
	}
	s.suggestions = res.Suggestions
	return nil
}

// Submit sends the current compose text as a chat message.
func (s *Session) Submit() (*ChatRequest, bool) {
	return s.SubmitMessage(s.compose)
}

// SubmitMessage appends text to the transcript as a user entry and returns
// the chat request for its reply. Blank messages are ignored.
func (s *Session) SubmitMessage(text string) (*ChatRequest, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	msg := types.ChatMessage{ID: s.newID(), Sender: types.SenderUser, Text: text}
	s.transcript = append(s.transcript, msg)
	s.pendingIDs[msg.ID] = struct{}{}
	s.clearComposeAndSuggestions()

	return &ChatRequest{ID: msg.ID, Message: text}, true
}

// PickSuggestion appends the suggestion at index i and its known response
// to the transcript. No chat request is produced.
func (s *Session) PickSuggestion(i int) error {
	if i < 0 || i >= len(s.suggestions) {
		return fmt.Errorf("suggestion %d out of range (have %d)", i, len(s.suggestions))
	}
	picked := s.suggestions[i]

	user := types.ChatMessage{ID: s.newID(), Sender: types.SenderUser, Text: picked.Prompt}
	bot := types.ChatMessage{ID: s.newID(), Sender: types.SenderBot, Text: picked.Response, ReplyTo: user.ID}
	s.transcript = append(s.transcript, user, bot)
	s.clearComposeAndSuggestions()
	return nil
}

// ResolveChat applies a chat result. On failure nothing is appended and
// the user entry stays without a reply.
func (s *Session) ResolveChat(res ChatResult) error {
	if _, ok := s.pendingIDs[res.ID]; !ok {
		return fmt.Errorf("no pending chat request %q", res.ID)
	}
	delete(s.pendingIDs, res.ID)
	if res.Err != nil {
		return res.Err
	}

	s.transcript = append(s.transcript, types.ChatMessage{
		ID:      s.newID(),
		Sender:  types.SenderBot,
		Text:    res.Reply,
		ReplyTo: res.ID,
	})
	return nil
}

// clearComposeAndSuggestions also supersedes any in-flight retrieval so a
// late result cannot repopulate the list that was just cleared.
func (s *Session) clearComposeAndSuggestions() {
	s.compose = ""
	s.suggestions = nil
	s.currentSeq = 0
	s.pendingSeq = false
}

// UpdateConfig validates and applies a settings change. Requests already
// issued keep the snapshot they were created with.
func (s *Session) UpdateConfig(u suggest.Update) error {
	next, err := s.config.Apply(u)
	if err != nil {
		return err
	}
	s.config = next
	return nil
}

// SetConfig replaces the configuration after validating it.
func (s *Session) SetConfig(cfg suggest.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.config = cfg.Clone()
	return nil
}

// Config returns a copy of the current configuration.
func (s *Session) Config() suggest.Configuration {
	return s.config.Clone()
}

// State reports a pending chat reply first, then a pending retrieval.
func (s *Session) State() State {
	switch {
	case len(s.pendingIDs) > 0:
		return StateAwaitingChatReply
	case s.pendingSeq:
		return StateAwaitingSuggestions
	}
	return StateIdle
}

// PendingChats returns the number of chat replies still outstanding.
func (s *Session) PendingChats() int {
	return len(s.pendingIDs)
}

// SuggestionsPending reports whether the latest retrieval is outstanding.
func (s *Session) SuggestionsPending() bool {
	return s.pendingSeq
}

// Transcript returns a copy of the transcript in append order.
func (s *Session) Transcript() []types.ChatMessage {
	return append([]types.ChatMessage(nil), s.transcript...)
}

// Suggestions returns the currently displayed suggestions.
func (s *Session) Suggestions() []types.WeightedSuggestion {
	return append([]types.WeightedSuggestion(nil), s.suggestions...)
}

// Input returns the compose text.
func (s *Session) Input() string {
	return s.compose
}

// APICalls returns how many retrievals this session has issued.
func (s *Session) APICalls() int {
	return s.apiCalls
}

// SplitRatio returns the chat pane width as a percentage.
func (s *Session) SplitRatio() float64 {
	return s.splitRatio
}

// SetSplitRatio sets the chat pane width. Values outside (10, 90) are
// ignored and false is returned.
func (s *Session) SetSplitRatio(ratio float64) bool {
	if ratio <= minSplitRatio || ratio >= maxSplitRatio {
		return false
	}
	s.splitRatio = ratio
	return true
}
