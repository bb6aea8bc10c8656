package session

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/types"
)

func newTestSession() *Session {
	s := New(suggest.DefaultConfiguration())
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func suggestion(prompt, response string, score float64) types.WeightedSuggestion {
	return types.WeightedSuggestion{
		Candidate:     types.Candidate{Prompt: prompt, Response: response},
		WeightedScore: score,
	}
}

func entries(msgs []types.ChatMessage) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = string(m.Sender) + ":" + m.Text
	}
	return out
}

func TestSession_InputTriggersOnBoundaries(t *testing.T) {
	s := newTestSession()

	var issued []uint64
	text := "deploy helm chart"
	for i := 1; i <= len(text); i++ {
		if req, ok := s.SetInput(text[:i]); ok {
			issued = append(issued, req.Seq)
		}
	}

	assert.Equal(t, []uint64{1, 2, 3}, issued)
	assert.Equal(t, 3, s.APICalls())
	assert.Equal(t, text, s.Input())
	assert.Equal(t, StateAwaitingSuggestions, s.State())
}

func TestSession_PasteTriggersOnce(t *testing.T) {
	s := newTestSession()

	req, ok := s.Paste(strings.Repeat("k", 25))
	require.True(t, ok)
	assert.Equal(t, uint64(1), req.Seq)
	assert.Equal(t, 1, s.APICalls())

	_, ok = s.Paste(strings.Repeat("k", 27))
	assert.False(t, ok)
}

func TestSession_ResolveSuggestions(t *testing.T) {
	s := newTestSession()
	req, ok := s.SetInput("kubec")
	require.True(t, ok)

	list := []types.WeightedSuggestion{suggestion("kubectl get pods", "<p>lists pods</p>", 15)}
	require.NoError(t, s.ResolveSuggestions(SuggestionResult{Seq: req.Seq, Suggestions: list}))

	assert.Equal(t, list, s.Suggestions())
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_StaleSuggestionsDiscarded(t *testing.T) {
	s := newTestSession()
	first, _ := s.SetInput("kubec")
	second, _ := s.SetInput("kubectl ge")
	require.NotNil(t, first)
	require.NotNil(t, second)

	newer := []types.WeightedSuggestion{suggestion("kubectl get pods", "pods", 10)}
	older := []types.WeightedSuggestion{suggestion("kubectl", "cli", 5)}

	// newer lands first, older arrives late
	require.NoError(t, s.ResolveSuggestions(SuggestionResult{Seq: second.Seq, Suggestions: newer}))
	err := s.ResolveSuggestions(SuggestionResult{Seq: first.Seq, Suggestions: older})

	assert.True(t, IsStale(err))
	assert.Equal(t, newer, s.Suggestions())
}

func TestSession_StaleBeforeLatest(t *testing.T) {
	s := newTestSession()
	first, _ := s.SetInput("kubec")
	second, _ := s.SetInput("kubectl ge")

	err := s.ResolveSuggestions(SuggestionResult{Seq: first.Seq, Suggestions: []types.WeightedSuggestion{suggestion("old", "old", 1)}})
	var stale *StaleResponseError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, second.Seq, stale.Latest)

	assert.Empty(t, s.Suggestions())
	assert.Equal(t, StateAwaitingSuggestions, s.State())
}

func TestSession_FailedRetrievalKeepsList(t *testing.T) {
	s := newTestSession()
	first, _ := s.SetInput("kubec")
	list := []types.WeightedSuggestion{suggestion("kubectl get pods", "pods", 10)}
	require.NoError(t, s.ResolveSuggestions(SuggestionResult{Seq: first.Seq, Suggestions: list}))

	second, _ := s.SetInput("kubectl ge")
	boom := errors.New("connection refused")
	err := s.ResolveSuggestions(SuggestionResult{Seq: second.Seq, Err: boom})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, list, s.Suggestions())
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_RequestKeepsConfigSnapshot(t *testing.T) {
	s := newTestSession()
	req, ok := s.SetInput("kubec")
	require.True(t, ok)

	topK := "2"
	require.NoError(t, s.UpdateConfig(suggest.Update{
		TopK:    &topK,
		Weights: map[types.Feature]string{types.FeatureDistance: "1"},
	}))

	assert.Equal(t, 5, req.Config.TopK)
	assert.Equal(t, 15.9, req.Config.Weights[types.FeatureDistance])
	assert.Equal(t, 2, s.Config().TopK)

	next, ok := s.SetInput("kubectl ge")
	require.True(t, ok)
	assert.Equal(t, 2, next.Config.TopK)
}

func TestSession_UpdateConfigRejectsInvalid(t *testing.T) {
	s := newTestSession()
	bad := "0.5.1"
	err := s.UpdateConfig(suggest.Update{DistanceFilter: &bad})

	assert.ErrorIs(t, err, suggest.ErrInvalidDistanceFilter)
	assert.Equal(t, suggest.DefaultConfiguration(), s.Config())
}

func TestSession_SubmitOrdering(t *testing.T) {
	s := newTestSession()

	hello, ok := s.SubmitMessage("hello")
	require.True(t, ok)
	world, ok := s.SubmitMessage("world")
	require.True(t, ok)
	assert.Equal(t, StateAwaitingChatReply, s.State())
	assert.Equal(t, 2, s.PendingChats())

	// replies arrive out of order
	require.NoError(t, s.ResolveChat(ChatResult{ID: world.ID, Reply: "reply-world"}))
	require.NoError(t, s.ResolveChat(ChatResult{ID: hello.ID, Reply: "reply-hello"}))

	transcript := s.Transcript()
	assert.Equal(t, []string{"user:hello", "user:world", "bot:reply-world", "bot:reply-hello"}, entries(transcript))
	assert.Equal(t, world.ID, transcript[2].ReplyTo)
	assert.Equal(t, hello.ID, transcript[3].ReplyTo)
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_UserEntriesPrecedeTheirReplies(t *testing.T) {
	for _, order := range [][]int{{0, 1}, {1, 0}} {
		t.Run(fmt.Sprint(order), func(t *testing.T) {
			s := newTestSession()
			reqs := make([]*ChatRequest, 2)
			reqs[0], _ = s.SubmitMessage("hello")
			reqs[1], _ = s.SubmitMessage("world")

			for _, i := range order {
				require.NoError(t, s.ResolveChat(ChatResult{ID: reqs[i].ID, Reply: "re:" + reqs[i].Message}))
			}

			pos := make(map[string]int)
			for i, m := range s.Transcript() {
				pos[m.ID] = i
				if m.Sender == types.SenderBot {
					assert.Less(t, pos[m.ReplyTo], i)
				}
			}
			assert.Less(t, pos[reqs[0].ID], pos[reqs[1].ID])
		})
	}
}

func TestSession_SubmitClearsComposeAndSuggestions(t *testing.T) {
	s := newTestSession()
	first, _ := s.SetInput("kubec")
	require.NoError(t, s.ResolveSuggestions(SuggestionResult{
		Seq:         first.Seq,
		Suggestions: []types.WeightedSuggestion{suggestion("kubectl", "cli", 1)},
	}))
	inflight, _ := s.SetInput("kubectl ge")

	req, ok := s.Submit()
	require.True(t, ok)
	assert.Equal(t, "kubectl ge", req.Message)
	assert.Empty(t, s.Input())
	assert.Empty(t, s.Suggestions())

	// the retrieval issued before submit no longer applies
	err := s.ResolveSuggestions(SuggestionResult{
		Seq:         inflight.Seq,
		Suggestions: []types.WeightedSuggestion{suggestion("late", "late", 1)},
	})
	assert.True(t, IsStale(err))
	assert.Empty(t, s.Suggestions())
}

func TestSession_SubmitBlankIgnored(t *testing.T) {
	s := newTestSession()
	s.SetInput("   ")

	_, ok := s.Submit()
	assert.False(t, ok)
	assert.Empty(t, s.Transcript())
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_ChatFailureLeavesUserEntry(t *testing.T) {
	s := newTestSession()
	req, _ := s.SubmitMessage("hello")

	boom := errors.New("timeout")
	err := s.ResolveChat(ChatResult{ID: req.ID, Err: boom})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"user:hello"}, entries(s.Transcript()))
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_ResolveUnknownChat(t *testing.T) {
	s := newTestSession()
	assert.Error(t, s.ResolveChat(ChatResult{ID: "nope", Reply: "x"}))
	assert.Empty(t, s.Transcript())
}

func TestSession_PickSuggestion(t *testing.T) {
	s := newTestSession()
	req, _ := s.SetInput("resta")
	response := "<p>Run <code>kubectl rollout restart deploy/web</code></p>"
	require.NoError(t, s.ResolveSuggestions(SuggestionResult{
		Seq: req.Seq,
		Suggestions: []types.WeightedSuggestion{
			suggestion("restart nginx", "<p>systemctl restart nginx</p>", 12),
			suggestion("restart deployment", response, 11),
		},
	}))

	require.NoError(t, s.PickSuggestion(1))

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, types.ChatMessage{ID: "id-1", Sender: types.SenderUser, Text: "restart deployment"}, transcript[0])
	assert.Equal(t, types.SenderBot, transcript[1].Sender)
	assert.Equal(t, response, transcript[1].Text)
	assert.Equal(t, "id-1", transcript[1].ReplyTo)

	assert.Equal(t, 0, s.PendingChats())
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.Suggestions())
	assert.Empty(t, s.Input())
}

func TestSession_PickSuggestionOutOfRange(t *testing.T) {
	s := newTestSession()
	assert.Error(t, s.PickSuggestion(0))
	assert.Error(t, s.PickSuggestion(-1))
	assert.Empty(t, s.Transcript())
}

func TestSession_OverlappingRequests(t *testing.T) {
	s := newTestSession()
	chat, _ := s.SubmitMessage("hello")
	sug, ok := s.SetInput("kubec")
	require.True(t, ok)

	assert.Equal(t, StateAwaitingChatReply, s.State())
	assert.True(t, s.SuggestionsPending())

	require.NoError(t, s.ResolveChat(ChatResult{ID: chat.ID, Reply: "hi"}))
	assert.Equal(t, StateAwaitingSuggestions, s.State())

	require.NoError(t, s.ResolveSuggestions(SuggestionResult{Seq: sug.Seq}))
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_SplitRatio(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, DefaultSplitRatio, s.SplitRatio())

	tests := []struct {
		ratio float64
		ok    bool
	}{
		{10, false},
		{10.5, true},
		{89.9, true},
		{90, false},
		{-5, false},
	}
	for _, tt := range tests {
		before := s.SplitRatio()
		assert.Equal(t, tt.ok, s.SetSplitRatio(tt.ratio), tt.ratio)
		if tt.ok {
			assert.Equal(t, tt.ratio, s.SplitRatio())
		} else {
			assert.Equal(t, before, s.SplitRatio())
		}
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "awaiting suggestions", StateAwaitingSuggestions.String())
	assert.Equal(t, "awaiting reply", StateAwaitingChatReply.String())
}
