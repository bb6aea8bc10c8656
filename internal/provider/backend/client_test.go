package backend

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austiecodes/promptrec/internal/client"
	"github.com/austiecodes/promptrec/internal/types"
)

const recommenderBody = `[
  {
    "prompt": "How do I restart a pod?",
    "response": "<p>Use kubectl rollout restart.</p>",
    "creation_time": 1717000000.5,
    "time_elapsed": "3 day 04:05:06",
    "weighted_score": 15.535,
    "contributions": [
      {"feature": "distance", "value": 0.1, "score": 0.9, "weight": 15.9, "contribution": 14.31},
      {"feature": "time_elapsed_since_added", "value": 1717000000.5, "score": 0.2, "weight": 2, "contribution": 0.4},
      {"feature": "length", "value": 36, "score": 0.5, "weight": 0.05, "contribution": 0.025},
      {"feature": "retrieval_count", "value": 4, "score": null, "weight": 1, "contribution": null}
    ]
  }
]`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second)
}

func TestClient_Recommend(t *testing.T) {
	var got types.RecommendRequest
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, recommenderPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(recommenderBody))
	})

	req := types.RecommendRequest{
		Message:        "restart pod",
		TopN:           5,
		Weights:        map[types.Feature]float64{types.FeatureDistance: 15.9},
		DistanceFilter: 0.5,
	}
	cands, err := c.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req, got)

	require.Len(t, cands, 1)
	cand := cands[0]
	assert.Equal(t, "How do I restart a pod?", cand.Prompt)
	assert.Equal(t, "<p>Use kubectl rollout restart.</p>", cand.Response)
	assert.Equal(t, 1717000000.5, cand.Timestamp)
	assert.Equal(t, "3 day 04:05:06", cand.TimeElapsed)
	require.Len(t, cand.Contributions, 4)
	assert.Equal(t, types.FeatureDistance, cand.Contributions[0].Feature)
	assert.Equal(t, 0.9, cand.Contributions[0].Score)
	assert.Equal(t, 36.0, cand.Contributions[2].Value)
	assert.True(t, math.IsNaN(cand.Contributions[3].Score))
	assert.Equal(t, 0.0, cand.Contributions[3].Contribution)
}

func TestClient_RecommendPlaceholder(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"prompt": "", "response": "I'm sorry, I don't have an answer for that.",
			"creation_time": null, "time_elapsed": null, "weighted_score": null, "contributions": []}]`))
	})

	cands, err := c.Recommend(context.Background(), types.RecommendRequest{Message: "x", TopN: 1})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Empty(t, cands[0].Prompt)
	assert.Empty(t, cands[0].Contributions)
	assert.Zero(t, cands[0].Timestamp)
}

func TestClient_StatusError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"No message provided"}`, http.StatusBadRequest)
	})

	_, err := c.Recommend(context.Background(), types.RecommendRequest{})

	var ne *client.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.StatusBadRequest, ne.StatusCode)
	assert.Contains(t, ne.Error(), "No message provided")
}

func TestClient_MalformedBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	})

	_, err := c.Recommend(context.Background(), types.RecommendRequest{Message: "x"})
	assert.ErrorIs(t, err, client.ErrMalformedResponse)
	assert.False(t, client.IsNetworkError(err))
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Chat(context.Background(), "hello")
	assert.True(t, client.IsNetworkError(err))
}

func TestClient_Chat(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, chatPath, r.URL.Path)
		var body chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]string{
			"prompt":   body.Message,
			"response": "<b>echo</b> " + body.Message,
		})
	})

	reply, err := c.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "<b>echo</b> hello", reply)
}

func TestClient_ChatMissingResponse(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prompt": "hello"}`))
	})

	_, err := c.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, client.ErrMalformedResponse)
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Chat(ctx, "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
