package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austiecodes/promptrec/internal/client"
)

func TestClient_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)

		var body struct {
			SystemInstruction struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"systemInstruction"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if assert.Len(t, body.SystemInstruction.Parts, 1) {
			assert.Equal(t, "be brief", body.SystemInstruction.Parts[0].Text)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"kubectl get pods"}]}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", srv.URL, "gemini-2.0-flash", "be brief")
	require.NoError(t, err)

	reply, err := c.Chat(context.Background(), "list pods")
	require.NoError(t, err)
	assert.Equal(t, "kubectl get pods", reply)
}

func TestClient_ChatNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", srv.URL, "gemini-2.0-flash", "")
	require.NoError(t, err)

	_, err = c.Chat(context.Background(), "hi")
	assert.ErrorIs(t, err, client.ErrMalformedResponse)
}
