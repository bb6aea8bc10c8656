package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/austiecodes/promptrec/internal/client"
	"github.com/austiecodes/promptrec/internal/types"
)

const (
	recommenderPath = "/recommender"
	chatPath        = "/chat"
)

// compile time checks
var (
	_ client.RecommenderClient = (*Client)(nil)
	_ client.ChatClient        = (*Client)(nil)
)

// Client talks to the recommender service's JSON endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// contributionDTO mirrors the wire shape; any numeric field may be null.
type contributionDTO struct {
	Feature      string   `json:"feature"`
	Value        *float64 `json:"value"`
	Score        *float64 `json:"score"`
	Weight       *float64 `json:"weight"`
	Contribution *float64 `json:"contribution"`
}

type candidateDTO struct {
	Prompt        string            `json:"prompt"`
	Response      string            `json:"response"`
	CreationTime  *float64          `json:"creation_time"`
	TimeElapsed   *string           `json:"time_elapsed"`
	WeightedScore *float64          `json:"weighted_score"`
	Contributions []contributionDTO `json:"contributions"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Prompt   string  `json:"prompt"`
	Response *string `json:"response"`
}

// Recommend posts req to /recommender and returns the candidates in the
// order the service sent them. A null score decodes as NaN so the ranker
// can reject it.
func (c *Client) Recommend(ctx context.Context, req types.RecommendRequest) ([]types.Candidate, error) {
	var out []candidateDTO
	if err := c.postJSON(ctx, recommenderPath, req, &out); err != nil {
		return nil, err
	}

	candidates := make([]types.Candidate, len(out))
	for i, dto := range out {
		candidates[i] = dto.toCandidate()
	}
	return candidates, nil
}

// Chat posts message to /chat and returns the reply text.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var out chatResponse
	if err := c.postJSON(ctx, chatPath, chatRequest{Message: message}, &out); err != nil {
		return "", err
	}
	if out.Response == nil {
		return "", fmt.Errorf("chat response missing %q field: %w", "response", client.ErrMalformedResponse)
	}
	return *out.Response, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	url := c.baseURL + path

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &client.NetworkError{Op: http.MethodPost, URL: url, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &client.NetworkError{Op: http.MethodPost, URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &client.NetworkError{
			Op:         http.MethodPost,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(payload))),
		}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %v: %w", path, err, client.ErrMalformedResponse)
	}
	return nil
}

func (d candidateDTO) toCandidate() types.Candidate {
	cand := types.Candidate{
		Prompt:        d.Prompt,
		Response:      d.Response,
		Contributions: make([]types.Contribution, len(d.Contributions)),
	}
	if d.CreationTime != nil {
		cand.Timestamp = *d.CreationTime
	}
	if d.TimeElapsed != nil {
		cand.TimeElapsed = *d.TimeElapsed
	}
	for i, ct := range d.Contributions {
		cand.Contributions[i] = types.Contribution{
			Feature:      types.Feature(ct.Feature),
			Value:        orZero(ct.Value),
			Score:        orNaN(ct.Score),
			Weight:       orZero(ct.Weight),
			Contribution: orZero(ct.Contribution),
		}
	}
	return cand
}

func orZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func orNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}
