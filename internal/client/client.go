package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/austiecodes/promptrec/internal/types"
)

// RecommenderClient fetches raw suggestion candidates for a query.
type RecommenderClient interface {
	Recommend(ctx context.Context, req types.RecommendRequest) ([]types.Candidate, error)
}

// ChatClient sends one message and returns the full reply.
type ChatClient interface {
	Chat(ctx context.Context, message string) (string, error)
}

// ModelLister lists models available to a provider.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// ErrMalformedResponse marks a response body that could not be decoded
// into the expected shape.
var ErrMalformedResponse = errors.New("malformed response")

// NetworkError reports a collaborator call that did not complete.
// StatusCode is zero when no HTTP response was received.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
