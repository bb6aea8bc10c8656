package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/austiecodes/promptrec/internal/client"
	"github.com/austiecodes/promptrec/internal/types"
)

// Engine fetches candidates from the recommender and ranks them locally.
type Engine struct {
	recommender client.RecommenderClient
	logger      *log.Logger
}

// NewEngine creates an engine over the given recommender. A nil logger
// falls back to the package default.
func NewEngine(recommender client.RecommenderClient, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		recommender: recommender,
		logger:      logger.WithPrefix("suggest"),
	}
}

// Suggest retrieves and ranks suggestions for query under cfg. cfg should
// be the snapshot taken when the request was issued.
func (e *Engine) Suggest(ctx context.Context, query string, cfg Configuration) ([]types.WeightedSuggestion, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	candidates, err := e.recommender.Recommend(ctx, cfg.Request(query))
	if err != nil {
		if errors.Is(err, client.ErrMalformedResponse) {
			return nil, &MalformedCandidateError{Query: query, Index: -1, Reason: err.Error(), Err: err}
		}
		return nil, &RetrievalError{Query: query, Err: err}
	}

	ranked, err := Rank(query, cfg, candidates)
	if err != nil {
		e.logger.Warn("discarding recommender response", "query", query, "err", err)
		return nil, err
	}

	e.logger.Debug("ranked suggestions",
		"query", query,
		"received", len(candidates),
		"kept", len(ranked),
		"elapsed", time.Since(start))
	return ranked, nil
}

// FormatAsText renders suggestions as a numbered plain-text list.
func FormatAsText(suggestions []types.WeightedSuggestion) string {
	if len(suggestions) == 0 {
		return "No suggestions found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d suggestions:\n\n", len(suggestions)))

	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("%d. [%.3f] %s\n", i+1, s.WeightedScore, s.Prompt))
		sb.WriteString(fmt.Sprintf("   Response: %s\n", s.Response))
	}

	return sb.String()
}
