package suggest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/austiecodes/promptrec/internal/types"
)

const (
	DefaultTopK           = 5
	MaxTopK               = 100
	DefaultDistanceFilter = 0.5
)

var (
	ErrInvalidTopK           = errors.New("top_k must be an integer between 1 and 100")
	ErrInvalidDistanceFilter = errors.New("distance_filter must be a number between 0 and 1")
	ErrInvalidWeight         = errors.New("weight must be a non-negative number")
	ErrUnknownFeature        = errors.New("unknown feature")
)

// Configuration holds the tunable ranking parameters.
type Configuration struct {
	Weights        map[types.Feature]float64 `json:"weights"`
	TopK           int                       `json:"top_k"`
	DistanceFilter float64                   `json:"distance_filter"`
}

// DefaultWeights returns the stock per-feature weights.
func DefaultWeights() map[types.Feature]float64 {
	return map[types.Feature]float64{
		types.FeatureDistance:       15.9,
		types.FeatureTimeElapsed:    2,
		types.FeatureLength:         0.05,
		types.FeatureRetrievalCount: 1,
	}
}

// DefaultConfiguration returns the stock ranking configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		Weights:        DefaultWeights(),
		TopK:           DefaultTopK,
		DistanceFilter: DefaultDistanceFilter,
	}
}

// Clone returns a deep copy so later edits do not leak into snapshots.
func (c Configuration) Clone() Configuration {
	out := c
	out.Weights = make(map[types.Feature]float64, len(c.Weights))
	for f, w := range c.Weights {
		out.Weights[f] = w
	}
	return out
}

// Validate checks every field and returns the first violation.
func (c Configuration) Validate() error {
	if c.TopK < 1 || c.TopK > MaxTopK {
		return fmt.Errorf("%w: got %d", ErrInvalidTopK, c.TopK)
	}
	if !isFinite(c.DistanceFilter) || c.DistanceFilter < 0 || c.DistanceFilter > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidDistanceFilter, c.DistanceFilter)
	}
	for f, w := range c.Weights {
		if !f.IsKnown() {
			return fmt.Errorf("%w: %q", ErrUnknownFeature, f)
		}
		if !isFinite(w) || w < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidWeight, f, w)
		}
	}
	return nil
}

// Weight returns the configured weight for f, or 0 if unset.
func (c Configuration) Weight(f types.Feature) float64 {
	return c.Weights[f]
}

// Update carries raw, unparsed field values as entered in a settings form.
// Nil fields are left unchanged.
type Update struct {
	TopK           *string
	DistanceFilter *string
	Weights        map[types.Feature]string
}

// Apply parses and validates u against c. On any error c is returned
// unchanged along with the error.
func (c Configuration) Apply(u Update) (Configuration, error) {
	next := c.Clone()

	if u.TopK != nil {
		topK, err := strconv.Atoi(strings.TrimSpace(*u.TopK))
		if err != nil {
			return c, fmt.Errorf("%w: %q", ErrInvalidTopK, *u.TopK)
		}
		next.TopK = topK
	}

	if u.DistanceFilter != nil {
		df, err := strconv.ParseFloat(strings.TrimSpace(*u.DistanceFilter), 64)
		if err != nil {
			return c, fmt.Errorf("%w: %q", ErrInvalidDistanceFilter, *u.DistanceFilter)
		}
		next.DistanceFilter = df
	}

	for f, raw := range u.Weights {
		if !f.IsKnown() {
			return c, fmt.Errorf("%w: %q", ErrUnknownFeature, f)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q", ErrInvalidWeight, f, raw)
		}
		next.Weights[f] = w
	}

	if err := next.Validate(); err != nil {
		return c, err
	}
	return next, nil
}

// Request builds the recommender request for query under c.
func (c Configuration) Request(query string) types.RecommendRequest {
	return types.RecommendRequest{
		Message:        query,
		TopN:           c.TopK,
		Weights:        c.Clone().Weights,
		DistanceFilter: c.DistanceFilter,
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
