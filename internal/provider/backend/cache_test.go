package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austiecodes/promptrec/internal/types"
)

type countingRecommender struct {
	calls int
	err   error
}

func (c *countingRecommender) Recommend(ctx context.Context, req types.RecommendRequest) ([]types.Candidate, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []types.Candidate{{
		Prompt:        req.Message,
		Contributions: []types.Contribution{{Feature: types.FeatureDistance, Score: 0.9}},
	}}, nil
}

func TestCachedRecommender_HitsOnSameRequest(t *testing.T) {
	inner := &countingRecommender{}
	c := NewCachedRecommender(inner, time.Minute)
	req := types.RecommendRequest{Message: "hello", TopN: 5, Weights: map[types.Feature]float64{"distance": 1}}

	first, err := c.Recommend(context.Background(), req)
	require.NoError(t, err)
	second, err := c.Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())
}

func TestCachedRecommender_KeyIncludesConfiguration(t *testing.T) {
	inner := &countingRecommender{}
	c := NewCachedRecommender(inner, time.Minute)

	_, _ = c.Recommend(context.Background(), types.RecommendRequest{Message: "hello", TopN: 5})
	_, _ = c.Recommend(context.Background(), types.RecommendRequest{Message: "hello", TopN: 3})
	_, _ = c.Recommend(context.Background(), types.RecommendRequest{Message: "hello", TopN: 3, DistanceFilter: 0.2})

	assert.Equal(t, 3, inner.calls)
}

func TestCachedRecommender_ReturnsCopies(t *testing.T) {
	c := NewCachedRecommender(&countingRecommender{}, time.Minute)
	req := types.RecommendRequest{Message: "hello"}

	first, err := c.Recommend(context.Background(), req)
	require.NoError(t, err)
	first[0].Contributions[0].Score = 0

	second, err := c.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.9, second[0].Contributions[0].Score)
}

func TestCachedRecommender_DoesNotCacheErrors(t *testing.T) {
	inner := &countingRecommender{err: errors.New("boom")}
	c := NewCachedRecommender(inner, time.Minute)
	req := types.RecommendRequest{Message: "hello"}

	_, err := c.Recommend(context.Background(), req)
	require.Error(t, err)
	_, err = c.Recommend(context.Background(), req)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, c.Len())
}
