package backend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/austiecodes/promptrec/internal/client"
	"github.com/austiecodes/promptrec/internal/types"
)

var _ client.RecommenderClient = (*CachedRecommender)(nil)

// CachedRecommender memoizes successful recommender responses for a short
// time, keyed by the full request. Failures are never cached.
type CachedRecommender struct {
	next  client.RecommenderClient
	cache *cache.Cache
}

// NewCachedRecommender wraps next with a cache whose entries live for ttl.
func NewCachedRecommender(next client.RecommenderClient, ttl time.Duration) *CachedRecommender {
	return &CachedRecommender{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CachedRecommender) Recommend(ctx context.Context, req types.RecommendRequest) ([]types.Candidate, error) {
	key, err := cacheKey(req)
	if err != nil {
		return c.next.Recommend(ctx, req)
	}

	if x, found := c.cache.Get(key); found {
		return cloneCandidates(x.([]types.Candidate)), nil
	}

	candidates, err := c.next.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, cloneCandidates(candidates), cache.DefaultExpiration)
	return candidates, nil
}

// Len reports the number of live cache entries.
func (c *CachedRecommender) Len() int {
	return c.cache.ItemCount()
}

// cacheKey relies on encoding/json writing map keys in sorted order.
func cacheKey(req types.RecommendRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func cloneCandidates(in []types.Candidate) []types.Candidate {
	out := make([]types.Candidate, len(in))
	for i, c := range in {
		c.Contributions = append([]types.Contribution(nil), c.Contributions...)
		out[i] = c
	}
	return out
}
