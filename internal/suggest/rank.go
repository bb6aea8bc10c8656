package suggest

import (
	"fmt"
	"sort"

	"github.com/austiecodes/promptrec/internal/types"
)

// Rank turns raw candidates into a filtered, ranked list under cfg.
//
// Each configured feature contributes score*weight; features missing from a
// candidate contribute nothing. A candidate is kept only if its distance
// score (1 - raw distance) is at least 1 - cfg.DistanceFilter, within
// filterTolerance so scores rounded by the recommender stay kept. The survivors
// are stable-sorted by weighted score, highest first, and cut to cfg.TopK.
//
// Any malformed candidate fails the whole call.
func Rank(query string, cfg Configuration, candidates []types.Candidate) ([]types.WeightedSuggestion, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]types.WeightedSuggestion, 0, len(candidates))

	for i, cand := range candidates {
		if isPlaceholder(cand) {
			continue
		}
		if reason := checkCandidate(cand); reason != "" {
			return nil, &MalformedCandidateError{Query: query, Index: i, Reason: reason}
		}

		ws := score(cand, cfg)
		if !withinFilter(ws.DistanceScore, cfg.DistanceFilter) {
			continue
		}
		ranked = append(ranked, ws)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeightedScore > ranked[j].WeightedScore
	})

	if len(ranked) > cfg.TopK {
		ranked = ranked[:cfg.TopK]
	}
	return ranked, nil
}

const filterTolerance = 1e-9

// withinFilter compares score+filter against 1 rather than score against
// 1-filter, which is inexact for filters such as 0.7.
func withinFilter(distanceScore, filter float64) bool {
	return distanceScore+filter >= 1-filterTolerance
}

// score recomputes contributions from cfg, keeping the candidate's own
// feature order. Unconfigured features stay in the list with zero weight.
func score(cand types.Candidate, cfg Configuration) types.WeightedSuggestion {
	out := types.WeightedSuggestion{Candidate: cand}
	out.Contributions = make([]types.Contribution, len(cand.Contributions))

	for i, ct := range cand.Contributions {
		ct.Weight = cfg.Weight(ct.Feature)
		ct.Contribution = ct.Score * ct.Weight
		out.Contributions[i] = ct
		out.WeightedScore += ct.Contribution
		if ct.Feature == types.FeatureDistance {
			out.DistanceScore = ct.Score
		}
	}
	return out
}

func checkCandidate(cand types.Candidate) string {
	seen := make(map[types.Feature]bool, len(cand.Contributions))
	for _, ct := range cand.Contributions {
		if ct.Feature == "" {
			return "contribution without feature name"
		}
		if seen[ct.Feature] {
			return fmt.Sprintf("duplicate feature %q", ct.Feature)
		}
		seen[ct.Feature] = true
		if !isFinite(ct.Score) {
			return fmt.Sprintf("feature %q has no score", ct.Feature)
		}
		if ct.Score < 0 || ct.Score > 1 {
			return fmt.Sprintf("feature %q score %v outside [0,1]", ct.Feature, ct.Score)
		}
	}
	if !seen[types.FeatureDistance] {
		return "missing distance feature"
	}
	return ""
}

// isPlaceholder matches the recommender's "no answer" record.
func isPlaceholder(cand types.Candidate) bool {
	return cand.Prompt == "" && len(cand.Contributions) == 0
}
