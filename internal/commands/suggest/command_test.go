package suggest

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/types"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	topK, distanceFilter = "", ""
	cmd := &cobra.Command{Use: "suggest"}
	cmd.Flags().StringVarP(&topK, "top-k", "k", "", "")
	cmd.Flags().StringVarP(&distanceFilter, "distance-filter", "d", "", "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestOverrides(t *testing.T) {
	base := suggest.DefaultConfiguration()

	cfg, err := overrides(newFlagCmd(t), base)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)

	cfg, err = overrides(newFlagCmd(t, "--top-k", "3", "-d", "0.2"), base)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, 0.2, cfg.DistanceFilter)
	assert.Equal(t, suggest.DefaultTopK, base.TopK)

	_, err = overrides(newFlagCmd(t, "--top-k", "0"), base)
	assert.ErrorIs(t, err, suggest.ErrInvalidTopK)

	_, err = overrides(newFlagCmd(t, "--distance-filter", "2"), base)
	assert.ErrorIs(t, err, suggest.ErrInvalidDistanceFilter)
}

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	printSuggestions(&buf, nil, false)
	assert.Contains(t, buf.String(), "No suggestions found.")

	buf.Reset()
	suggestions := []types.WeightedSuggestion{{
		Candidate: types.Candidate{
			Prompt:   "How do I restart nginx?",
			Response: "systemctl restart nginx",
			Contributions: []types.Contribution{
				{Feature: types.FeatureDistance, Value: 0.1, Score: 0.9, Weight: 15.9, Contribution: 14.31},
			},
		},
		WeightedScore: 14.31,
		DistanceScore: 0.9,
	}}
	printSuggestions(&buf, suggestions, true)

	out := buf.String()
	assert.Contains(t, out, "[14.310] How do I restart nginx?")
	assert.Contains(t, out, "systemctl restart nginx")
	assert.Contains(t, out, "Final Score")
}
