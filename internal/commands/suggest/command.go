package suggest

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/austiecodes/promptrec/internal/commands/ui"
	"github.com/austiecodes/promptrec/internal/provider"
	"github.com/austiecodes/promptrec/internal/store"
	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/types"
	"github.com/austiecodes/promptrec/internal/utils"
)

var (
	topK           string
	distanceFilter string
	showStats      bool
)

// SuggestCmd prints ranked suggestions for a query without opening the TUI.
var SuggestCmd = &cobra.Command{
	Use:   "suggest <query>",
	Short: "Print ranked prompt suggestions for a query",
	Long: `Fetch candidates for the query from the recommender, rank them with the
configured weights and print them. Flags override the saved settings for
this call only.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := utils.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg, err := overrides(cmd, config.Suggestions)
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		engine := suggest.NewEngine(provider.NewRecommenderClient(config), log.Default())

		start := time.Now()
		suggestions, err := engine.Suggest(cmdContext(cmd), query, cfg)
		recordRequest(query, suggestions, err, time.Since(start))
		if err != nil {
			return err
		}

		printSuggestions(cmd.OutOrStdout(), suggestions, showStats)
		return nil
	},
}

func init() {
	SuggestCmd.Flags().StringVarP(&topK, "top-k", "k", "", "Maximum number of suggestions (1-100)")
	SuggestCmd.Flags().StringVarP(&distanceFilter, "distance-filter", "d", "", "Maximum allowed distance (0.0-1.0)")
	SuggestCmd.Flags().BoolVarP(&showStats, "stats", "s", false, "Show the per-feature score breakdown")
}

// overrides applies the flags that were set on top of base.
func overrides(cmd *cobra.Command, base suggest.Configuration) (suggest.Configuration, error) {
	var u suggest.Update
	if cmd.Flags().Changed("top-k") {
		u.TopK = &topK
	}
	if cmd.Flags().Changed("distance-filter") {
		u.DistanceFilter = &distanceFilter
	}
	return base.Apply(u)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func recordRequest(query string, suggestions []types.WeightedSuggestion, err error, latency time.Duration) {
	st, openErr := store.NewStore()
	if openErr != nil {
		log.Warn("request log unavailable", "err", openErr)
		return
	}
	defer st.Close()

	rec := &store.RequestRecord{
		Kind:        store.KindSuggest,
		Query:       query,
		Status:      store.StatusOK,
		ResultCount: len(suggestions),
		Latency:     latency,
	}
	if err != nil {
		rec.Status = store.StatusFailed
		rec.Error = err.Error()
	}
	if err := st.Record(rec); err != nil {
		log.Warn("failed to record request", "err", err)
	}
}

func printSuggestions(w io.Writer, suggestions []types.WeightedSuggestion, stats bool) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, ui.SubtitleStyle.Render("No suggestions found."))
		return
	}

	for i, s := range suggestions {
		fmt.Fprintf(w, "%s %s\n",
			ui.InputLabelStyle.Render(strconv.Itoa(i+1)+"."),
			ui.HighlightLevel(s.DistanceScore).Style().Render("["+ui.FormatNumber(s.WeightedScore)+"]")+" "+s.Prompt)
		fmt.Fprintf(w, "   %s %s\n", ui.DetailLabelStyle.Render("Response:"), ui.RenderMessage(s.Response))
		if s.Timestamp > 0 {
			fmt.Fprintf(w, "   %s %s\n", ui.DetailLabelStyle.Render("Added:"), ui.FormatDate(s.Timestamp))
		}
		if stats {
			fmt.Fprintln(w, ui.ContributionTable(s))
		}
		fmt.Fprintln(w)
	}
}
