package stats

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/austiecodes/promptrec/internal/commands/ui"
	"github.com/austiecodes/promptrec/internal/store"
)

var recentLimit int

// StatsCmd summarizes the request log.
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show request counts and latency from the request log",
	Long:  `Print counts and mean latency of suggestion and chat requests grouped by outcome, followed by the most recent requests.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.NewStore()
		if err != nil {
			return err
		}
		defer st.Close()

		summary, err := st.Stats()
		if err != nil {
			return err
		}
		recent, err := st.Recent(recentLimit)
		if err != nil {
			return err
		}

		render(cmd.OutOrStdout(), summary, recent)
		return nil
	},
}

func init() {
	StatsCmd.Flags().IntVarP(&recentLimit, "limit", "n", 10, "Number of recent requests to list")
}

func render(w io.Writer, summary []store.KindStats, recent []store.RequestRecord) {
	fmt.Fprintln(w, ui.TitleStyle.Render("Request Summary"))
	if len(summary) == 0 {
		fmt.Fprintln(w, ui.SubtitleStyle.Render("No requests recorded yet."))
		return
	}

	total := 0
	rows := make([][]string, 0, len(summary))
	for _, ks := range summary {
		total += ks.Count
		rows = append(rows, []string{string(ks.Kind), string(ks.Status), fmt.Sprintf("%d", ks.Count), ks.AvgLatency.String()})
	}
	fmt.Fprintln(w, newTable("Kind", "Status", "Count", "Avg Latency").Rows(rows...).String())
	fmt.Fprintln(w, ui.SubtitleStyle.Render(fmt.Sprintf("Requests Recorded: %d", total)))

	if len(recent) == 0 {
		return
	}

	fmt.Fprintln(w, ui.TitleStyle.Render("Recent Requests"))
	rows = rows[:0]
	for _, rec := range recent {
		rows = append(rows, []string{
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			string(rec.Kind),
			string(rec.Status),
			fmt.Sprintf("%d", rec.ResultCount),
			rec.Latency.String(),
			truncate(rec.Query, 48),
		})
	}
	fmt.Fprintln(w, newTable("Time", "Kind", "Status", "Results", "Latency", "Query").Rows(rows...).String())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(ui.HelpStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Inherit(ui.InputLabelStyle)
			}
			return base
		})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
