package history

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/austiecodes/promptrec/internal/store"
)

var historyLimit int

var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded requests interactively",
	Long:  `Open an interactive TUI to browse the log of suggestion and chat requests, inspect one, or clear the log.`,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := store.NewStore()
		if err != nil {
			fmt.Printf("Error opening request log: %v\n", err)
			return
		}
		defer st.Close()

		p := tea.NewProgram(initialModel(st, historyLimit), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running history browser: %v\n", err)
		}
	},
}

func init() {
	HistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 200, "Maximum number of requests to load")
}
