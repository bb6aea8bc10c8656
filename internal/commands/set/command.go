package set

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var SetCmd = &cobra.Command{
	Use:   "set",
	Short: "Configure promptrec settings interactively",
	Long:  `Open an interactive TUI to configure providers, the chat model, the recommender backend and suggestion ranking.`,
	Run: func(cmd *cobra.Command, args []string) {
		p := tea.NewProgram(initialModel(), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running settings: %v\n", err)
		}
	},
}
