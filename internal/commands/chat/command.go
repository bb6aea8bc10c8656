package chat

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/austiecodes/promptrec/internal/provider"
	"github.com/austiecodes/promptrec/internal/session"
	"github.com/austiecodes/promptrec/internal/store"
	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/utils"
)

var ChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with live prompt suggestions",
	Long: `Open an interactive chat. Suggestions for the message being composed are
fetched from the recommender every five characters and ranked locally.
Pick one to reuse its known answer, or send your own message.`,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := utils.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		chatClient, err := provider.NewChatClient(config)
		if err != nil {
			fmt.Printf("Error creating chat client: %v\n", err)
			return
		}

		logger := log.Default()
		engine := suggest.NewEngine(provider.NewRecommenderClient(config), logger)

		var recorder Recorder
		if st, err := store.NewStore(); err != nil {
			logger.Warn("request log unavailable", "err", err)
		} else {
			defer st.Close()
			recorder = st
		}

		m := initialModel(cmd.Context(), session.New(config.Suggestions), engine, chatClient, recorder, logger)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running chat: %v\n", err)
		}
	},
}
