package commands

import (
	chatcmd "github.com/austiecodes/promptrec/internal/commands/chat"
	historycmd "github.com/austiecodes/promptrec/internal/commands/history"
	mcpcmd "github.com/austiecodes/promptrec/internal/commands/mcp"
	setcmd "github.com/austiecodes/promptrec/internal/commands/set"
	statscmd "github.com/austiecodes/promptrec/internal/commands/stats"
	suggestcmd "github.com/austiecodes/promptrec/internal/commands/suggest"
)

func init() {
	rootCmd.AddCommand(chatcmd.ChatCmd)
	rootCmd.AddCommand(historycmd.HistoryCmd)
	rootCmd.AddCommand(mcpcmd.McpCmd)
	rootCmd.AddCommand(setcmd.SetCmd)
	rootCmd.AddCommand(statscmd.StatsCmd)
	rootCmd.AddCommand(suggestcmd.SuggestCmd)
}
