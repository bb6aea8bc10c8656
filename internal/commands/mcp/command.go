package mcp

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/austiecodes/promptrec/internal/provider"
	"github.com/austiecodes/promptrec/internal/store"
	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/utils"
)

// McpCmd is the command to start the MCP server
var McpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server over stdio",
	Long:  `Start a Model Context Protocol (MCP) server that communicates over stdio. This exposes prompt suggestions and the chat assistant as MCP tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMcpServer(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runMcpServer() error {
	config, err := utils.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	h := &handlers{
		suggester: suggest.NewEngine(provider.NewRecommenderClient(config), log.Default()),
		config:    config.Suggestions,
		logger:    log.Default().WithPrefix("mcp"),
	}

	// The chat tool reports a configuration error per call instead of
	// keeping the server from starting.
	if chatClient, err := provider.NewChatClient(config); err != nil {
		h.chatErr = err
	} else {
		h.chat = chatClient
	}

	if st, err := store.NewStore(); err != nil {
		h.logger.Warn("request log unavailable", "err", err)
	} else {
		defer st.Close()
		h.recorder = st
	}

	return server.ServeStdio(newServer(h))
}

func newServer(h *handlers) *server.MCPServer {
	// Create the MCP server
	s := server.NewMCPServer(
		"promptrec",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	suggestTool := mcp.NewTool("suggest_prompts",
		mcp.WithDescription("Suggest previously answered prompts similar to a partial or complete question, ranked by a weighted score over distance, age, length and retrieval count. Each suggestion includes its known response."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The question or partial question to find suggestions for"),
		),
		mcp.WithNumber("top_k",
			mcp.Description("Maximum number of suggestions, 1 to 100 (default: configured top_k)"),
		),
		mcp.WithNumber("distance_filter",
			mcp.Description("Maximum allowed distance from 0.0 to 1.0 (default: configured distance_filter)"),
		),
	)
	s.AddTool(suggestTool, h.handleSuggest)

	chatTool := mcp.NewTool("chat_message",
		mcp.WithDescription("Send a message to the DevOps chat assistant and return its full reply."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The message to send"),
		),
	)
	s.AddTool(chatTool, h.handleChat)

	return s
}
