package mcp

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/austiecodes/promptrec/internal/client"
	"github.com/austiecodes/promptrec/internal/store"
	"github.com/austiecodes/promptrec/internal/suggest"
	"github.com/austiecodes/promptrec/internal/types"
)

// Suggester ranks suggestions for a query.
type Suggester interface {
	Suggest(ctx context.Context, query string, cfg suggest.Configuration) ([]types.WeightedSuggestion, error)
}

// Recorder persists request outcomes.
type Recorder interface {
	Record(rec *store.RequestRecord) error
}

type handlers struct {
	suggester Suggester
	config    suggest.Configuration
	chat      client.ChatClient
	chatErr   error
	recorder  Recorder
	logger    *log.Logger
}

// handleSuggest handles the suggest_prompts tool call
func (h *handlers) handleSuggest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("missing arguments"), nil
	}

	query, errResult := requiredString(args, "query")
	if errResult != nil {
		return errResult, nil
	}

	cfg := h.config.Clone()
	if v, ok := args["top_k"]; ok {
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) {
			return mcp.NewToolResultError("parameter 'top_k' must be an integer"), nil
		}
		cfg.TopK = int(n)
	}
	if v, ok := args["distance_filter"]; ok {
		df, ok := v.(float64)
		if !ok {
			return mcp.NewToolResultError("parameter 'distance_filter' must be a number"), nil
		}
		cfg.DistanceFilter = df
	}
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := time.Now()
	suggestions, err := h.suggester.Suggest(ctx, query, cfg)
	rec := store.RequestRecord{Kind: store.KindSuggest, Query: query, Latency: time.Since(start)}
	if err != nil {
		rec.Status, rec.Error = store.StatusFailed, err.Error()
		h.record(rec)
		return mcp.NewToolResultError(fmt.Sprintf("suggestion failed: %v", err)), nil
	}
	rec.Status, rec.ResultCount = store.StatusOK, len(suggestions)
	h.record(rec)

	return mcp.NewToolResultText(suggest.FormatAsText(suggestions)), nil
}

// handleChat handles the chat_message tool call
func (h *handlers) handleChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if args == nil {
		return mcp.NewToolResultError("missing arguments"), nil
	}

	message, errResult := requiredString(args, "message")
	if errResult != nil {
		return errResult, nil
	}

	if h.chat == nil {
		return mcp.NewToolResultError(fmt.Sprintf("chat is not available: %v", h.chatErr)), nil
	}

	start := time.Now()
	reply, err := h.chat.Chat(ctx, message)
	rec := store.RequestRecord{Kind: store.KindChat, Query: message, Latency: time.Since(start)}
	if err != nil {
		rec.Status, rec.Error = store.StatusFailed, err.Error()
		h.record(rec)
		return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
	}
	rec.Status, rec.ResultCount = store.StatusOK, 1
	h.record(rec)

	return mcp.NewToolResultText(reply), nil
}

func (h *handlers) record(rec store.RequestRecord) {
	if h.recorder == nil {
		return
	}
	if err := h.recorder.Record(&rec); err != nil {
		h.logger.Warn("failed to record request", "kind", rec.Kind, "err", err)
	}
}

func requiredString(args map[string]any, name string) (string, *mcp.CallToolResult) {
	raw, ok := args[name]
	if !ok {
		return "", mcp.NewToolResultError("missing required parameter: " + name)
	}
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("parameter '%s' must be a non-empty string", name))
	}
	return s, nil
}
