// ABOUTME: MCP tool handler implementations for the Kit onboarding server
// ABOUTME: Tool calls are serialized because the session is single-threaded
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/harper/kit-onboarding/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	mu      sync.Mutex
	session *core.Session
	logger  *zap.Logger
}

// NewHandlers wraps session for tool calls
func NewHandlers(session *core.Session, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{session: session, logger: logger}
}

type turnResponse struct {
	Reply            string `json:"reply"`
	Summary          string `json:"summary,omitempty"`
	SessionEnded     bool   `json:"session_ended"`
	InteractionCount int    `json:"interaction_count"`
	Remaining        int    `json:"remaining"`
}

type exchangeView struct {
	Order     int       `json:"order"`
	UserText  string    `json:"user_text"`
	Timestamp time.Time `json:"timestamp"`
}

// SendMessage handles the send_message tool
func (h *Handlers) SendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var reply core.Reply
	if core.IsQuit(message) {
		reply = core.Reply{Summary: h.session.Finish(), Terminate: true}
	} else {
		reply = h.session.HandleInput(ctx, message)
	}

	h.logger.Debug("send_message handled",
		zap.Bool("session_ended", reply.Terminate),
		zap.Int("remaining", h.session.Remaining()))

	return h.turnResult(reply)
}

// AddDocument handles the add_document tool
func (h *Handlers) AddDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	reply, err := h.session.ShareDocument(path)
	if err != nil {
		h.logger.Debug("add_document rejected", zap.String("path", path), zap.Error(err))
		return mcp.NewToolResultError(reply.Text), nil
	}
	return h.turnResult(reply)
}

// SummarizeSession handles the summarize_session tool
func (h *Handlers) SummarizeSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state := h.session.State()
	return jsonResult(map[string]interface{}{
		"summary":           h.session.Summary(),
		"exchange_count":    len(state.Exchanges),
		"interaction_count": state.InteractionCount,
	})
}

// ResetSession handles the reset_session tool
func (h *Handlers) ResetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	message := h.session.Reset()
	return jsonResult(map[string]interface{}{
		"message":    message,
		"session_id": h.session.State().SessionID,
		"remaining":  h.session.Remaining(),
	})
}

// SessionStatus handles the session_status tool
func (h *Handlers) SessionStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state := h.session.State()
	exchanges := make([]exchangeView, 0, len(state.Exchanges))
	for _, ex := range state.Exchanges {
		exchanges = append(exchanges, exchangeView{
			Order:     ex.Order,
			UserText:  ex.UserText,
			Timestamp: ex.Timestamp,
		})
	}

	return jsonResult(map[string]interface{}{
		"session_id":        state.SessionID,
		"backend":           h.session.Backend(),
		"interaction_count": state.InteractionCount,
		"max_interactions":  state.MaxInteractions,
		"remaining":         h.session.Remaining(),
		"history_messages":  len(state.History),
		"exchanges":         exchanges,
	})
}

// ListCommands handles the list_commands tool
func (h *Handlers) ListCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"commands":   core.Commands(),
		"quit_words": core.QuitWords,
		"help":       core.HelpText,
	})
}

// turnResult must be called with the lock held
func (h *Handlers) turnResult(reply core.Reply) (*mcp.CallToolResult, error) {
	return jsonResult(turnResponse{
		Reply:            reply.Text,
		Summary:          reply.Summary,
		SessionEnded:     reply.Terminate,
		InteractionCount: h.session.State().InteractionCount,
		Remaining:        h.session.Remaining(),
	})
}

func jsonResult(response interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
