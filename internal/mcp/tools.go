// ABOUTME: MCP tool definitions and registration for the Kit onboarding server
// ABOUTME: Exposes one shared session to agents through six tools over stdio
package mcp

import (
	"github.com/harper/kit-onboarding/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, session *core.Session, logger *zap.Logger) *Handlers {
	handlers := NewHandlers(session, logger)

	// 1. send_message - one chat turn
	server.AddTool(mcp.Tool{
		Name:        "send_message",
		Description: "Send a message to Kit, the Choco-dev onboarding assistant. Reserved commands (help, reset, clear-context, add-document <path>, chocolate) are honored. Each session allows a fixed number of counted interactions before it is summarized and restarted.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "User message or reserved command",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.SendMessage)

	// 2. add_document - share a reference document
	server.AddTool(mcp.Tool{
		Name:        "add_document",
		Description: "Share a local text document with Kit so later answers can use it as reference.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Filesystem path of a UTF-8 text document",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.AddDocument)

	// 3. summarize_session - non-destructive summary
	server.AddTool(mcp.Tool{
		Name:        "summarize_session",
		Description: "Render the summary of the current session without ending it.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.SummarizeSession)

	// 4. reset_session - summary plus fresh budget
	server.AddTool(mcp.Tool{
		Name:        "reset_session",
		Description: "Restart the session. Returns the summary first when any interaction was counted.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ResetSession)

	// 5. session_status - counters and exchange log
	server.AddTool(mcp.Tool{
		Name:        "session_status",
		Description: "Get the session ID, interaction counters, and the recorded exchanges.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.SessionStatus)

	// 6. list_commands - reserved vocabulary
	server.AddTool(mcp.Tool{
		Name:        "list_commands",
		Description: "List the reserved commands Kit understands.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListCommands)

	return handlers
}
