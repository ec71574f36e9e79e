// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents talk to Kit through the same session tools over stdio
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/kit-onboarding/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Kit as an MCP (Model Context Protocol) server so agents can hold an
onboarding conversation, share documents and read session summaries via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  kit mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "kit": {
  #       "command": "kit",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return startupError(err)
	}

	session, err := buildSession(cfg)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"Kit Onboarding Assistant",
		versionInfo.Version,
		mcpserver.WithToolCapabilities(false),
	)
	mcp.RegisterTools(server, session, logger)

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server starting on stdio", zap.String("backend", session.Backend()))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
