// ABOUTME: Chat command runs the interactive onboarding conversation
// ABOUTME: Wires configuration, backend, knowledge, session, and shell together
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/kit-onboarding/internal/config"
	"github.com/harper/kit-onboarding/internal/core"
	"github.com/harper/kit-onboarding/internal/knowledge"
	"github.com/harper/kit-onboarding/internal/llm"
	"github.com/harper/kit-onboarding/internal/shell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newGenerator builds the generation backend; replaced in tests
var newGenerator = llm.New

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive onboarding chat",
		Long: `Start an interactive onboarding chat with Kit.

Type a question and press enter. Reserved commands:
  help                  list the commands
  reset                 summarize and start a new session
  clear-context         forget the conversation so far
  add-document <path>   share a text document with Kit
  chocolate             a sweet surprise
  quit / exit / leave   end the chat with a summary`,
		RunE: runChat,
		Example: `  # Chat with the default Gemini backend
  kit

  # Use OpenAI and the per-exchange digest summary
  kit chat --backend openai --policy digest`,
	}

	return cmd
}

// runChat starts the interactive shell
func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return startupError(err)
	}

	session, err := buildSession(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh := shell.New(session, cmd.InOrStdin(), cmd.OutOrStdout(), shell.Options{
		Markdown: cfg.RenderMarkdown,
		Logger:   logger,
	})
	return sh.Run(ctx)
}

// buildSession creates the backend and a session configured from cfg
func buildSession(cfg *config.Config) (*core.Session, error) {
	gen, err := newGenerator(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Backend, err)
	}

	companyKnowledge := knowledge.Load(cfg.KnowledgePath, logger)
	sessionCfg, err := core.NewSessionConfig(cfg, knowledge.SystemInstruction(companyKnowledge), logger)
	if err != nil {
		return nil, err
	}

	session, err := core.NewSession(gen, sessionCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	logger.Info("session ready",
		zap.String("backend", gen.Name()),
		zap.String("session_id", session.State().SessionID))
	return session, nil
}

// contextOrBackground guards against commands executed without a context
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
