// ABOUTME: Root command wiring global flags, logging, and configuration loading
// ABOUTME: Running kit with no subcommand starts the interactive chat
package commands

import (
	"fmt"
	"io"

	"github.com/harper/kit-onboarding/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global flags
var (
	verbose         bool
	quiet           bool
	configPath      string
	backend         string
	summaryPolicy   string
	maxInteractions int
	knowledgePath   string
	noMarkdown      bool

	logger = zap.NewNop()
)

const banner = `
 ██╗  ██╗██╗████████╗
 ██║ ██╔╝██║╚══██╔══╝
 █████╔╝ ██║   ██║
 ██╔═██╗ ██║   ██║
 ██║  ██╗██║   ██║
 ╚═╝  ╚═╝╚═╝   ╚═╝  🍫
`

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kit",
		Short: "Kit, the Choco-dev onboarding assistant",
		Long: banner + `
Kit answers onboarding questions for new Choco-dev developers: tooling,
environment setup, pipelines and documentation. Each chat session allows a
fixed number of interactions and ends with a summary of what was covered.

Run without a subcommand to start the interactive chat.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runChat,
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	flags.StringVar(&configPath, "config", "", "YAML configuration file (or set KIT_CONFIG)")
	flags.StringVar(&backend, "backend", "", "Generation backend: gemini, openai or anthropic")
	flags.StringVar(&summaryPolicy, "policy", "", "Summary policy: topics or digest")
	flags.IntVar(&maxInteractions, "max-interactions", 0, "Counted interactions per session (1-50)")
	flags.StringVar(&knowledgePath, "knowledge", "", "Company knowledge file")
	flags.BoolVar(&noMarkdown, "no-markdown", false, "Print model replies without markdown rendering")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// newLogger builds a console logger on w at the level chosen by the flags
func newLogger(w io.Writer) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	switch {
	case verbose:
		level = zapcore.DebugLevel
	case quiet:
		level = zapcore.ErrorLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}

// loadConfig layers defaults, the optional YAML file, the environment and
// explicitly set flags, then resolves the backend credential.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}

	path := configPath
	if path == "" {
		path = getenv("KIT_CONFIG")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		if b := normalize(backend); b != cfg.Backend {
			cfg.Backend = b
			cfg.Model = ""
		}
	}
	if flags.Changed("policy") {
		cfg.SummaryPolicy = normalize(summaryPolicy)
	}
	if flags.Changed("max-interactions") {
		if err := validateInteractions(maxInteractions); err != nil {
			return nil, &config.ConfigError{Key: "--max-interactions", Err: err}
		}
		cfg.MaxInteractions = maxInteractions
	}
	if flags.Changed("knowledge") {
		cfg.KnowledgePath = knowledgePath
	}
	if noMarkdown {
		cfg.RenderMarkdown = false
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded",
		zap.String("backend", cfg.Backend),
		zap.String("model", cfg.Model),
		zap.String("summary_policy", cfg.SummaryPolicy),
		zap.String("document_policy", cfg.DocumentPolicy),
		zap.Int("max_interactions", cfg.MaxInteractions))
	return cfg, nil
}
