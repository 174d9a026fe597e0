package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sant0-9/sharpen/internal/config"
	"github.com/sant0-9/sharpen/internal/llm"
	"github.com/sant0-9/sharpen/internal/llmjson"
	"github.com/sant0-9/sharpen/internal/logging"
	"github.com/sant0-9/sharpen/internal/refine"
	"github.com/sant0-9/sharpen/internal/style"
	"github.com/sant0-9/sharpen/internal/tokens"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sharpen",
		Short: "Diagnose vague LLM prompts and turn them into sharp ones",
		Long: `sharpen checks a prompt against six criteria (outcome, output format,
constraints, context, process/rubric, uncertainty handling), asks about
what's missing and rewrites the prompt with your answers.

Run without a subcommand to open the terminal UI.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newTUICmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDiagnoseCmd())
	cmd.AddCommand(newTokensCmd())
	cmd.AddCommand(newRefineCmd())
	cmd.AddCommand(newStylesCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// env is what every command needs
type env struct {
	cfg        *config.Config
	needsSetup bool
	logger     *logrus.Logger
	counter    *tokens.Counter
	styles     *style.Index
	close      func() error
}

// loadEnv reads the config and builds the logger. toFile sends logs to the
// configured log file instead of stderr.
func loadEnv(cmd *cobra.Command, toFile bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	needsSetup := cfg == nil
	if needsSetup {
		cfg = config.DefaultConfig()
	}

	opts := logging.Options{
		Level:  cfg.Logging.Level,
		Output: cmd.ErrOrStderr(),
	}
	opts.Override, _ = cmd.Flags().GetString("log-level")
	if toFile {
		path, err := cfg.LogPath()
		if err != nil {
			return nil, err
		}
		opts.File = path
	}

	logger, closer, err := logging.New(opts)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	llmjson.SetLogger(logger)

	stylesDir, err := config.StylesDir()
	if err != nil {
		closer()
		return nil, err
	}
	styles, err := style.NewIndex(stylesDir, logger)
	if err != nil {
		closer()
		return nil, fmt.Errorf("load styles: %w", err)
	}

	return &env{
		cfg:        cfg,
		needsSetup: needsSetup,
		logger:     logger,
		counter:    newCounter(cfg, logger),
		styles:     styles,
		close:      closer,
	}, nil
}

func newCounter(cfg *config.Config, logger logrus.FieldLogger) *tokens.Counter {
	if cfg.Encoding == tokens.EncodingEstimate {
		return tokens.NewCounter(nil, logger)
	}
	return tokens.NewCounter(tokens.NewTiktoken(cfg.Encoding), logger)
}

// newRefiner builds a refiner for the configured provider
func (e *env) newRefiner() (*refine.Refiner, error) {
	return refinerFor(e.cfg, e.styles, e.logger)
}

func refinerFor(cfg *config.Config, styles *style.Index, logger logrus.FieldLogger) (*refine.Refiner, error) {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return refine.NewRefiner(provider, cfg.Model, logger).WithStyles(styles), nil
}

// readInput joins args into one prompt, or reads stdin when args are empty or "-"
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
