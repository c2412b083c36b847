package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mcqgen/internal/events"
	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/logger"
	"github.com/abhisek/mcqgen/internal/present"
	"github.com/abhisek/mcqgen/internal/settings"
)

// providerFactory builds the LLM provider. Tests replace it.
type providerFactory func(ctx context.Context, cfg llm.Config, repo events.Repo, logger *zap.Logger) (llm.Provider, error)

// environment is the per-run state shared by every command. It is filled
// in by the root command's PersistentPreRunE.
type environment struct {
	settings *settings.Settings
	log      *logger.Logger
	out      *present.Presenter

	ledger      *events.Store
	newProvider providerFactory
}

func (e *environment) logger() *zap.Logger {
	if e.log == nil {
		return zap.NewNop()
	}
	return e.log.Logger
}

// provider opens the request ledger, when enabled, and builds the
// configured provider.
func (e *environment) provider(ctx context.Context) (llm.Provider, error) {
	cfg, err := e.settings.LLMConfig()
	if err != nil {
		return nil, err
	}

	var repo events.Repo
	if e.settings.EventsEnabled() {
		st, err := e.openLedger()
		if err != nil {
			// The ledger is a record, not a requirement.
			e.logger().Warn("request ledger unavailable", zap.Error(err))
		} else {
			repo = st
		}
	}

	p, err := e.newProvider(ctx, cfg, repo, e.logger())
	if err != nil {
		return nil, err
	}
	e.logger().Info("LLM provider ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model()),
	)
	return p, nil
}

func (e *environment) openLedger() (*events.Store, error) {
	if e.ledger != nil {
		return e.ledger, nil
	}
	if err := events.EnsureDir(e.settings.EventsDB); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}
	st, err := events.Open(e.settings.EventsDB)
	if err != nil {
		return nil, err
	}
	e.ledger = st
	return st, nil
}

func (e *environment) close() {
	if e.ledger != nil {
		e.ledger.Close()
		e.ledger = nil
	}
	if e.log != nil {
		e.log.Close()
		e.log = nil
	}
}

func newRootCmd(env *environment) *cobra.Command {
	root := &cobra.Command{
		Use:   "mcqgen",
		Short: "Generate multiple-choice questions with an LLM",
		Long: "mcqgen generates, stores, translates and explains multiple-choice questions\n" +
			"using an LLM provider such as Perplexity, OpenAI, Anthropic, Gemini or Ollama.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("provider", "", "LLM provider (overrides the saved setting and MCQGEN_PROVIDER)")
	pf.String("model", "", "Model name for the provider")
	pf.String("base-url", "", "Endpoint override for OpenAI-compatible providers and Ollama")
	pf.String("log-file", "", "Log file path (default $XDG_STATE_HOME/mcqgen/mcqgen.log)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("events-db", "", `Request ledger database (default $XDG_DATA_HOME/mcqgen/events.db, "off" to disable)`)
	pf.String("env-file", ".env", "Dotenv file with API keys")
	pf.Bool("no-color", false, "Disable colored output")

	root.AddCommand(
		newInitModelCmd(env),
		newGenerateCmd(env),
		newGenerateBinaryCmd(env),
		newLoadCmd(env),
		newExplainCmd(env),
		newPrerequisitesCmd(env),
		newTranslateCmd(env),
		newSimilarCmd(env),
		newPracticeCmd(env),
		newInfoCmd(env),
		newLLMCmd(env),
		newVersionCmd(),
	)
	return root
}

func (e *environment) setup(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	exported, err := settings.LoadDotEnv(envFile)
	if err != nil {
		return err
	}

	s, err := settings.Load(cmd.Flags())
	if err != nil {
		return err
	}
	e.settings = s

	log, err := logger.New(s.LogFile, s.LogLevel)
	if err != nil {
		return err
	}
	e.log = log

	noColor, _ := cmd.Flags().GetBool("no-color")
	e.out = present.New(cmd.OutOrStdout(), noColor)

	e.logger().Debug("command started",
		zap.String("command", cmd.CommandPath()),
		zap.String("settings", s.ConfigFile),
		zap.Strings("dotenv", exported),
	)
	return nil
}

// Execute runs the command line. Failures are written to the log before
// being returned.
func Execute(ctx context.Context) error {
	env := &environment{newProvider: llm.NewProvider}
	defer env.close()

	err := newRootCmd(env).ExecuteContext(ctx)
	if err != nil {
		env.logger().Error("command failed", zap.Error(err))
	}
	return err
}
