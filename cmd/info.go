package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// apiKeyVars are the environment variables the providers read.
var apiKeyVars = []string{
	"PERPLEXITY_API_KEY",
	"OPENAI_API_KEY",
	"ANTHROPIC_API_KEY",
	"GEMINI_API_KEY",
	"OPENROUTER_API_KEY",
	"LITELLM_API_KEY",
	"LITELLM_BASE_URL",
	"OLLAMA_HOST",
}

const quickStart = `Quick start:
  mcqgen init-model --provider openai --model gpt-4o-mini
  mcqgen generate -s "Computer Science" --subfield "Operating Systems" -c 5 --save
  mcqgen generate-binary -s Biology -t true_false -d easy
  mcqgen load <file> -a
  mcqgen explain <file> -q 1
  mcqgen translate <file> -l hindi --save
  mcqgen practice <file>`

func newInfoCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := env.settings
			cfg, err := s.LLMConfig()
			if err != nil {
				return err
			}

			events := s.EventsDB
			if !s.EventsEnabled() {
				events = "disabled"
			}
			env.out.Section("mcqgen "+version, "Generate multiple-choice questions with an LLM.")
			env.out.Table([][2]string{
				{"Provider", cfg.Provider},
				{"Model", cfg.Model()},
				{"Settings file", s.ConfigFile},
				{"Log file", s.LogFile},
				{"Log level", s.LogLevel},
				{"Request ledger", events},
			})

			var set, missing []string
			for _, name := range apiKeyVars {
				if os.Getenv(name) != "" {
					set = append(set, name)
				} else {
					missing = append(missing, name)
				}
			}
			env.out.Table([][2]string{
				{"Environment set", orNone(set)},
				{"Environment unset", orNone(missing)},
			})
			if err := cfg.Validate(); err != nil {
				env.out.Warn("%v", err)
			}

			env.out.Section("Commands", quickStart)
			return nil
		},
	}
}

func orNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
