package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/settings"
)

// defaultModel is saved when init-model is run without flags.
const defaultModel = "sonar"

func newInitModelCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "init-model",
		Short: "Save the LLM provider and model to use",
		Long: "init-model writes the provider, model and base URL given by the global\n" +
			"--provider, --model and --base-url flags to the settings file. Without flags\n" +
			"it selects Perplexity's sonar model. An empty --model uses the provider's default.",
		Example: `  mcqgen init-model
  mcqgen init-model --provider openai --model gpt-4o-mini
  mcqgen init-model --provider ollama --model llama3.2 --base-url http://gpu-box:11434`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			provider, _ := f.GetString("provider")
			model, _ := f.GetString("model")
			baseURL, _ := f.GetString("base-url")

			if provider == "" {
				provider = llm.ProviderPerplexity
			}
			if p, err := llm.NormalizeProvider(provider); err == nil && p == llm.ProviderPerplexity && model == "" {
				model = defaultModel
			}

			path, err := settings.SaveModel(provider, model, baseURL)
			if err != nil {
				return err
			}

			s := *env.settings
			s.Provider, s.Model, s.BaseURL = provider, model, baseURL
			cfg, err := s.LLMConfig()
			if err != nil {
				return err
			}
			env.logger().Info("model initialized",
				zap.String("provider", cfg.Provider),
				zap.String("model", cfg.Model()),
				zap.String("settings", path),
			)
			env.out.Success("Model initialized: %s/%s", cfg.Provider, cfg.Model())
			env.out.Success("Settings saved to '%s'", path)
			if err := cfg.Validate(); err != nil {
				env.out.Warn("%v", err)
			}
			return nil
		},
	}
}
