package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mcqgen/internal/mcq"
	"github.com/abhisek/mcqgen/internal/problemgen"
	"github.com/abhisek/mcqgen/internal/store"
)

// errNoQuestions is returned when a response yields no usable question.
var errNoQuestions = errors.New("no questions could be parsed from the LLM response")

func newGenerateCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate multiple-choice questions",
		Example: `  mcqgen generate -s Physics -d hard -c 10
  mcqgen generate -s Biology --subfield Genetics -n 5 --correct-answers 2 --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			spec, _ := f.GetString("specialization")
			subfield, _ := f.GetString("subfield")
			difficulty, _ := f.GetString("difficulty")
			count, _ := f.GetInt("count")
			options, _ := f.GetInt("options")
			correct, _ := f.GetInt("correct-answers")
			maxTokens, _ := f.GetInt("max-tokens")

			cfg, err := mcq.NewQuestionConfig(mcq.QuestionConfig{
				Field:             spec,
				Subfield:          subfield,
				Difficulty:        mcq.Difficulty(difficulty),
				NumQuestions:      count,
				NumOptions:        options,
				NumCorrectAnswers: correct,
				MaxTokens:         maxTokens,
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			provider, err := env.provider(ctx)
			if err != nil {
				return err
			}
			gen := problemgen.New(provider, problemgen.DefaultConfig(), env.logger())

			env.out.Status("Generating %d %s questions on '%s'...", cfg.NumQuestions, cfg.Difficulty, cfg.Topic())
			set, err := gen.Generate(ctx, cfg)
			if err != nil {
				return err
			}
			return finishGenerated(cmd, env, set, "")
		},
	}

	f := cmd.Flags()
	f.StringP("specialization", "s", "", "Field of study (required)")
	f.String("subfield", "", "Narrower topic within the specialization")
	f.StringP("difficulty", "d", "medium", "Difficulty: easy, medium, hard")
	f.IntP("count", "c", 5, "Number of questions")
	f.IntP("options", "n", 4, "Options per question")
	f.Int("correct-answers", 1, "Correct answers per question (0 = None of the Above, = options for All of the Above)")
	f.IntP("max-tokens", "m", 3000, "Response token budget")
	addOutputFlags(cmd)
	_ = cmd.MarkFlagRequired("specialization")
	return cmd
}

func newGenerateBinaryCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate-binary",
		Short:   "Generate true/false or yes/no questions",
		Example: `  mcqgen generate-binary -s Chemistry -t yes_no -c 10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			spec, _ := f.GetString("specialization")
			subfield, _ := f.GetString("subfield")
			kindName, _ := f.GetString("question-type")
			difficulty, _ := f.GetString("difficulty")
			count, _ := f.GetInt("count")
			maxTokens, _ := f.GetInt("max-tokens")

			kind, err := mcq.ParseQuestionType(kindName)
			if err != nil {
				return err
			}
			cfg, err := mcq.NewBinaryConfig(mcq.BinaryConfig{
				Field:        spec,
				Subfield:     subfield,
				Difficulty:   mcq.Difficulty(difficulty),
				NumQuestions: count,
				Kind:         kind,
				MaxTokens:    maxTokens,
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			provider, err := env.provider(ctx)
			if err != nil {
				return err
			}
			gen := problemgen.New(provider, problemgen.DefaultConfig(), env.logger())

			label := strings.ReplaceAll(string(cfg.Kind), "_", "/")
			env.out.Status("Generating %d %s %s questions on '%s'...", cfg.NumQuestions, cfg.Difficulty, label, cfg.Topic())
			set, err := gen.GenerateBinary(ctx, cfg)
			if err != nil {
				return err
			}
			return finishGenerated(cmd, env, set, label+" ")
		},
	}

	f := cmd.Flags()
	f.StringP("specialization", "s", "", "Field of study (required)")
	f.String("subfield", "", "Narrower topic within the specialization")
	f.StringP("question-type", "t", string(mcq.TypeTrueFalse), "Question type: true_false, yes_no")
	f.StringP("difficulty", "d", "medium", "Difficulty: easy, medium, hard")
	f.IntP("count", "c", 5, "Number of questions")
	f.IntP("max-tokens", "m", 2000, "Response token budget")
	addOutputFlags(cmd)
	_ = cmd.MarkFlagRequired("specialization")
	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("save", false, "Save the questions to a JSON file")
	f.StringP("output", "o", "", "Output file (implies --save; default is a generated name)")
	f.BoolP("show-answers", "a", false, "Show correct answers and explanations")
}

// finishGenerated prints a generated set and saves it when asked.
func finishGenerated(cmd *cobra.Command, env *environment, set *mcq.QuestionSet, kind string) error {
	if len(set.Questions) == 0 {
		return errNoQuestions
	}
	env.out.Success("Successfully generated %d %squestions", len(set.Questions), kind)

	showAnswers, _ := cmd.Flags().GetBool("show-answers")
	env.out.Questions(set, showAnswers)

	return maybeSave(cmd, env, set, "")
}

// maybeSave writes set when --save or --output was given. fallback is
// used as the path when --output is empty; an empty fallback lets the
// store pick a name.
func maybeSave(cmd *cobra.Command, env *environment, set *mcq.QuestionSet, fallback string) error {
	save, _ := cmd.Flags().GetBool("save")
	output, _ := cmd.Flags().GetString("output")
	if !save && output == "" {
		return nil
	}
	if output == "" {
		output = fallback
	}

	path, err := store.Save(set, output)
	if err != nil {
		return err
	}
	env.logger().Info("question set saved",
		zap.String("path", path),
		zap.Int("questions", len(set.Questions)),
	)
	env.out.Success("Questions saved to '%s'", path)
	return nil
}
