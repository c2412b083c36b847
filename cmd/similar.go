package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqgen/internal/mcq"
	"github.com/abhisek/mcqgen/internal/problemgen"
)

func newSimilarCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <file>",
		Short: "Generate questions similar to a saved one",
		Example: `  mcqgen similar physics.json -q 2 -c 3 --save
  mcqgen similar physics.json -q 2 --free-form`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			n, _ := f.GetInt("question-num")
			count, _ := f.GetInt("count")
			maxTokens, _ := f.GetInt("max-tokens")
			freeForm, _ := f.GetBool("free-form")

			set, q, err := loadQuestion(args[0], n)
			if err != nil {
				return err
			}

			var avoid []string
			for i, other := range set.Questions {
				if i != n-1 {
					avoid = append(avoid, other.Text)
				}
			}
			req := problemgen.SimilarRequest{
				Question:  q,
				Count:     count,
				MaxTokens: maxTokens,
				Avoid:     avoid,
			}

			ctx := cmd.Context()
			provider, err := env.provider(ctx)
			if err != nil {
				return err
			}
			gen := problemgen.New(provider, problemgen.DefaultConfig(), env.logger())

			env.out.Status("Generating similar question based on Question %d...", n)
			if freeForm {
				text, err := gen.GenerateSimilarText(ctx, req)
				if err != nil {
					return err
				}
				env.out.Section("Similar questions", text)
				return nil
			}

			questions, err := gen.GenerateSimilar(ctx, req)
			if err != nil {
				return err
			}
			similar := &mcq.QuestionSet{
				Specialization: set.Specialization,
				Subfield:       set.Subfield,
				Type:           mcq.TypeMultipleChoice,
				GeneratedAt:    time.Now(),
				Questions:      questions,
			}
			return finishGenerated(cmd, env, similar, "similar ")
		},
	}

	f := cmd.Flags()
	f.IntP("question-num", "q", 0, "Question number, starting at 1 (required)")
	f.IntP("count", "c", 1, "Number of similar questions")
	f.Bool("free-form", false, "Print open questions as text instead of multiple-choice")
	f.Int("max-tokens", 1500, "Response token budget")
	addOutputFlags(cmd)
	_ = cmd.MarkFlagRequired("question-num")
	return cmd
}
