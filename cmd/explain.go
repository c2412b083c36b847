package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqgen/internal/assist"
	"github.com/abhisek/mcqgen/internal/mcq"
)

// assistFunc is one of the single-question assist operations.
type assistFunc func(s *assist.Service, ctx context.Context, q mcq.Question, maxTokens int) (string, error)

func newExplainCmd(env *environment) *cobra.Command {
	return newQuestionAssistCmd(env, "explain <file>",
		"Explain the answer to a question",
		"Generating explanation for Question %d...",
		"Explanation",
		(*assist.Service).Explain,
	)
}

func newPrerequisitesCmd(env *environment) *cobra.Command {
	return newQuestionAssistCmd(env, "prerequisites <file>",
		"List the background knowledge a question needs",
		"Fetching prerequisite knowledge for Question %d...",
		"Prerequisites",
		(*assist.Service).Prerequisites,
	)
}

func newQuestionAssistCmd(env *environment, use, short, status, title string, run assistFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("question-num")
			maxTokens, _ := cmd.Flags().GetInt("max-tokens")

			set, q, err := loadQuestion(args[0], n)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			provider, err := env.provider(ctx)
			if err != nil {
				return err
			}
			svc := assist.NewService(provider, assist.DefaultConfig(), env.logger())

			env.out.Status(status, n)
			text, err := run(svc, ctx, q, maxTokens)
			if err != nil {
				return err
			}

			env.out.Question(n, q, set.Type.Binary(), true)
			env.out.Section(fmt.Sprintf("%s (Question %d)", title, n), text)
			return nil
		},
	}
	cmd.Flags().IntP("question-num", "q", 0, "Question number, starting at 1 (required)")
	cmd.Flags().Int("max-tokens", 1500, "Response token budget")
	_ = cmd.MarkFlagRequired("question-num")
	return cmd
}
