package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mcqgen/internal/mcq"
	"github.com/abhisek/mcqgen/internal/store"
)

func newLoadCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "load <file>",
		Short:   "Display questions from a saved file",
		Example: `  mcqgen load mcq_physics_20260102_030405.json -a`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := store.Load(args[0])
			if err != nil {
				return err
			}
			showAnswers, _ := cmd.Flags().GetBool("show-answers")

			env.out.SetSummary(set, args[0])
			env.out.Questions(set, showAnswers)
			return nil
		},
	}
	cmd.Flags().BoolP("show-answers", "a", false, "Show correct answers and explanations")
	return cmd
}

// loadQuestion reads the set at path and returns its nth question.
func loadQuestion(path string, n int) (*mcq.QuestionSet, mcq.Question, error) {
	set, err := store.Load(path)
	if err != nil {
		return nil, mcq.Question{}, err
	}
	q, err := set.Question(n)
	if err != nil {
		return nil, mcq.Question{}, err
	}
	return set, q, nil
}
