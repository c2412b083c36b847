package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mcqgen/internal/practice"
	"github.com/abhisek/mcqgen/internal/store"
)

func newPracticeCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "practice <file>",
		Short: "Answer a saved question set interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := store.Load(args[0])
			if err != nil {
				return err
			}
			if len(set.Questions) == 0 {
				env.out.Warn("No questions to practice in '%s'", args[0])
				return nil
			}

			m, err := practice.Run(set)
			if err != nil {
				return err
			}

			correct, answered := m.Score()
			env.logger().Info("practice finished",
				zap.String("file", args[0]),
				zap.Int("correct", correct),
				zap.Int("answered", answered),
				zap.Int("questions", len(set.Questions)),
			)
			if answered == 0 {
				env.out.Warn("No questions answered.")
				return nil
			}
			env.out.Success("Scored %d out of %d on %s", correct, answered, set.Topic())
			return nil
		},
	}
}
