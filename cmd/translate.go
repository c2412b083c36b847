package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqgen/internal/assist"
	"github.com/abhisek/mcqgen/internal/store"
)

func newTranslateCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "translate <file>",
		Short:   "Translate a saved question set",
		Example: `  mcqgen translate mcq_physics_20260102_030405.json -l spanish --save`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("language")
			lang, err := assist.ParseLanguage(name)
			if err != nil {
				return err
			}

			set, err := store.Load(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			provider, err := env.provider(ctx)
			if err != nil {
				return err
			}
			svc := assist.NewService(provider, assist.DefaultConfig(), env.logger())

			env.out.Status("Translating questions to %s...", strings.ToUpper(lang))
			translated, err := svc.TranslateSet(ctx, set, lang, func(done, total int) {
				env.out.Progress("Translating question", done, total)
			})
			env.out.Done()
			if err != nil {
				return err
			}

			env.out.Questions(translated, false)

			if save, _ := cmd.Flags().GetBool("save"); save {
				path, err := store.Save(translated, store.TranslatedPath(args[0], lang))
				if err != nil {
					return err
				}
				env.out.Success("Questions saved to '%s'", path)
			}
			return nil
		},
	}
	cmd.Flags().StringP("language", "l", "", "Target language: "+strings.Join(assist.Languages, ", "))
	cmd.Flags().Bool("save", false, "Save the translation next to the source file")
	_ = cmd.MarkFlagRequired("language")
	return cmd
}
