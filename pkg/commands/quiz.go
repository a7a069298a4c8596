package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/commands/options"
	"tableflip.dev/herbview/pkg/prompt"
	"tableflip.dev/herbview/pkg/runner/quiz"
)

func addQuiz(topLevel *cobra.Command) {
	qo := &options.QuizOptions{}

	cmd := &cobra.Command{
		Use:   "quiz [item id]",
		Short: "answer an item's quiz question",
		Example: `
herbview quiz
herbview quiz kanzo
herbview quiz kanzo --answer 2
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return idCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, src, err := resolve()
			if err != nil {
				return err
			}
			r := quiz.Quiz{
				Source: src,
				Loader: &catalog.Loader{},
				Choice: qo.Answer - 1,
				Prompt: prompt.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
			}
			if len(args) == 1 {
				r.ID = args[0]
			}
			return r.Do(context.Background())
		},
	}

	options.AddQuizArgs(cmd, qo)

	topLevel.AddCommand(cmd)
}
