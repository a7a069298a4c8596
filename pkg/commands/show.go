package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/commands/options"
	"tableflip.dev/herbview/pkg/prompt"
	"tableflip.dev/herbview/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "show <item id>",
		Aliases: []string{"info"},
		Short:   "show one item in full",
		Example: `
herbview show kanzo
herbview show -i
`,
		Args: func(_ *cobra.Command, args []string) error {
			if i.Interactive {
				return nil
			}
			if len(args) != 1 {
				return errors.New("requires an item id")
			}
			io.ID = args[0]
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return idCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, src, err := resolve()
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Source:      src,
				Loader:      &catalog.Loader{},
				AssetRoot:   cfg.AssetRoot,
				ID:          io.ID,
				Interactive: i.Interactive,
				ShowID:      io.ShowID,
				JSON:        oo.JSON,
				Prompt:      prompt.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.InteractiveArgs(cmd, i)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
