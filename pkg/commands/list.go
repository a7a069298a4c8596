package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/commands/options"
	"tableflip.dev/herbview/pkg/filter"
	"tableflip.dev/herbview/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list [keyword]",
		Aliases: []string{"ls", "get"},
		Short:   "list catalog items",
		Example: `
herbview list
herbview list radix
herbview list --tag 根 --show-id
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				fo.Keyword = args[0]
			}
			_, src, err := resolve()
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				Source: src,
				Loader: &catalog.Loader{},
				Query:  filter.Query{Keyword: fo.Keyword, Tag: fo.Tag},
				ShowID: io.ShowID,
				JSON:   oo.JSON,
			}
			err = l.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	_ = cmd.RegisterFlagCompletionFunc("tag", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return tagCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
