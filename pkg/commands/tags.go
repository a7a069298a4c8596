package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/commands/options"
	"tableflip.dev/herbview/pkg/runner/tags"
)

func addTags(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "list tags with item counts",
		Example: `
herbview tags
herbview tags --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, src, err := resolve()
			if err != nil {
				return oo.HandleError(err)
			}
			t := tags.Tags{Source: src, Loader: &catalog.Loader{}, JSON: oo.JSON}
			err = t.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
