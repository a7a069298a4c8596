package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/herbview/pkg/commands/options"
	"tableflip.dev/herbview/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	uo := &options.UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the full-screen viewer",
		Example: `
herbview ui
herbview ui --model kanzo
herbview ui -f https://example.com/herbs.json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, src, err := resolve()
			if err != nil {
				return err
			}
			i := ui.UI{
				Config:   cfg,
				Source:   src,
				Location: uo.Location,
				Model:    uo.Model,
			}
			return i.Do(context.Background())
		},
	}

	options.AddUIArgs(cmd, uo)
	_ = cmd.RegisterFlagCompletionFunc("model", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return idCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
