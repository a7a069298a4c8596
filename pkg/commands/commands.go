package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/commands/options"
	"tableflip.dev/herbview/pkg/store"
)

var (
	co = &options.CatalogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "herbview",
		Short: base.Wrap80("Browse a herb catalog and its 3D models in the terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddCatalogArgs(cmd, co)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addTags(topLevel)
	addQuiz(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// resolve loads configuration, with bound flags applied, and the catalog
// source it names.
func resolve() (*store.Config, catalog.Source, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, catalog.Source{}, err
	}
	src, err := catalog.ParseSource(cfg.Catalog)
	if err != nil {
		return nil, catalog.Source{}, err
	}
	return cfg, src, nil
}
