package options

import (
	"github.com/spf13/cobra"
)

// FilterOptions narrow a listing the same way the viewer's search box and
// tag selector do.
type FilterOptions struct {
	Keyword string
	Tag     string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Keyword, "search", "s", "",
		"Case-insensitive substring of the name, latin name or id.")
	cmd.Flags().StringVarP(&o.Tag, "tag", "t", "",
		"Only items carrying this tag.")
}
