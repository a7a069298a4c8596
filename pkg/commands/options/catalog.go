package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/herbview/pkg/store"
)

// CatalogOptions locate the catalog document and its assets.
type CatalogOptions struct {
	Catalog   string
	AssetRoot string
}

// AddCatalogArgs registers persistent catalog flags and binds them to the
// configuration keys, so flags win over .herbview.yaml and HERBVIEW_* vars.
func AddCatalogArgs(cmd *cobra.Command, o *CatalogOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.Catalog, store.KeyCatalog, "f", "",
		"Catalog document, a file path or http(s) URL.")
	flags.StringVar(&o.AssetRoot, store.KeyAssetRoot, "",
		"Directory rooted model paths of a file catalog resolve against.")
	_ = viper.BindPFlag(store.KeyCatalog, flags.Lookup(store.KeyCatalog))
	_ = viper.BindPFlag(store.KeyAssetRoot, flags.Lookup(store.KeyAssetRoot))
}
