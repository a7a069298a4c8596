package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/herbview/pkg/store"
)

// UIOptions configure the full-screen viewer.
type UIOptions struct {
	Location string
	Model    string
	Watch    bool
	FPS      int
	LogFile  string
}

func AddUIArgs(cmd *cobra.Command, o *UIOptions) {
	flags := cmd.Flags()
	flags.StringVar(&o.Location, "location", "",
		"Starting location URL. Defaults to the last one used with this catalog.")
	flags.StringVarP(&o.Model, "model", "m", "",
		"Item id to open, overriding the location's model parameter.")
	flags.BoolVar(&o.Watch, store.KeyWatch, true,
		"Reload a file catalog when it changes.")
	flags.IntVar(&o.FPS, store.KeyFPS, 30,
		"Viewport frame rate.")
	flags.StringVar(&o.LogFile, store.KeyLogFile, "",
		"Write JSON logs to this file.")
	for _, key := range []string{store.KeyWatch, store.KeyFPS, store.KeyLogFile} {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}
}
