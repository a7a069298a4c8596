package store

import (
	"errors"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Configuration keys understood in .herbview.yaml and as HERBVIEW_* env vars.
const (
	KeyCatalog        = "catalog"
	KeyAssetRoot      = "asset-root"
	KeyStatePath      = "state-path"
	KeyLogFile        = "log-file"
	KeyFPS            = "fps"
	KeyDamping        = "damping"
	KeyViewerMinWidth = "viewer-min-width"
	KeyInfoMinWidth   = "info-min-width"
	KeyWatch          = "watch"
)

// Config is the resolved runtime configuration.
type Config struct {
	Catalog        string  `json:"catalog"`
	AssetRoot      string  `json:"assetRoot,omitempty"`
	StatePath      string  `json:"statePath"`
	LogFile        string  `json:"logFile,omitempty"`
	FPS            int     `json:"fps"`
	Damping        float64 `json:"damping"`
	ViewerMinWidth int     `json:"viewerMinWidth"`
	InfoMinWidth   int     `json:"infoMinWidth"`
	Watch          bool    `json:"watch"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCatalog, "./data/herbs.json")
	v.SetDefault(KeyAssetRoot, "")
	v.SetDefault(KeyStatePath, "~/.herbview.db")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyFPS, 30)
	v.SetDefault(KeyDamping, 0.05)
	v.SetDefault(KeyViewerMinWidth, 32)
	v.SetDefault(KeyInfoMinWidth, 26)
	v.SetDefault(KeyWatch, true)
}

// LoadConfig reads .herbview.yaml from $HERBVIEW_CONFIG_PATH or the working
// directory, overlays HERBVIEW_* environment variables and returns the result.
// A missing config file is not an error.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.GetViper())
}

// LoadConfigFrom is LoadConfig against an explicit viper instance, so callers
// can bind command flags first.
func LoadConfigFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetConfigName(".herbview") // .yaml is implicit
	v.SetEnvPrefix("HERBVIEW")
	v.AutomaticEnv()

	if override := os.Getenv("HERBVIEW_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return FromViper(v)
}

// FromViper snapshots the configuration without touching config files.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Catalog:        v.GetString(KeyCatalog),
		AssetRoot:      v.GetString(KeyAssetRoot),
		StatePath:      v.GetString(KeyStatePath),
		LogFile:        v.GetString(KeyLogFile),
		FPS:            v.GetInt(KeyFPS),
		Damping:        v.GetFloat64(KeyDamping),
		ViewerMinWidth: v.GetInt(KeyViewerMinWidth),
		InfoMinWidth:   v.GetInt(KeyInfoMinWidth),
		Watch:          v.GetBool(KeyWatch),
	}
	var err error
	for _, p := range []*string{&cfg.AssetRoot, &cfg.StatePath, &cfg.LogFile} {
		if *p == "" {
			continue
		}
		if *p, err = homedir.Expand(*p); err != nil {
			return nil, err
		}
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Damping <= 0 || cfg.Damping >= 1 {
		cfg.Damping = 0.05
	}
	if cfg.ViewerMinWidth < 1 {
		cfg.ViewerMinWidth = 1
	}
	if cfg.InfoMinWidth < 1 {
		cfg.InfoMinWidth = 1
	}
	return cfg, nil
}
