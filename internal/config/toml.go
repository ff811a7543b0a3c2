// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil so
// they never override flag defaults.
type FileConfig struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Notation NotationConfig `toml:"notation"`
	Layout   LayoutConfig   `toml:"layout"`
	Scan     ScanConfig     `toml:"scan"`
}

// AnalysisConfig maps the subgroup and catalog settings.
type AnalysisConfig struct {
	Limit   *int    `toml:"limit"`
	Primes  *string `toml:"primes"`
	Catalog *string `toml:"catalog"`
	DB      *string `toml:"db"`
}

// NotationConfig maps generator step sizes.
type NotationConfig struct {
	Primary    *int `toml:"primary"`
	Secondary  *int `toml:"secondary"`
	Accidental *int `toml:"accidental"`
}

// LayoutConfig maps keyboard grid settings.
type LayoutConfig struct {
	Rows   *int `toml:"rows"`
	Cols   *int `toml:"cols"`
	RowGen *int `toml:"row-gen"`
	ColGen *int `toml:"col-gen"`
	Origin *int `toml:"origin"`
}

// ScanConfig maps EDO range scan settings.
type ScanConfig struct {
	From       *int  `toml:"from"`
	To         *int  `toml:"to"`
	Top        *int  `toml:"top"`
	Workers    *int  `toml:"workers"`
	PlotHeight *int  `toml:"plot-height"`
	Plot       *bool `toml:"plot"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
