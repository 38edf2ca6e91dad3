package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the project-level default configuration, loaded from
// .llkgen.toml if present in the working directory.
type Config struct {
	K       int    `toml:"k"`
	Imports string `toml:"imports"`
	OutDir  string `toml:"out_dir"`
}

// defaultConfig mirrors the generator's own defaults when no project file
// is present.
func defaultConfig() Config {
	return Config{K: 1, Imports: "", OutDir: "."}
}

// LoadConfig reads path (typically ".llkgen.toml"); a missing file is not
// an error, it just yields defaultConfig().
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.K <= 0 {
		cfg.K = 1
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return cfg, nil
}
