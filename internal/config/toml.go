// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Generate GenerateConfig `toml:"generate"`
	Corpus   CorpusConfig   `toml:"corpus"`
	Log      LogConfig      `toml:"log"`
}

// GenerateConfig maps generation settings. Nil fields are unset.
type GenerateConfig struct {
	Preset           *string `toml:"preset"`
	Lengths          []int   `toml:"lengths"`
	MinLength        *int    `toml:"min-length"`
	MaxLength        *int    `toml:"max-length"`
	MaxWords         *int    `toml:"max-words"`
	Stopwords        *bool   `toml:"stopwords"`
	StopwordPriority *bool   `toml:"stopword-priority"`
	Seed             *int64  `toml:"seed"`
	Naming           *string `toml:"naming"`
	Combined         *bool   `toml:"combined"`
	OutDir           *string `toml:"out"`
	History          *bool   `toml:"history"`
}

// CorpusConfig maps corpus settings.
type CorpusConfig struct {
	Dir            *string `toml:"dir"`
	IndexURL       *string `toml:"index-url"`
	Offline        *bool   `toml:"offline"`
	StopwordSource *string `toml:"stopword-source"`
}

// LogConfig maps logger settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
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
