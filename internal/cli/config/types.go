// Package config provides configuration management for the aliasmap CLI.
//
// Values are layered with koanf: built-in defaults, then an optional config
// file (aliasmap.yaml, aliasmap.yml or aliasmap.toml), then ALIASMAP_
// environment variables, then command-line flags.
package config

import (
	"time"

	"github.com/nodesetexporter/aliasmap/internal/nodeids"
)

// Config holds all CLI configuration options.
type Config struct {
	NodeIDsPath     string             `koanf:"nodeids_path"`
	HeaderPath      string             `koanf:"path_to_header"`
	HeaderRow       nodeids.HeaderMode `koanf:"header_row"`
	Delimiter       string             `koanf:"delimiter"`
	ValidateNodeIDs bool               `koanf:"validate_node_ids"`
	Verbose         bool               `koanf:"verbose"`
	Quiet           bool               `koanf:"quiet"`
	OutputFormat    string             `koanf:"output"`
	Watch           WatchConfig        `koanf:"watch"`

	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values.
const (
	DefaultNodeIDsPath = "NodeIds.csv"
	DefaultHeaderPath  = "DatatypeAliases.h"
	DefaultHeaderRow   = "detect"
	DefaultDelimiter   = ","
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultDebounce    = 100 * time.Millisecond
	EnvPrefix          = "ALIASMAP_"
)

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		NodeIDsPath:  DefaultNodeIDsPath,
		HeaderPath:   DefaultHeaderPath,
		HeaderRow:    nodeids.HeaderDetect,
		Delimiter:    DefaultDelimiter,
		OutputFormat: DefaultOutput,
		Watch:        WatchConfig{Debounce: DefaultDebounce},
	}
}

// ParseOptions returns the registry parsing options. Call Validate first;
// an invalid delimiter falls back to a comma.
func (c *Config) ParseOptions() nodeids.Options {
	delim, err := c.DelimiterRune()
	if err != nil {
		delim = ','
	}
	return nodeids.Options{
		Delimiter:       delim,
		Header:          c.HeaderRow,
		ValidateNodeIDs: c.ValidateNodeIDs,
	}
}
