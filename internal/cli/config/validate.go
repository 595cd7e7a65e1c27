package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var validOutputs = map[string]bool{
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
	"yaml":     true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.NodeIDsPath == "" {
		return fmt.Errorf("nodeids_path is required")
	}
	if c.HeaderPath == "" {
		return fmt.Errorf("path_to_header is required")
	}
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (use: auto, text, markdown, json, yaml)", c.OutputFormat)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// DelimiterRune returns the field delimiter. "tab" and "\t" name a tab.
func (c *Config) DelimiterRune() (rune, error) {
	d := c.Delimiter
	switch strings.ToLower(d) {
	case "":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", d)
	}
	r, _ := utf8.DecodeRuneInString(d)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", d)
	}
	return r, nil
}
