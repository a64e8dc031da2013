// Package config holds the extension's tunable sizes and timings, with TOML
// file loading and optional hot reload.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config configures table editing behavior. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// HandleSize is the hit-zone thickness around cell borders, in pixels.
	HandleSize int `toml:"handle_size"`

	// MinColumnWidth is the smallest width a column can be resized to.
	MinColumnWidth int `toml:"min_column_width"`

	// MinRowHeight is the smallest height a row can be resized to.
	MinRowHeight int `toml:"min_row_height"`

	// MinTableWidth is the smallest width a table corner drag can reach.
	MinTableWidth int `toml:"min_table_width"`

	// MinTableHeight is the smallest height a table corner drag can reach.
	MinTableHeight int `toml:"min_table_height"`

	// HoverHideDelay is the grace period before hover buttons hide after
	// the pointer leaves a table.
	HoverHideDelay time.Duration `toml:"hover_hide_delay"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		HandleSize:     5,
		MinColumnWidth: 30,
		MinRowHeight:   20,
		MinTableWidth:  50,
		MinTableHeight: 30,
		HoverHideDelay: 300 * time.Millisecond,
	}
}

// Normalize replaces non-positive values with defaults. Out-of-range input
// degrades rather than failing.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.HandleSize <= 0 {
		c.HandleSize = def.HandleSize
	}
	if c.MinColumnWidth <= 0 {
		c.MinColumnWidth = def.MinColumnWidth
	}
	if c.MinRowHeight <= 0 {
		c.MinRowHeight = def.MinRowHeight
	}
	if c.MinTableWidth <= 0 {
		c.MinTableWidth = def.MinTableWidth
	}
	if c.MinTableHeight <= 0 {
		c.MinTableHeight = def.MinTableHeight
	}
	if c.HoverHideDelay <= 0 {
		c.HoverHideDelay = def.HoverHideDelay
	}
	return c
}

// Load reads configuration from a TOML file, merged over defaults. A missing
// file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg.Normalize(), nil
}
