package config

import (
	"time"
)

// Config holds every canvasedit setting.
type Config struct {
	History History `yaml:"history" toml:"history"`
	Edit    Edit    `yaml:"edit" toml:"edit"`
	Logging Logging `yaml:"logging" toml:"logging"`
	Script  Script  `yaml:"script" toml:"script"`
}

// History configures the undo/redo stacks.
type History struct {
	// MaxEntries bounds each of the undo and redo stacks.
	MaxEntries int `yaml:"max_entries" toml:"max_entries" validate:"min=1,max=100000"`
}

// Offset is a translation applied to copied elements.
type Offset struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Edit configures editing commands.
type Edit struct {
	DuplicateOffset Offset `yaml:"duplicate_offset" toml:"duplicate_offset"`
	PasteOffset     Offset `yaml:"paste_offset" toml:"paste_offset"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" validate:"oneof=json console"`
}

// Script configures the Lua scripting sandbox.
type Script struct {
	// InstructionLimit caps canvas calls per script run; 0 means unlimited.
	InstructionLimit int `yaml:"instruction_limit" toml:"instruction_limit" validate:"gte=0"`
	// Timeout aborts a script that runs too long; 0 disables it.
	Timeout time.Duration `yaml:"timeout" toml:"timeout" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History: History{MaxEntries: 100},
		Edit: Edit{
			DuplicateOffset: Offset{X: 20, Y: 20},
			PasteOffset:     Offset{X: 20, Y: 20},
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Script: Script{
			InstructionLimit: 0,
			Timeout:          5 * time.Second,
		},
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
