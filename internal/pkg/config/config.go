// Package config loads aicommit settings from .env files and the environment.
package config

import "time"

// Config represents the complete aicommit configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Prompt   PromptConfig   `mapstructure:"prompt"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`

	// EnvFile is the .env file the values were read from, empty when none was found.
	EnvFile string `mapstructure:"-"`
}

// ProviderConfig contains text-generation service settings.
type ProviderConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// PromptConfig contains settings for the instruction sent with the diff.
type PromptConfig struct {
	Language string `mapstructure:"language"`
}

// UIConfig contains terminal output settings.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// LogConfig contains diagnostic output settings.
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}
