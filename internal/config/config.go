package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for the gantry CLI.
// Values are populated from .gantry.yaml, GANTRY_* env vars, and CLI
// flags. Scheduling parameters themselves live in the project file;
// this covers tool behavior around the scheduler.
type Config struct {
	ProjectFile string `mapstructure:"project_file"`
	HistoryDB   string `mapstructure:"history_db"`
	JournalPath string `mapstructure:"journal_path"`
	Color       bool   `mapstructure:"color"`
	Verbose     bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for
// any values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("project_file", "tasks.toml")
	viper.SetDefault("history_db", ".gantry.db")
	viper.SetDefault("journal_path", "")
	viper.SetDefault("color", true)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
