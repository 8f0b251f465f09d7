package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	cfg := Load()

	if cfg.ProjectFile != "tasks.toml" {
		t.Errorf("ProjectFile = %q, want tasks.toml", cfg.ProjectFile)
	}
	if cfg.HistoryDB != ".gantry.db" {
		t.Errorf("HistoryDB = %q, want .gantry.db", cfg.HistoryDB)
	}
	if cfg.JournalPath != "" {
		t.Errorf("JournalPath = %q, want empty", cfg.JournalPath)
	}
	if !cfg.Color {
		t.Error("Color should default to true")
	}
	if cfg.Verbose {
		t.Error("Verbose should default to false")
	}
}

func TestLoadOverride(t *testing.T) {
	viper.Reset()
	viper.Set("project_file", "plan.toml")
	viper.Set("verbose", true)
	defer viper.Reset()

	cfg := Load()
	if cfg.ProjectFile != "plan.toml" {
		t.Errorf("ProjectFile = %q, want plan.toml", cfg.ProjectFile)
	}
	if !cfg.Verbose {
		t.Error("Verbose override not applied")
	}
}
