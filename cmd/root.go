// Package cmd implements the gantry command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/project"
	"github.com/papapumpkin/gantry/internal/schedule"
)

var rootCmd = &cobra.Command{
	Use:   "gantry",
	Short: "Dependency-aware project scheduler",
	Long: "Gantry computes start and end dates for a project's tasks from their\n" +
		"estimates and dependencies: critical-path analysis, per-assignee\n" +
		"resource leveling, and manual pins, rendered as tables or a Gantt chart.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .gantry.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "project file (default tasks.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".gantry")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("GANTRY")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// projectPath resolves the project file: the --file flag wins over
// configuration.
func projectPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return path
	}
	return config.Load().ProjectFile
}

// loadProject reads the project file for a command.
func loadProject(cmd *cobra.Command) (*project.Project, error) {
	return project.Load(projectPath(cmd))
}

// computeProject loads the project and schedules it.
func computeProject(cmd *cobra.Command) (*project.Project, []schedule.ScheduledTask, error) {
	p, err := loadProject(cmd)
	if err != nil {
		return nil, nil, err
	}
	sched, err := schedule.Compute(p.Tasks, p.Config)
	if err != nil {
		return nil, nil, err
	}
	return p, sched, nil
}
