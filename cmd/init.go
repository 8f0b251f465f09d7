package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create an example project file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("start", "", "project start date (YYYY-MM-DD, default next Monday)")
	initCmd.Flags().Bool("force", false, "overwrite an existing project file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := projectPath(cmd)
	if _, err := os.Stat(path); err == nil {
		if force, _ := cmd.Flags().GetBool("force"); !force {
			return fmt.Errorf("%s already exists; use --force to overwrite", path)
		}
	}

	name := "project"
	if len(args) == 1 {
		name = args[0]
	}

	start, err := startDate(cmd)
	if err != nil {
		return err
	}

	if err := project.Save(path, project.Scaffold(name, start)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

// startDate resolves the --start flag, defaulting to the Monday after
// the current date.
func startDate(cmd *cobra.Command) (time.Time, error) {
	if s, _ := cmd.Flags().GetString("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --start %q, want YYYY-MM-DD", s)
		}
		return t, nil
	}
	now := time.Now().UTC()
	days := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days), nil
}
