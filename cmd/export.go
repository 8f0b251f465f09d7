package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the schedule as CSV or JSON",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("format", "csv", "output format: csv or json")
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	_, sched, err := computeProject(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	switch format, _ := cmd.Flags().GetString("format"); format {
	case "csv":
		return export.CSV(out, sched)
	case "json":
		return export.JSON(out, sched)
	default:
		return fmt.Errorf("unknown format %q, want csv or json", format)
	}
}
