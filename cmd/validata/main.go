// validata is a small CLI for running the profiling engine against
// local CSV files without the HTTP server or a database.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/validata/backend/internal/dataset"
)

var rootCmd = &cobra.Command{
	Use:   "validata",
	Short: "Validata: profile CSV files and suggest data-quality checks",
}

var profileCmd = &cobra.Command{
	Use:   "profile <file.csv>",
	Short: "Profile a CSV file and print column statistics as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		ing, err := dataset.Ingest(raw, filepath.Base(path))
		if err != nil {
			return err
		}
		t, err := dataset.ParseTable(raw)
		if err != nil {
			return err
		}
		a, err := dataset.Profile(t, ing.Columns)
		if err != nil {
			return err
		}

		out := map[string]any{
			"name":            ing.Name,
			"columns":         a.Columns,
			"rowCount":        ing.RowCount,
			"recommendations": a.Recommendations,
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
