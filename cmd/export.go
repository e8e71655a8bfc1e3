package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagExportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the budget and its analytics to a JSON file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportDir, "dir", "o", "", "Output directory (default from config, then current dir)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	path, err := s.ExportBudgetData()
	if err != nil {
		return err
	}
	fmt.Printf("  Exported to %s\n", path)
	return nil
}
