package cli

import (
	"fmt"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the registry's temporary files",
	Long: `Remove the registry's temporary tree: downloaded source files and
recovery data left behind by interrupted mountpoint edits.`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "clean")
	if err != nil {
		return err
	}
	defer closeLog()

	report, err := registry.Clean(root, log)
	if err != nil {
		return err
	}

	if !report.Found {
		fmt.Fprintln(cmd.OutOrStdout(), "No temporary directories or files found.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d temporary files (%s).\n", report.Files, report.Size())
	return nil
}
