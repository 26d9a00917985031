package cli

import (
	"encoding/json"
	"fmt"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

var listGenesJSON bool

func init() {
	listGenesCmd.Flags().BoolVar(&listGenesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listGenesCmd)
}

var listGenesCmd = &cobra.Command{
	Use:   "list-genes",
	Short: "List the registered user-defined genes",
	RunE:  runListGenes,
}

func runListGenes(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "list-genes")
	if err != nil {
		return err
	}
	defer closeLog()

	ids, err := registry.ListUserGenes(root, log)
	if err != nil {
		return err
	}
	log.Info("listing genes", "count", len(ids))

	if listGenesJSON {
		data, err := json.MarshalIndent(ids, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No registered genes found.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Available user-defined genes by ID:")
	for _, id := range ids {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", id)
	}
	return nil
}
