package cli

import (
	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

var deleteGenomeID string

func init() {
	deleteGenomeCmd.Flags().StringVar(&deleteGenomeID, "genome-id", "", "id of the genome to delete")
	deleteGenomeCmd.MarkFlagRequired("genome-id")
	rootCmd.AddCommand(deleteGenomeCmd)
}

var deleteGenomeCmd = &cobra.Command{
	Use:   "delete-genome",
	Short: "Delete a registered genome (not yet supported)",
	RunE:  runDeleteGenome,
}

func runDeleteGenome(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "delete-genome")
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info("delete requested", "genome", deleteGenomeID)
	return registry.DeleteGenome(root, deleteGenomeID)
}
