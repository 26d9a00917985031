package cli

import (
	"fmt"
	"strings"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

var (
	getGenesIDs          []string
	getGenesOutDir       string
	getGenesVersionDelim string
)

func init() {
	getGenesCmd.Flags().StringSliceVar(&getGenesIDs, "gene-ids", nil,
		"Gene ids to retrieve; append <delim><version> to pin a model version")
	getGenesCmd.Flags().StringVar(&getGenesOutDir, "outdir", ".",
		"Directory the combined outputs are written to")
	getGenesCmd.Flags().StringVar(&getGenesVersionDelim, "version-delim", ".",
		"Delimiter between gene id and version in --gene-ids")
	getGenesCmd.MarkFlagRequired("gene-ids")
	rootCmd.AddCommand(getGenesCmd)
}

var getGenesCmd = &cobra.Command{
	Use:   "get-genes",
	Short: "Write a combined fasta, gene model, and GTF for a gene set",
	Long: `Write a combined fasta, gene model, and GTF for a set of registered
user-defined genes.

Each id selects a gene's latest model version unless a version is pinned,
e.g. --gene-ids egfp.2. Outputs are named after the dot-joined gene ids, or
"custom" for sets of more than three genes, and replace existing files.`,
	RunE: runGetGenes,
}

func runGetGenes(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}
	mount, err := requireSystemName()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "get-genes")
	if err != nil {
		return err
	}
	defer closeLog()

	outputs, err := registry.GetUserGenes(root, getGenesIDs, mount, getGenesOutDir, getGenesVersionDelim, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", strings.Join(outputs, ", "))
	return nil
}
