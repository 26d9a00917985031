package cli

import (
	"fmt"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

var updateGeneYAMLFile string

func init() {
	updateGeneCmd.Flags().StringVar(&updateGeneYAMLFile, "yaml-file", "",
		"YAML gene model holding exactly one gene")
	updateGeneCmd.MarkFlagRequired("yaml-file")
	rootCmd.AddCommand(updateGeneCmd)
}

var updateGeneCmd = &cobra.Command{
	Use:   "update-gene",
	Short: "Add a new model version to a registered gene",
	Long: `Add a new model version to an already-registered user-defined gene.

The model's gene id selects the gene. The new version is stored next to the
previous latest version and rejected if it is byte-identical to any version
already stored.`,
	RunE: runUpdateGene,
}

func runUpdateGene(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}
	mount, err := requireSystemName()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "update-gene")
	if err != nil {
		return err
	}
	defer closeLog()

	version, err := registry.UpdateUserGene(root, mount, updateGeneYAMLFile, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stored model version %d\n", version)
	return nil
}
