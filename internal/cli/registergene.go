package cli

import (
	"fmt"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

var (
	registerGeneFasta    string
	registerGeneYAMLFile string
)

func init() {
	registerGeneCmd.Flags().StringVar(&registerGeneFasta, "fasta", "",
		"Fasta file holding the gene's single sequence record")
	registerGeneCmd.Flags().StringVar(&registerGeneYAMLFile, "yaml-file", "",
		"YAML gene model holding exactly one gene")
	registerGeneCmd.MarkFlagRequired("fasta")
	registerGeneCmd.MarkFlagRequired("yaml-file")
	rootCmd.AddCommand(registerGeneCmd)
}

var registerGeneCmd = &cobra.Command{
	Use:   "register-gene",
	Short: "Register a user-defined gene",
	Long: `Register a user-defined gene: a single-record fasta plus the first version
of its YAML gene model. The gene id comes from the model and must match the
fasta record header. Both files must end with a newline.`,
	RunE: runRegisterGene,
}

func runRegisterGene(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}
	mount, err := requireSystemName()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "register-gene")
	if err != nil {
		return err
	}
	defer closeLog()

	gene, err := registry.RegisterUserGene(root, mount, registerGeneFasta, registerGeneYAMLFile, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered gene %s (model version %d)\n", gene.ID, gene.Latest())
	return nil
}
