package cli

import (
	"fmt"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

var (
	registerGenomeMetadataFile string
	registerGenomeInputDir     string
)

func init() {
	registerGenomeCmd.Flags().StringVar(&registerGenomeMetadataFile, "genome-metadata-file", "",
		"JSON file describing the genome (id, species, release, assembly)")
	registerGenomeCmd.Flags().StringVar(&registerGenomeInputDir, "input-dir", "",
		"Directory holding the prepared genome files")
	registerGenomeCmd.MarkFlagRequired("genome-metadata-file")
	registerGenomeCmd.MarkFlagRequired("input-dir")
	rootCmd.AddCommand(registerGenomeCmd)
}

var registerGenomeCmd = &cobra.Command{
	Use:   "register-genome",
	Short: "Register a prepared genome in the registry",
	Long: `Register a prepared genome in the registry.

The input directory must hold exactly one file matching each expected
pattern: the genome fasta, annotation GTF, transcriptome fasta, refflat,
rRNA interval list, and a star-index directory. Files are copied into the
registry tree and recorded in the release config with paths for every
registered mount.`,
	RunE: runRegisterGenome,
}

func runRegisterGenome(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}
	mount, err := requireSystemName()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "register-genome")
	if err != nil {
		return err
	}
	defer closeLog()

	meta, err := registry.LoadMetadataFile(registerGenomeMetadataFile)
	if err != nil {
		return err
	}
	g, err := registry.RegisterGenome(root, mount, *meta, registerGenomeInputDir, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered genome %s (%s, release %d)\n",
		g.ID, g.Base.Metadata.Species, g.Base.Metadata.Release)
	return nil
}
