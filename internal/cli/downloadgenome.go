package cli

import (
	"fmt"

	"github.com/refdata-labs/genomereg/internal/ensembl"
	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/spf13/cobra"
)

var (
	downloadSpecies  string
	downloadRelease  int
	downloadAssembly string
	downloadUseCwd   bool
)

func init() {
	downloadGenomeCmd.Flags().StringVar(&downloadSpecies, "species", "", "species to download, e.g. homo_sapiens")
	downloadGenomeCmd.Flags().IntVar(&downloadRelease, "release", 0, "Ensembl release number")
	downloadGenomeCmd.Flags().StringVar(&downloadAssembly, "assembly-name", "", "assembly name (defaults to the species' current assembly)")
	downloadGenomeCmd.Flags().BoolVar(&downloadUseCwd, "use-cwd", false, "download into the current directory instead of the registry")
	downloadGenomeCmd.MarkFlagRequired("species")
	downloadGenomeCmd.MarkFlagRequired("release")
	rootCmd.AddCommand(downloadGenomeCmd)
}

var downloadGenomeCmd = &cobra.Command{
	Use:   "download-genome",
	Short: "Download a genome's source files from Ensembl",
	Long: `Download the GTF and DNA fasta for a species and release from the public
Ensembl mirror, preferring the primary assembly sequence and falling back
to the toplevel one. A metadata.json ready for register-genome is written
alongside the downloads.`,
	RunE: runDownloadGenome,
}

func runDownloadGenome(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "download-genome")
	if err != nil {
		return err
	}
	defer closeLog()

	meta, err := ensembl.NewClient().DownloadGenome(root, downloadSpecies, downloadRelease, downloadAssembly, downloadUseCwd, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s release %d (%s)\n", meta.Species, meta.Release, meta.Assembly)
	return nil
}
