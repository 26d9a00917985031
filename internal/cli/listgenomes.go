package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

var (
	listGenomesSpecies string
	listGenomesJSON    bool
)

func init() {
	listGenomesCmd.Flags().StringVar(&listGenomesSpecies, "species", "", "only list genomes of this species")
	listGenomesCmd.Flags().BoolVar(&listGenomesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listGenomesCmd)
}

var listGenomesCmd = &cobra.Command{
	Use:   "list-genomes",
	Short: "List the registered genomes by species",
	Long: `List every registered genome, grouped by species and ordered by release.

Each release config is fully validated as it loads, so a listing doubles
as a health check of the genome registry.`,
	RunE: runListGenomes,
}

func runListGenomes(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "list-genomes")
	if err != nil {
		return err
	}
	defer closeLog()

	listings, err := registry.ListGenomes(root, log)
	if err != nil {
		return err
	}
	if listGenomesSpecies != "" {
		filtered := listings[:0]
		for _, l := range listings {
			if l.Species == listGenomesSpecies {
				filtered = append(filtered, l)
			}
		}
		listings = filtered
	}
	log.Info("listing genomes", "species", len(listings))

	if listGenomesJSON {
		data, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(listings) == 0 {
		if listGenomesSpecies != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No registered genomes found for species %q.\n", listGenomesSpecies)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No registered genomes found.")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, l := range listings {
		fmt.Fprintf(w, "%s\n", l.Species)
		fmt.Fprintln(w, "  ID\tRELEASE\tASSEMBLY")
		for _, g := range l.Genomes {
			fmt.Fprintf(w, "  %s\t%d\t%s\n", g.ID, g.Release, g.Assembly)
		}
	}
	return w.Flush()
}
