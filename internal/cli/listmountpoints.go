package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

var listMountpointsJSON bool

func init() {
	listMountpointsCmd.Flags().BoolVar(&listMountpointsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listMountpointsCmd)
}

var listMountpointsCmd = &cobra.Command{
	Use:   "list-mountpoints",
	Short: "List the mounts the registry is reachable by",
	RunE:  runListMountpoints,
}

func runListMountpoints(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "list-mountpoints")
	if err != nil {
		return err
	}
	defer closeLog()

	table, err := registry.LoadMountTable(root)
	if err != nil {
		return err
	}
	log.Info("listing mounts", "count", len(table.Mounts))

	if listMountpointsJSON {
		data, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	names := make([]string, 0, len(table.Mounts))
	for name := range table.Mounts {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMOUNT PATH")
	for _, name := range names {
		label := name
		if name == table.DefaultMount {
			label += " (default)"
		}
		fmt.Fprintf(w, "%s\t%s\n", label, table.Mounts[name])
	}
	return w.Flush()
}
