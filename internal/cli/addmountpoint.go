package cli

import (
	"fmt"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addMountpointCmd)
}

var addMountpointCmd = &cobra.Command{
	Use:   "add-mountpoint",
	Short: "Register the path this system reaches the registry by",
	Long: `Register the path this system reaches the registry by as a new mount
named --system-name.

Run this from the new system: --registry-path is recorded as the mount's
path, and every stored record is rewritten to carry a path for it. Every
derived path is verified to exist before anything is persisted; on any
failure the configs are restored from backup.`,
	RunE: runAddMountpoint,
}

func runAddMountpoint(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}
	mount, err := requireSystemName()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "add-mountpoint")
	if err != nil {
		return err
	}
	defer closeLog()

	if err := registry.AddMountpoint(root, mount, log); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added mount %q for %s\n", mount, root)
	return nil
}
