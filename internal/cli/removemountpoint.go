package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

var removeMountName string

func init() {
	removeMountpointCmd.Flags().StringVar(&removeMountName, "remove-system-name", "", "name of the mount to remove")
	removeMountpointCmd.MarkFlagRequired("remove-system-name")
	rootCmd.AddCommand(removeMountpointCmd)
}

var removeMountpointCmd = &cobra.Command{
	Use:   "remove-mountpoint",
	Short: "Remove a mount from the registry",
	Long: `Remove the mount named --remove-system-name from the registry and strip
its paths from every stored record.

The default mount and the mount this command is issued from cannot be
removed. The action is destructive and asks for confirmation; on any
failure the configs are restored from backup.`,
	RunE: runRemoveMountpoint,
}

func runRemoveMountpoint(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "remove-mountpoint")
	if err != nil {
		return err
	}
	defer closeLog()

	table, err := registry.LoadMountTable(root)
	if err != nil {
		return err
	}
	path, ok := table.Mounts[removeMountName]
	if !ok {
		return fmt.Errorf("mount %q: %w", removeMountName, registry.ErrUnknownMount)
	}

	// Both protections must hold before the operator is asked to confirm;
	// RemoveMountpoint re-checks them, but prompting for a removal that can
	// never proceed is a trap.
	issuing, err := table.ActiveMountFor(root)
	if err != nil {
		return err
	}
	if removeMountName == issuing {
		return fmt.Errorf("mount %q is in use by this command; remove it from another mount: %w",
			removeMountName, registry.ErrProtectedMount)
	}
	if removeMountName == table.DefaultMount {
		return fmt.Errorf("mount %q is the registry default and cannot be removed: %w",
			removeMountName, registry.ErrProtectedMount)
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"\nThis action will permanently remove the following mount point from the registry:\n\tsystem-name: %s\n\tmount path: %s\n\nType CONFIRM to confirm this action: ",
		removeMountName, path)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return fmt.Errorf("reading confirmation: %w", err)
	}
	if strings.TrimSpace(answer) != "CONFIRM" {
		log.Info("mount removal canceled", "mount", removeMountName)
		fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
		return nil
	}

	if err := registry.RemoveMountpoint(root, removeMountName, log); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed mount %q\n", removeMountName)
	return nil
}
