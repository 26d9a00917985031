package cli

import (
	"fmt"

	"github.com/refdata-labs/genomereg/internal/logging"
	"github.com/refdata-labs/genomereg/internal/registry"
	"github.com/spf13/cobra"
)

var initGroupName string

func init() {
	initCmd.Flags().StringVar(&initGroupName, "group-name", "",
		"Group given ownership of the registry tree for shared maintenance")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new genome registry",
	Long: `Initialize a new genome registry at --registry-path.

The path may be missing or an existing empty directory. The mount named by
--system-name becomes the registry's default mount: the one every asset path
resolves against when a system has no mount of its own.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := requireRegistryPath()
	if err != nil {
		return err
	}
	mount, err := requireSystemName()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initializing genome registry at %s\n", root)
	if err := registry.Initialize(root, mount, initGroupName, cmd.OutOrStdout()); err != nil {
		return err
	}

	log, closeLog, err := logging.Open(root, "init")
	if err != nil {
		return err
	}
	defer closeLog()
	log.Info("created new genome registry", "path", root, "default_mount", mount, "version", buildVersion)

	fmt.Fprintf(cmd.OutOrStdout(), "\nRegistry initialized with default mount %q.\n", mount)
	return nil
}
