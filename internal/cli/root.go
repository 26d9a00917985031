package cli

import (
	"fmt"
	"os"

	"github.com/refdata-labs/genomereg/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Persistent flags shared by every command. When a flag is omitted the value
// comes from ~/.genomereg/config.yaml or the GENOMEREG_* environment.
var (
	registryPath string
	systemName   string
)

var rootCmd = &cobra.Command{
	Use:   "genomereg",
	Short: "Track genome reference data across storage mounts",
	Long: `genomereg maintains a registry of genome reference data: sequence fastas,
annotation, derived aligner indexes, and user-defined gene models. The same
registry directory is reachable under different absolute paths on different
systems; genomereg records every such mount and resolves each asset to the
right physical path for the system a command runs on.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if registryPath == "" {
			registryPath = config.Get(config.KeyRegistryPath)
		}
		if systemName == "" {
			systemName = config.Get(config.KeySystemName)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry-path", "",
		"Path to the genome registry on this system (default $GENOMEREG_REGISTRY_PATH)")
	rootCmd.PersistentFlags().StringVar(&systemName, "system-name", "",
		"Name of the mount this system reaches the registry by (default $GENOMEREG_SYSTEM_NAME)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// requireRegistryPath returns the resolved registry path or an error telling
// the user how to supply one.
func requireRegistryPath() (string, error) {
	if registryPath == "" {
		return "", fmt.Errorf("no registry path: pass --registry-path or set GENOMEREG_REGISTRY_PATH")
	}
	return registryPath, nil
}

// requireSystemName returns the resolved system name or an error telling the
// user how to supply one.
func requireSystemName() (string, error) {
	if systemName == "" {
		return "", fmt.Errorf("no system name: pass --system-name or set GENOMEREG_SYSTEM_NAME")
	}
	return systemName, nil
}
