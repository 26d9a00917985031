package cli

import (
	"fmt"

	"github.com/refdata-labs/genomereg/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write genomereg defaults stored at ~/.genomereg/config.yaml.

Recognized keys: registry_path, system_name. A stored value is used when
the matching flag is omitted.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !config.KnownKey(key) {
			return fmt.Errorf("unknown config key %q (recognized: %s, %s)",
				key, config.KeyRegistryPath, config.KeySystemName)
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.KnownKey(args[0]) {
			return fmt.Errorf("unknown config key %q (recognized: %s, %s)",
				args[0], config.KeyRegistryPath, config.KeySystemName)
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
