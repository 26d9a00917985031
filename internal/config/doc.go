// Package config manages user-level settings stored at ~/.genomereg/config.yaml.
// It provides functions to load, read, and write configuration keys such as the
// registry path and system name used when the corresponding flags are omitted.
package config
