package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/refdata-labs/genomereg/internal/platform"
)

// LoadCollection decodes a release config, activates mount on every record,
// and runs the validation pass. Any violation fails the load; warnings have
// already been logged and their fingerprint refreshes are kept in memory
// only, until the collection is next written.
func LoadCollection(path, mount string, log *slog.Logger) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading genome config: %w", err)
	}
	var col Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return nil, fmt.Errorf("decoding genome config %s: %w", path, err)
	}
	col.SetActiveMount(mount)
	if err := col.Validate(log).Err(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &col, nil
}

// LoadUserGene decodes a user-defined gene config, activates mount, and runs
// the validation pass.
func LoadUserGene(path, mount string, log *slog.Logger) (*UserGene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gene config: %w", err)
	}
	var gene UserGene
	if err := json.Unmarshal(data, &gene); err != nil {
		return nil, fmt.Errorf("decoding gene config %s: %w", path, err)
	}
	gene.SetActiveMount(mount)
	if err := gene.Validate(log).Err(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &gene, nil
}

// writeJSON marshals v and writes it at path with registry file permissions,
// replacing any previous content.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, FilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return platform.Chmod(path, FilePerm)
}
