package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Metadata describes where a genome's source files came from: the species,
// the annotation release, and the assembly the sequence was taken from.
type Metadata struct {
	ID           string `json:"id"`
	Species      string `json:"species"`
	SpeciesShort string `json:"species_short"`
	Release      int    `json:"release"`
	Assembly     string `json:"assembly"`
	AssemblyType string `json:"assembly_type"`
	SequenceType string `json:"sequence_type"`
}

var assemblyTypes = []string{"pa", "tl", "primary_assembly", "toplevel"}

var sequenceTypes = []string{"dna", "dna_rm", "dna_sm"}

// Check verifies the metadata carries a usable id and recognized assembly and
// sequence descriptors.
func (m *Metadata) Check() error {
	if m.ID == "" {
		return fmt.Errorf("metadata has no id")
	}
	if m.Species == "" {
		return fmt.Errorf("metadata for %s has no species", m.ID)
	}
	if m.Release <= 0 {
		return fmt.Errorf("metadata for %s has no release", m.ID)
	}
	if !contains(assemblyTypes, m.AssemblyType) {
		return fmt.Errorf("unknown assembly type %q (valid: %s)",
			m.AssemblyType, strings.Join(assemblyTypes, ", "))
	}
	if !contains(sequenceTypes, m.SequenceType) {
		return fmt.Errorf("unknown sequence type %q (valid: %s)",
			m.SequenceType, strings.Join(sequenceTypes, ", "))
	}
	return nil
}

// LoadMetadataFile reads a genome metadata JSON file. The id is lowercased so
// registry lookups stay case-insensitive.
func LoadMetadataFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata file: %w", err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding metadata %s: %w", path, err)
	}
	m.ID = strings.ToLower(m.ID)
	return &m, nil
}

func contains(values []string, v string) bool {
	for _, val := range values {
		if v == val {
			return true
		}
	}
	return false
}
