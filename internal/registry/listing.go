package registry

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
)

// GenomeInfo is one row of the genome listing.
type GenomeInfo struct {
	ID       string `json:"id"`
	Release  int    `json:"release"`
	Assembly string `json:"assembly"`
}

// GenomeListing groups the registered genomes of one species, ordered by
// release.
type GenomeListing struct {
	Species string       `json:"species"`
	Genomes []GenomeInfo `json:"genomes"`
}

// ListGenomes aggregates every release config into per-species listings,
// sorted by species name and release. The mount is inferred from the
// registry path, so listing works without naming the system.
func ListGenomes(root string, log *slog.Logger) ([]GenomeListing, error) {
	mount, err := inferMount(root)
	if err != nil {
		return nil, err
	}
	paths, err := filepath.Glob(filepath.Join(GenomeConfDir(root), "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing genome configs: %w", err)
	}

	bySpecies := make(map[string][]GenomeInfo)
	for _, path := range paths {
		col, err := LoadCollection(path, mount, log)
		if err != nil {
			return nil, err
		}
		for _, g := range col.Genomes {
			species := g.Base.Metadata.Species
			bySpecies[species] = append(bySpecies[species], g.Info())
		}
	}

	species := make([]string, 0, len(bySpecies))
	for s := range bySpecies {
		species = append(species, s)
	}
	sort.Strings(species)

	out := make([]GenomeListing, 0, len(species))
	for _, s := range species {
		rows := bySpecies[s]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Release < rows[j].Release })
		out = append(out, GenomeListing{Species: s, Genomes: rows})
	}
	return out, nil
}

// ListUserGenes returns the ids of every registered user-defined gene,
// sorted. Each config is fully validated as it loads, so a listing doubles
// as a health check of the gene registry.
func ListUserGenes(root string, log *slog.Logger) ([]string, error) {
	mount, err := inferMount(root)
	if err != nil {
		return nil, err
	}
	paths, err := filepath.Glob(filepath.Join(UserConfDir(root), "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing gene configs: %w", err)
	}

	ids := make([]string, 0, len(paths))
	for _, path := range paths {
		gene, err := LoadUserGene(path, mount, log)
		if err != nil {
			return nil, err
		}
		ids = append(ids, gene.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

// inferMount resolves the mount a registry path is reached by.
func inferMount(root string) (string, error) {
	table, err := LoadMountTable(root)
	if err != nil {
		return "", err
	}
	return table.ActiveMountFor(root)
}
