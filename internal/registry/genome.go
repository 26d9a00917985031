package registry

import (
	"fmt"
	"log/slog"
	"sort"
)

// Base bundles the primary source assets a genome was built from.
type Base struct {
	Metadata    Metadata `json:"metadata"`
	GenomeFasta File     `json:"genome_fasta"`
	GTF         File     `json:"gtf"`
	Description string   `json:"description,omitempty"`
}

// Genome is one registered reference genome: the primary sources plus the
// derived assets produced from them, each resolvable on every mount.
type Genome struct {
	ID                 string `json:"id"`
	DefaultMount       string `json:"default_system"`
	Base               Base   `json:"base"`
	TranscriptomeFasta File   `json:"transcriptome_fasta"`
	StarIndex          Dir    `json:"star_index"`
	RefFlat            File   `json:"refflat"`
	RRNAIntervalList   File   `json:"rrna_interval_list"`
	ActiveMount        string `json:"active_system,omitempty"`
	Description        string `json:"description,omitempty"`
}

// assets returns every path-bearing asset in a fixed order. Mount
// propagation, mount-table edits, and validation all walk this list, so a
// field added to Genome only needs to be registered here.
func (g *Genome) assets() []namedAsset {
	return []namedAsset{
		{"base/genome_fasta", &g.Base.GenomeFasta},
		{"base/gtf", &g.Base.GTF},
		{"transcriptome_fasta", &g.TranscriptomeFasta},
		{"star_index", &g.StarIndex},
		{"refflat", &g.RefFlat},
		{"rrna_interval_list", &g.RRNAIntervalList},
	}
}

// SetActiveMount activates mount on the genome and all its assets.
func (g *Genome) SetActiveMount(mount string) {
	g.ActiveMount = mount
	for _, na := range g.assets() {
		na.asset.setActiveMount(mount)
	}
}

// AddMount stores paths under a newly registered mount on every asset,
// derived from each asset's existing paths. With verify set, each derived
// path must exist on this system.
func (g *Genome) AddMount(name, base string, verify bool) error {
	for _, na := range g.assets() {
		if err := addMount(na.asset, name, base, genomesDirName, verify); err != nil {
			return fmt.Errorf("%s: %w", na.label, err)
		}
	}
	return nil
}

// RemoveMount drops the named mount's path from every asset.
func (g *Genome) RemoveMount(name string) error {
	for _, na := range g.assets() {
		if err := removeMount(na.asset, name); err != nil {
			return fmt.Errorf("%s: %w", na.label, err)
		}
	}
	return nil
}

// Info returns the genome's listing row.
func (g *Genome) Info() GenomeInfo {
	return GenomeInfo{
		ID:       g.ID,
		Release:  g.Base.Metadata.Release,
		Assembly: g.Base.Metadata.Assembly,
	}
}

// Collection is the set of genomes recorded in one release config, keyed by
// genome id.
type Collection struct {
	Genomes map[string]*Genome `json:"genomes"`
}

// SetActiveMount activates mount on every genome in the collection.
func (c *Collection) SetActiveMount(mount string) {
	for _, g := range c.Genomes {
		g.SetActiveMount(mount)
	}
}

// Validate runs the validation pass over every genome, in id order.
func (c *Collection) Validate(log *slog.Logger) *Result {
	res := &Result{}
	ids := make([]string, 0, len(c.Genomes))
	for id := range c.Genomes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		c.Genomes[id].check(res, log)
	}
	return res
}
