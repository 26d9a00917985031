package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Patterns identifying each genome source file inside an input directory.
// Exactly one match per pattern is required.
var genomeFileGlobs = map[string]string{
	"genome_fasta":        "*dna*.[fa][fasta].gz",
	"gtf":                 "*.gtf.gz",
	"transcriptome_fasta": "*.transcriptome*.[fa][fasta].gz",
	"refflat":             "*.refflat",
	"rrna_interval_list":  "*.rrna",
	"star_index":          "star-index*",
}

// globOne resolves pattern inside dir to exactly one path.
func globOne(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("nothing matches %q in %s: %w", pattern, dir, ErrNoMatch)
	default:
		return "", fmt.Errorf("%d files match %q in %s: %w",
			len(matches), pattern, dir, ErrMultipleMatches)
	}
}

// findGenomeFiles locates every required genome input in inputDir.
func findGenomeFiles(inputDir string) (map[string]string, error) {
	found := make(map[string]string, len(genomeFileGlobs))
	for key, pattern := range genomeFileGlobs {
		path, err := globOne(inputDir, pattern)
		if err != nil {
			return nil, err
		}
		found[key] = path
	}
	return found, nil
}

// installGenomeFiles copies the located inputs into the species directory:
// primary inputs under source/, assets derived from them under derived/, and
// the aligner index at the top level keeping its directory name.
func installGenomeFiles(speciesDir string, found map[string]string) (map[string]string, error) {
	dest := make(map[string]string, len(found))
	for _, key := range []string{"genome_fasta", "gtf"} {
		d := filepath.Join(speciesDir, sourceDirName, filepath.Base(found[key]))
		if err := copyFile(found[key], d); err != nil {
			return nil, err
		}
		dest[key] = d
	}
	for _, key := range []string{"transcriptome_fasta", "refflat", "rrna_interval_list"} {
		d := filepath.Join(speciesDir, derivedDirName, filepath.Base(found[key]))
		if err := copyFile(found[key], d); err != nil {
			return nil, err
		}
		dest[key] = d
	}
	d := filepath.Join(speciesDir, filepath.Base(found["star_index"]))
	if err := copyTree(found["star_index"], d); err != nil {
		return nil, err
	}
	dest["star_index"] = d
	return dest, nil
}

// RegisterGenome copies a prepared set of genome files into the registry and
// records the genome in its release config. mount names the mount this
// command runs on. On failure, every file copied in is removed again.
func RegisterGenome(root, mount string, meta Metadata, inputDir string, log *slog.Logger) (*Genome, error) {
	if err := meta.Check(); err != nil {
		return nil, err
	}
	table, err := LoadMountTable(root)
	if err != nil {
		return nil, err
	}
	if _, ok := table.Mounts[mount]; !ok {
		return nil, fmt.Errorf("mount %q is not registered: %w", mount, ErrUnknownMount)
	}

	speciesDir := SpeciesDir(root, meta.Release, meta.Species)
	if _, err := os.Stat(speciesDir); err == nil {
		return nil, fmt.Errorf("genome files already stored at %s: %w", speciesDir, os.ErrExist)
	}
	found, err := findGenomeFiles(inputDir)
	if err != nil {
		return nil, err
	}

	log.Info("registering genome",
		"id", meta.ID, "species", meta.Species, "release", meta.Release)
	g, err := buildGenome(root, mount, meta, found, table, log)
	if err != nil {
		log.Error("genome registration failed, removing copied files", "error", err)
		os.RemoveAll(speciesDir)
		// The release directory only goes away when this genome would have
		// been the first one stored for the release.
		os.Remove(ReleaseDir(root, meta.Release))
		return nil, err
	}
	log.Info("registered genome", "id", g.ID)
	return g, nil
}

// buildGenome performs the steps that create files: install the inputs,
// assemble and validate the record, and extend the release config. The
// caller owns rollback.
func buildGenome(root, mount string, meta Metadata, found map[string]string, table *MountTable, log *slog.Logger) (*Genome, error) {
	speciesDir := SpeciesDir(root, meta.Release, meta.Species)
	dest, err := installGenomeFiles(speciesDir, found)
	if err != nil {
		return nil, err
	}

	g := newGenome(meta, table.DefaultMount, mount, dest)
	for name, base := range table.Mounts {
		if err := g.AddMount(name, base, false); err != nil {
			return nil, fmt.Errorf("attaching mount %q: %w", name, err)
		}
	}
	g.SetActiveMount(mount)
	if err := g.Validate(log).Err(); err != nil {
		return nil, fmt.Errorf("validating genome %s: %w", meta.ID, err)
	}

	cfgPath := GenomeConfigPath(root, meta.Release)
	col := &Collection{Genomes: map[string]*Genome{}}
	if _, err := os.Stat(cfgPath); err == nil {
		col, err = LoadCollection(cfgPath, mount, log)
		if err != nil {
			return nil, err
		}
		if _, ok := col.Genomes[g.ID]; ok {
			return nil, fmt.Errorf("genome %q is already registered for release %d: %w",
				g.ID, meta.Release, ErrDuplicateGenome)
		}
	}
	col.Genomes[g.ID] = g
	if err := writeJSON(cfgPath, col); err != nil {
		return nil, err
	}
	return g, nil
}

// newGenome assembles the registry record for a freshly installed genome.
// Every asset starts with a single path on the issuing mount; the remaining
// mounts are attached afterwards. Only the two fasta assets carry a source
// tag; the derived table and index records go out without one.
func newGenome(meta Metadata, defaultMount, mount string, dest map[string]string) *Genome {
	file := func(t FileType, source Source, key string) File {
		return File{
			Type: t,
			pathset: pathset{
				DefaultMount: defaultMount,
				Paths:        map[string]string{mount: dest[key]},
			},
			Source: source,
		}
	}
	return &Genome{
		ID:           meta.ID,
		DefaultMount: defaultMount,
		Base: Base{
			Metadata:    meta,
			GenomeFasta: file(TypeFasta, SourceGenome, "genome_fasta"),
			GTF:         file(TypeGTF, "", "gtf"),
		},
		TranscriptomeFasta: file(TypeFasta, SourceTranscriptome, "transcriptome_fasta"),
		StarIndex: Dir{
			Type: TypeStarIndex,
			pathset: pathset{
				DefaultMount: defaultMount,
				Paths:        map[string]string{mount: dest["star_index"]},
			},
		},
		RefFlat:          file(TypeRefFlat, "", "refflat"),
		RRNAIntervalList: file(TypeRRNAIntervalList, "", "rrna_interval_list"),
	}
}
