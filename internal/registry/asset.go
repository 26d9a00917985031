package registry

import "fmt"

// FileType identifies the kind of a registered file.
type FileType string

const (
	TypeFasta            FileType = "fasta"
	TypeGTF              FileType = "gtf"
	TypeGFF3             FileType = "gff3"
	TypeRefFlat          FileType = "refflat"
	TypeRRNAIntervalList FileType = "rrna_interval_list"
	TypeGeneModel        FileType = "yaml_gene_model"
)

// DirType identifies the kind of a registered directory.
type DirType string

const TypeStarIndex DirType = "star_index"

// Source records which primary input an asset was produced from.
type Source string

const (
	SourceGenome        Source = "genome"
	SourceTranscriptome Source = "transcriptome"
)

var fileTypes = []FileType{
	TypeFasta, TypeGTF, TypeGFF3, TypeRefFlat, TypeRRNAIntervalList, TypeGeneModel,
}

var sources = []Source{SourceGenome, SourceTranscriptome}

// pathset is the mount-resolution core shared by File and Dir: the map from
// mount name to physical path, the mount the asset defaults to, and the mount
// activated for the current process.
type pathset struct {
	DefaultMount string            `json:"default_system"`
	ActiveMount  string            `json:"active_system,omitempty"`
	Paths        map[string]string `json:"path"`
}

// Mount returns the mount this asset resolves against: the active mount when
// one has been set, the default mount otherwise.
func (p *pathset) Mount() string {
	if p.ActiveMount != "" {
		return p.ActiveMount
	}
	return p.DefaultMount
}

// Path returns the asset's physical path on the resolving mount.
func (p *pathset) Path() (string, error) {
	return p.PathOn(p.Mount())
}

// PathOn returns the asset's physical path on the named mount.
func (p *pathset) PathOn(mount string) (string, error) {
	path, ok := p.Paths[mount]
	if !ok {
		return "", fmt.Errorf("no path stored for mount %q: %w", mount, ErrUnknownMount)
	}
	return path, nil
}

func (p *pathset) setActiveMount(mount string) { p.ActiveMount = mount }

func (p *pathset) pathMap() map[string]string {
	if p.Paths == nil {
		p.Paths = make(map[string]string)
	}
	return p.Paths
}

// mountable is the common surface of File and Dir. Mount propagation and
// mount-table edits walk containers' assets through this interface.
type mountable interface {
	setActiveMount(mount string)
	pathMap() map[string]string
}

// File is a registered file asset. The checksum is the fingerprint recorded
// by the last validation pass; content and parent are free-form annotations.
type File struct {
	Type FileType `json:"type"`
	pathset
	Checksum string `json:"checksum,omitempty"`
	Source   Source `json:"source,omitempty"`
	Content  string `json:"content,omitempty"`
	Parent   string `json:"parent,omitempty"`
}

// Dir is a registered directory asset, such as an aligner index. Directories
// carry no fingerprint.
type Dir struct {
	Type DirType `json:"type"`
	pathset
	Source Source `json:"source,omitempty"`
	Parent string `json:"parent,omitempty"`
}

// namedAsset pairs an asset with its place in the containing record, for
// error reporting.
type namedAsset struct {
	label string
	asset mountable
}

func validFileType(t FileType) bool {
	for _, ft := range fileTypes {
		if t == ft {
			return true
		}
	}
	return false
}

func validSource(s Source) bool {
	for _, src := range sources {
		if s == src {
			return true
		}
	}
	return false
}
