package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// latestVersion selects the newest stored model when a gene reference
// carries no version suffix.
const latestVersion = -1

// UserGene is one registered user-defined gene: a single-record fasta plus
// every version of its gene model, numbered from 1.
type UserGene struct {
	DefaultMount string        `json:"default_system"`
	ActiveMount  string        `json:"active_system,omitempty"`
	Models       map[int]*File `json:"gene_model"`
	Fasta        File          `json:"fasta"`
	ID           string        `json:"id"`
}

// versions returns the stored model versions in ascending order.
func (u *UserGene) versions() []int {
	vs := make([]int, 0, len(u.Models))
	for v := range u.Models {
		vs = append(vs, v)
	}
	sort.Ints(vs)
	return vs
}

// Latest returns the highest stored model version, 0 when none are stored.
func (u *UserGene) Latest() int {
	vs := u.versions()
	if len(vs) == 0 {
		return 0
	}
	return vs[len(vs)-1]
}

// Version resolves a stored gene model version to its physical path on
// mount. Negative versions select the latest.
func (u *UserGene) Version(version int, mount string) (string, error) {
	if version < 0 {
		version = u.Latest()
	}
	m, ok := u.Models[version]
	if !ok {
		return "", fmt.Errorf("gene %s has no version %d: %w", u.ID, version, ErrUnknownVersion)
	}
	return m.PathOn(mount)
}

// assets returns the gene's path-bearing assets: the fasta and every model
// version, in version order.
func (u *UserGene) assets() []namedAsset {
	out := []namedAsset{{"fasta", &u.Fasta}}
	for _, v := range u.versions() {
		out = append(out, namedAsset{fmt.Sprintf("gene_model/v%02d", v), u.Models[v]})
	}
	return out
}

// SetActiveMount activates mount on the gene and all its assets.
func (u *UserGene) SetActiveMount(mount string) {
	u.ActiveMount = mount
	for _, na := range u.assets() {
		na.asset.setActiveMount(mount)
	}
}

// AddMount stores paths under a newly registered mount on every asset. With
// verify set, each derived path must exist on this system.
func (u *UserGene) AddMount(name, base string, verify bool) error {
	for _, na := range u.assets() {
		if err := addMount(na.asset, name, base, userGenesDirName, verify); err != nil {
			return fmt.Errorf("%s: %w", na.label, err)
		}
	}
	return nil
}

// RemoveMount drops the named mount's path from every asset.
func (u *UserGene) RemoveMount(name string) error {
	for _, na := range u.assets() {
		if err := removeMount(na.asset, name); err != nil {
			return fmt.Errorf("%s: %w", na.label, err)
		}
	}
	return nil
}

// AddVersion copies the model at modelPath into the registry as the next
// version of this gene and fingerprints it, rejecting models identical to a
// version already stored. The new version file lives next to the previous
// latest version and inherits its path mapping on every mount. The stored
// copy is removed again on any failure.
func (u *UserGene) AddVersion(modelPath, mount string, log *slog.Logger) (int, string, error) {
	latest := u.Latest()
	if latest == 0 {
		return 0, "", fmt.Errorf("gene %s has no stored versions", u.ID)
	}
	prior := u.Models[latest]
	priorPath, err := prior.PathOn(mount)
	if err != nil {
		return 0, "", fmt.Errorf("version %d of gene %s: %w", latest, u.ID, err)
	}

	next := latest + 1
	dest := filepath.Join(filepath.Dir(priorPath), versionFileName(u.ID, next))
	if err := copyFile(modelPath, dest); err != nil {
		return 0, "", fmt.Errorf("storing version %d of gene %s: %w", next, u.ID, err)
	}
	fingerprint, err := Fingerprint(dest)
	if err != nil {
		os.Remove(dest)
		return 0, "", err
	}
	for _, v := range u.versions() {
		if u.Models[v].Checksum == fingerprint {
			os.Remove(dest)
			return 0, "", fmt.Errorf("model matches stored version %d of gene %s: %w",
				v, u.ID, ErrDuplicateVersion)
		}
	}

	model := &File{
		Type: TypeGeneModel,
		pathset: pathset{
			DefaultMount: u.DefaultMount,
			ActiveMount:  mount,
			Paths:        map[string]string{mount: dest},
		},
		Checksum: fingerprint,
	}
	for name, p := range prior.Paths {
		if name == mount {
			continue
		}
		model.Paths[name] = filepath.Join(filepath.Dir(p), versionFileName(u.ID, next))
	}
	u.Models[next] = model
	log.Info("stored new gene model version", "gene", u.ID, "version", next, "path", dest)
	return next, dest, nil
}
