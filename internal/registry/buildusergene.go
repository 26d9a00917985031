package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/refdata-labs/genomereg/internal/genemodel"
)

// RegisterUserGene stores a user-defined gene, a single-record fasta plus
// the first version of its gene model, under user_defined_genes/ and writes
// its config. The gene id comes from the model itself. On failure the
// created gene directory is removed.
func RegisterUserGene(root, mount, fastaPath, modelPath string, log *slog.Logger) (*UserGene, error) {
	table, err := LoadMountTable(root)
	if err != nil {
		return nil, err
	}
	if _, ok := table.Mounts[mount]; !ok {
		return nil, fmt.Errorf("mount %q is not registered: %w", mount, ErrUnknownMount)
	}
	if err := checkNewlineTerminated(fastaPath); err != nil {
		return nil, err
	}
	if err := checkNewlineTerminated(modelPath); err != nil {
		return nil, err
	}
	model, err := genemodel.ParseOne(modelPath)
	if err != nil {
		return nil, err
	}

	geneDir := filepath.Join(UserGenesDir(root), model.GeneID)
	if _, err := os.Stat(geneDir); err == nil {
		return nil, fmt.Errorf("gene %s already exists at %s, use update-gene to add a model version: %w",
			model.GeneID, geneDir, os.ErrExist)
	}

	log.Info("registering user-defined gene", "id", model.GeneID)
	gene, err := buildUserGene(root, mount, model.GeneID, fastaPath, modelPath, table, log)
	if err != nil {
		log.Error("gene registration failed, removing gene directory",
			"id", model.GeneID, "error", err)
		os.RemoveAll(geneDir)
		return nil, err
	}
	log.Info("registered user-defined gene", "id", gene.ID)
	return gene, nil
}

// buildUserGene performs the steps that create files: copy the fasta and
// first model version into the gene directory, assemble and validate the
// record, and write its config. The caller owns rollback.
func buildUserGene(root, mount, geneID, fastaPath, modelPath string, table *MountTable, log *slog.Logger) (*UserGene, error) {
	geneDir := filepath.Join(UserGenesDir(root), geneID)
	if err := os.MkdirAll(geneDir, DirPerm); err != nil {
		return nil, fmt.Errorf("creating %s: %w", geneDir, err)
	}
	fastaDest := filepath.Join(geneDir, geneID+".fa")
	modelDest := filepath.Join(geneDir, versionFileName(geneID, 1))
	if err := copyFile(fastaPath, fastaDest); err != nil {
		return nil, err
	}
	if err := copyFile(modelPath, modelDest); err != nil {
		return nil, err
	}

	gene := &UserGene{
		DefaultMount: table.DefaultMount,
		Models: map[int]*File{
			1: {
				Type: TypeGeneModel,
				pathset: pathset{
					DefaultMount: table.DefaultMount,
					Paths:        map[string]string{mount: modelDest},
				},
			},
		},
		Fasta: File{
			Type: TypeFasta,
			pathset: pathset{
				DefaultMount: table.DefaultMount,
				Paths:        map[string]string{mount: fastaDest},
			},
		},
		ID: geneID,
	}
	for name, base := range table.Mounts {
		if err := gene.AddMount(name, base, false); err != nil {
			return nil, fmt.Errorf("attaching mount %q: %w", name, err)
		}
	}
	gene.SetActiveMount(mount)
	if err := gene.Validate(log).Err(); err != nil {
		return nil, err
	}
	if err := writeJSON(UserGeneConfigPath(root, geneID), gene); err != nil {
		return nil, err
	}
	return gene, nil
}

// UpdateUserGene stores the model at modelPath as a new version of an
// already-registered gene and rewrites the gene's config. The prior config
// content is held in memory; if the rewrite fails it is restored and the
// stored model copy removed.
func UpdateUserGene(root, mount, modelPath string, log *slog.Logger) (int, error) {
	if err := checkNewlineTerminated(modelPath); err != nil {
		return 0, err
	}
	model, err := genemodel.ParseOne(modelPath)
	if err != nil {
		return 0, err
	}

	cfgPath := UserGeneConfigPath(root, model.GeneID)
	prior, err := os.ReadFile(cfgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("gene %s is not registered, use register-gene first: %w",
				model.GeneID, err)
		}
		return 0, fmt.Errorf("reading gene config: %w", err)
	}
	gene, err := LoadUserGene(cfgPath, mount, log)
	if err != nil {
		return 0, err
	}

	version, dest, err := gene.AddVersion(modelPath, mount, log)
	if err != nil {
		return 0, err
	}
	if err := writeJSON(cfgPath, gene); err != nil {
		log.Error("rewriting gene config failed, restoring previous content",
			"path", cfgPath, "error", err)
		if rerr := os.WriteFile(cfgPath, prior, FilePerm); rerr != nil {
			log.Error("restore failed, previous config content follows",
				"error", rerr, "content", string(prior))
		}
		os.Remove(dest)
		return 0, err
	}
	log.Info("updated user-defined gene", "id", gene.ID, "version", version)
	return version, nil
}
