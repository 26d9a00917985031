package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Mountpoint edits touch every config file in the registry, so they run as a
// transaction: both config directories are backed up under .tmp, every config
// is rewritten against the updated mount set and re-validated, and any
// failure restores the backups before the error is returned. The window
// between the first rewritten file and a restore is visible to concurrent
// readers; mountpoint edits are expected to run during maintenance.

type editMode int

const (
	editAdd editMode = iota
	editRemove
)

// AddMountpoint registers the path this registry is reached by on the
// current system as a new mount named name, rewriting every stored record to
// carry paths for it. Every derived path is verified to exist before
// anything is persisted.
func AddMountpoint(root, name string, log *slog.Logger) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("registry path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("registry path %s is not a directory", root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving registry path: %w", err)
	}

	table, err := LoadMountTable(root)
	if err != nil {
		return err
	}
	if _, ok := table.Mounts[name]; ok {
		return fmt.Errorf("mount name %q is already registered: %w", name, ErrDuplicateMount)
	}
	if existing, err := table.ActiveMountFor(root); err == nil {
		return fmt.Errorf("path %s is already registered as mount %q: %w",
			abs, existing, ErrDuplicateMount)
	}

	log.Info("adding mountpoint", "name", name, "path", abs)
	table.Mounts[name] = abs
	if err := applyMountEdit(root, table, editAdd, name, abs, name, log); err != nil {
		return err
	}
	log.Info("mountpoint added", "name", name)
	return nil
}

// RemoveMountpoint drops the named mount from the registry, rewriting every
// stored record to forget its paths. The default mount and the mount the
// command runs on cannot be removed. Nothing is touched until every
// precondition has passed.
func RemoveMountpoint(root, name string, log *slog.Logger) error {
	table, err := LoadMountTable(root)
	if err != nil {
		return err
	}
	issuing, err := table.ActiveMountFor(root)
	if err != nil {
		return err
	}
	if _, ok := table.Mounts[name]; !ok {
		return fmt.Errorf("mount %q is not registered: %w", name, ErrUnknownMount)
	}
	if name == issuing {
		return fmt.Errorf("mount %q is in use by this command; remove it from another mount: %w",
			name, ErrProtectedMount)
	}
	if name == table.DefaultMount {
		return fmt.Errorf("mount %q is the registry default and cannot be removed: %w",
			name, ErrProtectedMount)
	}

	log.Info("removing mountpoint", "name", name, "path", table.Mounts[name])
	delete(table.Mounts, name)
	if err := applyMountEdit(root, table, editRemove, name, "", issuing, log); err != nil {
		return err
	}
	log.Info("mountpoint removed", "name", name)
	return nil
}

// applyMountEdit backs up both config directories, rewrites every config and
// the mount table, and on any failure restores the backups. Recovery
// directories are removed when the edit finishes, either way.
func applyMountEdit(root string, table *MountTable, mode editMode, name, base, issuing string, log *slog.Logger) (err error) {
	genomeRec, userRec, err := backupConfigs(root, log)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := restoreConfigs(root, genomeRec, userRec, log); rerr != nil {
				err = fmt.Errorf("%w (restoring config backups also failed: %v)", err, rerr)
			}
		}
		os.RemoveAll(genomeRec)
		os.RemoveAll(userRec)
	}()

	if err = rewriteGenomeConfigs(root, mode, name, base, issuing, log); err != nil {
		return err
	}
	if err = rewriteUserGeneConfigs(root, mode, name, base, issuing, log); err != nil {
		return err
	}
	err = table.Write(root)
	return err
}

// backupConfigs copies both config directories into recovery directories
// under .tmp. A failed backup is cleaned up before returning.
func backupConfigs(root string, log *slog.Logger) (string, string, error) {
	genomeRec := genomeRecoveryDir(root)
	userRec := userGeneRecoveryDir(root)
	if err := syncTree(GenomeConfDir(root), genomeRec); err != nil {
		os.RemoveAll(genomeRec)
		return "", "", fmt.Errorf("backing up genome configs: %w", err)
	}
	if err := syncTree(UserConfDir(root), userRec); err != nil {
		os.RemoveAll(genomeRec)
		os.RemoveAll(userRec)
		return "", "", fmt.Errorf("backing up gene configs: %w", err)
	}
	log.Debug("config backups created", "genome", genomeRec, "user", userRec)
	return genomeRec, userRec, nil
}

func restoreConfigs(root, genomeRec, userRec string, log *slog.Logger) error {
	log.Warn("mountpoint edit failed, restoring config backups")
	if err := syncTree(genomeRec, GenomeConfDir(root)); err != nil {
		return err
	}
	return syncTree(userRec, UserConfDir(root))
}

// rewriteGenomeConfigs applies the mount edit to every release config. Each
// rewritten collection is validated with the issuing mount active before it
// is written back; for an add this is what verifies every derived path.
func rewriteGenomeConfigs(root string, mode editMode, name, base, issuing string, log *slog.Logger) error {
	paths, err := filepath.Glob(filepath.Join(GenomeConfDir(root), "*.json"))
	if err != nil {
		return fmt.Errorf("listing genome configs: %w", err)
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		var col Collection
		if err := json.Unmarshal(data, &col); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		for id, g := range col.Genomes {
			switch mode {
			case editAdd:
				err = g.AddMount(name, base, false)
			case editRemove:
				err = g.RemoveMount(name)
			}
			if err != nil {
				return fmt.Errorf("genome %s in %s: %w", id, path, err)
			}
		}
		col.SetActiveMount(issuing)
		if err := col.Validate(log).Err(); err != nil {
			return fmt.Errorf("validating %s after edit: %w", path, err)
		}
		if err := writeJSON(path, &col); err != nil {
			return err
		}
		log.Debug("rewrote genome config", "path", path)
	}
	return nil
}

// rewriteUserGeneConfigs applies the mount edit to every gene config, with
// the same validate-then-write contract as rewriteGenomeConfigs.
func rewriteUserGeneConfigs(root string, mode editMode, name, base, issuing string, log *slog.Logger) error {
	paths, err := filepath.Glob(filepath.Join(UserConfDir(root), "*.json"))
	if err != nil {
		return fmt.Errorf("listing gene configs: %w", err)
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		var gene UserGene
		if err := json.Unmarshal(data, &gene); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		switch mode {
		case editAdd:
			err = gene.AddMount(name, base, false)
		case editRemove:
			err = gene.RemoveMount(name)
		}
		if err != nil {
			return fmt.Errorf("gene %s in %s: %w", gene.ID, path, err)
		}
		gene.SetActiveMount(issuing)
		if err := gene.Validate(log).Err(); err != nil {
			return fmt.Errorf("validating %s after edit: %w", path, err)
		}
		if err := writeJSON(path, &gene); err != nil {
			return err
		}
		log.Debug("rewrote gene config", "path", path)
	}
	return nil
}
