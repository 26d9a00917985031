package registry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/refdata-labs/genomereg/internal/platform"
)

// Initialize creates a new registry tree at root and records mount as its
// first and default mount. root may be missing or an existing empty
// directory; anything else is refused. Progress is reported line by line on
// w. If population fails partway, the tree is removed again.
func Initialize(root, mount, group string, w io.Writer) error {
	if mount == "" {
		return fmt.Errorf("a mount name is required to initialize a registry")
	}

	info, err := os.Stat(root)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%s is an existing file: %w", root, ErrRegistryExists)
	case err == nil:
		entries, rerr := os.ReadDir(root)
		if rerr != nil {
			return fmt.Errorf("inspecting %s: %w", root, rerr)
		}
		if len(entries) > 0 {
			return fmt.Errorf("%s is not empty: %w", root, ErrRegistryExists)
		}
		if cerr := platform.Chmod(root, DirPerm); cerr != nil {
			return cerr
		}
	case os.IsNotExist(err):
		if merr := os.MkdirAll(root, DirPerm); merr != nil {
			return fmt.Errorf("creating registry root: %w", merr)
		}
		if cerr := platform.Chmod(root, DirPerm); cerr != nil {
			return cerr
		}
		fmt.Fprintf(w, "  [ OK ] Created %s\n", root)
	default:
		return fmt.Errorf("inspecting %s: %w", root, err)
	}

	if err := populate(root, mount, group, w); err != nil {
		os.RemoveAll(root)
		return err
	}
	return nil
}

func populate(root, mount, group string, w io.Writer) error {
	dirs := []string{
		GenomesDir(root),
		UserGenesDir(root),
		GenomeConfDir(root),
		UserConfDir(root),
		LogDir(root),
	}
	for _, dir := range dirs {
		if err := ensureDir(w, dir, DirPerm); err != nil {
			return err
		}
	}
	// GenomeConfDir created .conf implicitly; give it registry perms too.
	if err := platform.Chmod(filepath.Join(root, confDirName), DirPerm); err != nil {
		return err
	}

	if err := ensureFile(w, MainLogPath(root), FilePerm); err != nil {
		return err
	}
	if err := ensureFile(w, GetGenesLogPath(root), SharedLogPerm); err != nil {
		return err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving registry path: %w", err)
	}
	table := &MountTable{
		Format:       FormatVersion,
		DefaultMount: mount,
		Mounts:       map[string]string{mount: abs},
	}
	if err := table.Write(root); err != nil {
		return err
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", MountsPath(root))

	if group != "" {
		if err := platform.ChownTree(root, group); err != nil {
			return fmt.Errorf("assigning group %q: %w", group, err)
		}
		fmt.Fprintf(w, "  [ OK ] Assigned group %s\n", group)
	}
	return nil
}

// ensureDir creates dir with the given permissions, reporting what happened
// on w. An existing directory is left alone.
func ensureDir(w io.Writer, dir string, perm os.FileMode) error {
	if _, err := os.Stat(dir); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", dir)
		return nil
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := platform.Chmod(dir, perm); err != nil {
		return err
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", dir)
	return nil
}

// ensureFile creates an empty file with the given permissions, reporting
// what happened on w. An existing file is left alone.
func ensureFile(w io.Writer, path string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}
	if err := os.WriteFile(path, nil, perm); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := platform.Chmod(path, perm); err != nil {
		return err
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
