package registry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/refdata-labs/genomereg/internal/platform"
)

// copyFile copies src to dst, refusing to overwrite an existing destination.
// Parent directories are created as needed. Content is streamed; source
// fastas run to many gigabytes.
func copyFile(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%s: %w", dst, os.ErrExist)
	}
	if err := os.MkdirAll(filepath.Dir(dst), DirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, FilePerm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return platform.Chmod(dst, FilePerm)
}

// overwriteFile copies src over dst, replacing existing content.
func overwriteFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return platform.Chmod(dst, FilePerm)
}

// copyTree copies the directory tree at src to dst, refusing an existing
// destination.
func copyTree(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%s: %w", dst, os.ErrExist)
	}
	return syncTree(src, dst)
}

// syncTree recursively copies src into dst, creating directories and
// overwriting files that already exist. Symlinks are skipped.
func syncTree(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, DirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		switch {
		case entry.Type()&os.ModeSymlink != 0:
			continue
		case entry.IsDir():
			if err := syncTree(srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := overwriteFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}
