package registry

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// CleanReport summarizes what a Clean pass removed.
type CleanReport struct {
	Found bool
	Files int
	Bytes uint64
}

// Size returns the removed byte total in human-readable form.
func (r *CleanReport) Size() string { return humanize.Bytes(r.Bytes) }

// Clean removes the registry's temporary tree: downloaded source files and
// recovery data left behind by interrupted mountpoint edits. Symlinked
// content is not followed while sizing.
func Clean(root string, log *slog.Logger) (*CleanReport, error) {
	tmp := TempDir(root)
	if _, err := os.Stat(tmp); err != nil {
		if os.IsNotExist(err) {
			log.Info("no temporary directories or files found")
			return &CleanReport{}, nil
		}
		return nil, fmt.Errorf("inspecting %s: %w", tmp, err)
	}

	report := &CleanReport{Found: true}
	err := filepath.WalkDir(tmp, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		report.Files++
		report.Bytes += uint64(info.Size())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sizing %s: %w", tmp, err)
	}
	if err := os.RemoveAll(tmp); err != nil {
		return nil, fmt.Errorf("removing %s: %w", tmp, err)
	}
	log.Info("removed temporary files", "files", report.Files, "size", report.Size())
	return report, nil
}
