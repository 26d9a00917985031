package registry

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/refdata-labs/genomereg/internal/genemodel"
)

// Issue is one problem found while checking a decoded record against the
// registry's consistency rules.
type Issue struct {
	Path    string // location within the record, e.g. "genome grch38:109/refflat"
	Message string
}

func (i Issue) String() string { return i.Path + ": " + i.Message }

// Result collects the outcome of a validation pass. Violations make the
// record unusable; warnings are recoverable findings, such as a fingerprint
// refreshed after the underlying file changed.
type Result struct {
	Violations []Issue
	Warnings   []Issue
}

// OK reports whether the pass found no violations.
func (r *Result) OK() bool { return len(r.Violations) == 0 }

// Err flattens the violations into a single error, nil when the record is
// clean.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		msgs[i] = v.String()
	}
	return fmt.Errorf("%d violation(s): %s", len(r.Violations), strings.Join(msgs, "; "))
}

func (r *Result) violationf(path, format string, args ...any) {
	r.Violations = append(r.Violations, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) warnf(path, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// checkFile verifies a file asset: known type and source, a path stored for
// the resolving mount, an existing regular file behind it, and a current
// fingerprint. A fingerprint that no longer matches the stored one is
// refreshed and reported as a warning, not a violation; reference files are
// occasionally rewritten in place by curators.
func checkFile(f *File, label string, res *Result, log *slog.Logger) {
	if !validFileType(f.Type) {
		res.violationf(label, "unknown file type %q", f.Type)
		return
	}
	if f.Source != "" && !validSource(f.Source) {
		res.violationf(label, "unknown source %q", f.Source)
	}
	if f.DefaultMount == "" {
		res.violationf(label, "no default mount")
	}

	mount := f.Mount()
	path, ok := f.Paths[mount]
	if !ok {
		res.violationf(label, "no path stored for mount %q", mount)
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		res.violationf(label, "path not reachable: %v", err)
		return
	}
	if info.IsDir() {
		res.violationf(label, "%s is a directory, expected a file", path)
		return
	}

	fresh, err := Fingerprint(path)
	if err != nil {
		res.violationf(label, "%v", err)
		return
	}
	if f.Checksum != "" && f.Checksum != fresh {
		res.warnf(label, "fingerprint of %s changed from %s to %s", path, f.Checksum, fresh)
		log.Warn("stored fingerprint is stale, refreshing",
			"asset", label, "path", path, "stored", f.Checksum, "fresh", fresh)
	}
	f.Checksum = fresh
}

// checkDir verifies a directory asset: known type, a path stored for the
// resolving mount, and an existing directory behind it.
func checkDir(d *Dir, label string, res *Result, log *slog.Logger) {
	if d.Type != TypeStarIndex {
		res.violationf(label, "unknown directory type %q", d.Type)
		return
	}
	if d.DefaultMount == "" {
		res.violationf(label, "no default mount")
	}

	mount := d.Mount()
	path, ok := d.Paths[mount]
	if !ok {
		res.violationf(label, "no path stored for mount %q", mount)
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		res.violationf(label, "path not reachable: %v", err)
		return
	}
	if !info.IsDir() {
		res.violationf(label, "%s is a file, expected a directory", path)
	}
}

// check runs the genome's validation pass, appending findings to res.
func (g *Genome) check(res *Result, log *slog.Logger) {
	label := "genome " + g.ID
	if g.ID == "" {
		res.violationf(label, "empty genome id")
	}
	if g.DefaultMount == "" {
		res.violationf(label, "no default mount")
	}
	if err := g.Base.Metadata.Check(); err != nil {
		res.violationf(label+"/base/metadata", "%v", err)
	}
	for _, na := range g.assets() {
		assetLabel := label + "/" + na.label
		switch a := na.asset.(type) {
		case *File:
			checkFile(a, assetLabel, res, log)
		case *Dir:
			checkDir(a, assetLabel, res, log)
		}
	}
}

// Validate runs the genome's validation pass.
func (g *Genome) Validate(log *slog.Logger) *Result {
	res := &Result{}
	g.check(res, log)
	return res
}

// check runs the gene's validation pass: assets reachable and fingerprinted,
// versions contiguous from 1, every model version declaring the same gene id,
// the record id matching it, and the fasta holding exactly one record named
// after the gene.
func (u *UserGene) check(res *Result, log *slog.Logger) {
	label := "gene " + u.ID
	if u.ID == "" {
		res.violationf(label, "empty gene id")
	}
	if len(u.Models) == 0 {
		res.violationf(label, "no gene model versions")
		return
	}
	for i, v := range u.versions() {
		if v != i+1 {
			res.violationf(label, "model versions not numbered contiguously from 1: %v", u.versions())
			break
		}
	}

	checkFile(&u.Fasta, label+"/fasta", res, log)
	if u.Fasta.Type != TypeFasta {
		res.violationf(label+"/fasta", "expected type %s, got %q", TypeFasta, u.Fasta.Type)
	}

	var declared []string
	for _, v := range u.versions() {
		m := u.Models[v]
		vLabel := fmt.Sprintf("%s/gene_model/v%02d", label, v)
		checkFile(m, vLabel, res, log)
		if m.Type != TypeGeneModel {
			res.violationf(vLabel, "expected type %s, got %q", TypeGeneModel, m.Type)
		}
		path, ok := m.Paths[m.Mount()]
		if !ok {
			continue
		}
		model, err := genemodel.ParseOne(path)
		if err != nil {
			res.violationf(vLabel, "%v", err)
			continue
		}
		declared = append(declared, model.GeneID)
	}
	for _, id := range declared {
		if id != declared[0] {
			res.violationf(label+"/gene_model", "versions declare different gene ids: %v", declared)
			break
		}
	}
	if len(declared) > 0 && declared[len(declared)-1] != u.ID {
		res.violationf(label, "id %q does not match gene model id %q", u.ID, declared[len(declared)-1])
	}

	if path, ok := u.Fasta.Paths[u.Fasta.Mount()]; ok {
		checkFastaHeader(path, u.ID, label+"/fasta", res)
	}
}

// Validate runs the gene's validation pass.
func (u *UserGene) Validate(log *slog.Logger) *Result {
	res := &Result{}
	u.check(res, log)
	return res
}

// checkFastaHeader verifies the fasta holds exactly one record and that its
// header names the gene.
func checkFastaHeader(path, geneID, label string, res *Result) {
	f, err := os.Open(path)
	if err != nil {
		// Reachability was already reported by checkFile.
		return
	}
	defer f.Close()

	var headers []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if strings.HasPrefix(line, ">") {
			headers = append(headers, strings.TrimPrefix(strings.TrimSpace(line), ">"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			res.violationf(label, "reading %s: %v", path, err)
			return
		}
	}
	if len(headers) != 1 {
		res.violationf(label, "expected exactly one fasta record in %s, found %d", path, len(headers))
		return
	}
	if headers[0] != geneID {
		res.violationf(label, "fasta record %q does not name gene %q", headers[0], geneID)
	}
}

// checkNewlineTerminated rejects files whose final byte is not a newline.
// Truncated transfers of line-oriented inputs are the usual cause.
func checkNewlineTerminated(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty: %w", path, ErrFileFormat)
	}
	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, info.Size()-1); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if buf[0] != '\n' {
		return fmt.Errorf("%s does not end with a newline: %w", path, ErrFileFormat)
	}
	return nil
}
