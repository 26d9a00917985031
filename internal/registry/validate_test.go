package registry

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func discardLog() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// writeAsset creates a file and returns a File record pointing at it.
func writeAsset(t *testing.T, dir, name, content string, typ FileType) *File {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return &File{
		Type: typ,
		pathset: pathset{
			DefaultMount: "main",
			Paths:        map[string]string{"main": path},
		},
	}
}

func TestCheckFile_RecordsFingerprint(t *testing.T) {
	tmp := t.TempDir()
	f := writeAsset(t, tmp, "g.fa", ">x\nACGT\n", TypeFasta)

	res := &Result{}
	checkFile(f, "fasta", res, discardLog())

	if !res.OK() {
		t.Fatalf("unexpected violations: %v", res.Violations)
	}
	if f.Checksum == "" {
		t.Error("expected checksum to be recorded")
	}
}

func TestCheckFile_StaleFingerprintWarnsAndRefreshes(t *testing.T) {
	tmp := t.TempDir()
	f := writeAsset(t, tmp, "g.fa", ">x\nACGT\n", TypeFasta)
	f.Checksum = "0000000000000000000000000000000000000000000000000000000000000000"

	res := &Result{}
	checkFile(f, "fasta", res, discardLog())

	if !res.OK() {
		t.Fatalf("stale fingerprint must not be a violation, got: %v", res.Violations)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings len = %d, want 1", len(res.Warnings))
	}
	if strings.HasPrefix(f.Checksum, "0000") {
		t.Error("expected checksum to be refreshed")
	}
}

func TestCheckFile_Violations(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name string
		file func() *File
	}{
		{"unknown type", func() *File {
			f := writeAsset(t, tmp, "a.fa", "x\n", TypeFasta)
			f.Type = "bam"
			return f
		}},
		{"unknown source", func() *File {
			f := writeAsset(t, tmp, "b.fa", "x\n", TypeFasta)
			f.Source = "metagenome"
			return f
		}},
		{"no default mount", func() *File {
			f := writeAsset(t, tmp, "c.fa", "x\n", TypeFasta)
			f.DefaultMount = ""
			return f
		}},
		{"no path for mount", func() *File {
			f := writeAsset(t, tmp, "d.fa", "x\n", TypeFasta)
			delete(f.Paths, "main")
			return f
		}},
		{"path not reachable", func() *File {
			f := writeAsset(t, tmp, "e.fa", "x\n", TypeFasta)
			f.Paths["main"] = filepath.Join(tmp, "gone.fa")
			return f
		}},
		{"path is a directory", func() *File {
			f := writeAsset(t, tmp, "f.fa", "x\n", TypeFasta)
			f.Paths["main"] = tmp
			return f
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &Result{}
			checkFile(tt.file(), "asset", res, discardLog())
			if res.OK() {
				t.Error("expected a violation, got none")
			}
		})
	}
}

func TestCheckDir(t *testing.T) {
	tmp := t.TempDir()
	idx := filepath.Join(tmp, "star-index")
	if err := os.MkdirAll(idx, 0o755); err != nil {
		t.Fatal(err)
	}

	d := &Dir{
		Type: TypeStarIndex,
		pathset: pathset{
			DefaultMount: "main",
			Paths:        map[string]string{"main": idx},
		},
	}
	res := &Result{}
	checkDir(d, "star_index", res, discardLog())
	if !res.OK() {
		t.Fatalf("unexpected violations: %v", res.Violations)
	}

	d.Paths["main"] = filepath.Join(tmp, "absent")
	res = &Result{}
	checkDir(d, "star_index", res, discardLog())
	if res.OK() {
		t.Error("expected violation for missing directory")
	}
}

func TestResultErr(t *testing.T) {
	res := &Result{}
	if err := res.Err(); err != nil {
		t.Errorf("clean result Err() = %v, want nil", err)
	}
	res.violationf("genome x/gtf", "path not reachable")
	err := res.Err()
	if err == nil {
		t.Fatal("expected error for result with violations")
	}
	if !strings.Contains(err.Error(), "genome x/gtf") {
		t.Errorf("Err() = %q, want the violation path included", err)
	}
}

func TestUserGeneCheck_VersionContiguity(t *testing.T) {
	tmp := t.TempDir()
	fasta := writeAsset(t, tmp, "egfp.fa", ">egfp\nATG\n", TypeFasta)
	model := writeAsset(t, tmp, "egfp_v01.yaml", singleGeneModel("egfp"), TypeGeneModel)
	model3 := writeAsset(t, tmp, "egfp_v03.yaml", singleGeneModel("egfp"), TypeGeneModel)

	gene := &UserGene{
		DefaultMount: "main",
		Models:       map[int]*File{1: model, 3: model3},
		Fasta:        *fasta,
		ID:           "egfp",
	}
	res := gene.Validate(discardLog())
	if res.OK() {
		t.Fatal("expected violation for gapped versions")
	}
	found := false
	for _, v := range res.Violations {
		if strings.Contains(v.Message, "contiguously") {
			found = true
		}
	}
	if !found {
		t.Errorf("violations = %v, want one about contiguous numbering", res.Violations)
	}
}

func TestUserGeneCheck_ModelIDMismatch(t *testing.T) {
	tmp := t.TempDir()
	fasta := writeAsset(t, tmp, "egfp.fa", ">egfp\nATG\n", TypeFasta)
	model := writeAsset(t, tmp, "egfp_v01.yaml", singleGeneModel("other"), TypeGeneModel)

	gene := &UserGene{
		DefaultMount: "main",
		Models:       map[int]*File{1: model},
		Fasta:        *fasta,
		ID:           "egfp",
	}
	res := gene.Validate(discardLog())
	if res.OK() {
		t.Fatal("expected violation for model declaring a different gene id")
	}
}

func TestCheckFastaHeader(t *testing.T) {
	tmp := t.TempDir()
	tests := []struct {
		name    string
		content string
		wantOK  bool
	}{
		{"single matching record", ">egfp\nATGGTG\nAGCAAG\n", true},
		{"wrong record name", ">mcherry\nATG\n", false},
		{"two records", ">egfp\nATG\n>egfp2\nATG\n", false},
		{"trailing description", ">egfp enhanced gfp\nATG\n", false},
		{"no records", "ATG\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmp, strings.ReplaceAll(tt.name, " ", "_")+".fa")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			res := &Result{}
			checkFastaHeader(path, "egfp", "fasta", res)
			if res.OK() != tt.wantOK {
				t.Errorf("OK() = %v, want %v (violations: %v)", res.OK(), tt.wantOK, res.Violations)
			}
		})
	}
}

func TestCheckNewlineTerminated(t *testing.T) {
	tmp := t.TempDir()

	ok := filepath.Join(tmp, "ok.fa")
	if err := os.WriteFile(ok, []byte(">x\nACGT\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := checkNewlineTerminated(ok); err != nil {
		t.Errorf("checkNewlineTerminated() error = %v, want nil", err)
	}

	truncated := filepath.Join(tmp, "truncated.fa")
	if err := os.WriteFile(truncated, []byte(">x\nACGT"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := checkNewlineTerminated(truncated); !errors.Is(err, ErrFileFormat) {
		t.Errorf("checkNewlineTerminated() error = %v, want ErrFileFormat", err)
	}

	empty := filepath.Join(tmp, "empty.fa")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := checkNewlineTerminated(empty); !errors.Is(err, ErrFileFormat) {
		t.Errorf("checkNewlineTerminated() error = %v, want ErrFileFormat", err)
	}
}
