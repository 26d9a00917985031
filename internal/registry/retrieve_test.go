package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseGeneRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		delim   string
		id      string
		version int
		wantErr bool
	}{
		{name: "bare id", ref: "egfp", delim: ".", id: "egfp", version: latestVersion},
		{name: "pinned", ref: "egfp.2", delim: ".", id: "egfp", version: 2},
		{name: "padded", ref: "  egfp  ", delim: ".", id: "egfp", version: latestVersion},
		{name: "custom delim", ref: "egfp:3", delim: ":", id: "egfp", version: 3},
		{name: "bad version", ref: "egfp.x", delim: ".", wantErr: true},
		{name: "empty id", ref: ".2", delim: ".", wantErr: true},
		{name: "double suffix", ref: "egfp.1.2", delim: ".", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, version, err := parseGeneRef(tt.ref, tt.delim)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseGeneRef(%q) error = nil, want error", tt.ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGeneRef(%q) error = %v", tt.ref, err)
			}
			if id != tt.id || version != tt.version {
				t.Errorf("parseGeneRef(%q) = (%q, %d), want (%q, %d)",
					tt.ref, id, version, tt.id, tt.version)
			}
		})
	}
}

func registerGene(t *testing.T, root, id string) {
	t.Helper()
	fasta, model := writeGeneInputs(t, t.TempDir(), id)
	if _, err := RegisterUserGene(root, "main", fasta, model, discardLog()); err != nil {
		t.Fatalf("RegisterUserGene(%s) error = %v", id, err)
	}
}

func TestGetUserGenes_SingleGene(t *testing.T) {
	root := setupRegistry(t)
	registerGene(t, root, "egfp")
	outDir := filepath.Join(t.TempDir(), "out")

	paths, err := GetUserGenes(root, []string{"egfp"}, "main", outDir, "", discardLog())
	if err != nil {
		t.Fatalf("GetUserGenes() error = %v", err)
	}
	want := []string{
		filepath.Join(outDir, "egfp.fa"),
		filepath.Join(outDir, "egfp.yaml"),
		filepath.Join(outDir, "egfp.gtf"),
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %v, want 3 entries", paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, p, want[i])
		}
	}

	fasta, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(fasta) != ">egfp\nATGGTGAGCAAGGGC\n" {
		t.Errorf("fasta content = %q", fasta)
	}
	gtf, err := os.ReadFile(paths[2])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(gtf), `gene_id "egfp"`) {
		t.Errorf("gtf does not attribute features to egfp:\n%s", gtf)
	}
	if !strings.Contains(string(gtf), "\texon\t") {
		t.Errorf("gtf has no exon features:\n%s", gtf)
	}
}

func TestGetUserGenes_JoinsNamesInRequestOrder(t *testing.T) {
	root := setupRegistry(t)
	registerGene(t, root, "egfp")
	registerGene(t, root, "tdtomato")
	outDir := filepath.Join(t.TempDir(), "out")

	paths, err := GetUserGenes(root, []string{"tdtomato", "egfp"}, "main", outDir, "", discardLog())
	if err != nil {
		t.Fatalf("GetUserGenes() error = %v", err)
	}
	if got := filepath.Base(paths[0]); got != "tdtomato.egfp.fa" {
		t.Errorf("fasta name = %q, want %q", got, "tdtomato.egfp.fa")
	}

	fasta, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	first := strings.Index(string(fasta), ">tdtomato")
	second := strings.Index(string(fasta), ">egfp")
	if first < 0 || second < 0 || first > second {
		t.Errorf("fasta records out of request order:\n%s", fasta)
	}
}

func TestGetUserGenes_ManyGenesNamedCustom(t *testing.T) {
	root := setupRegistry(t)
	ids := []string{"egfp", "tdtomato", "mcherry", "luc2"}
	for _, id := range ids {
		registerGene(t, root, id)
	}
	outDir := filepath.Join(t.TempDir(), "out")

	paths, err := GetUserGenes(root, ids, "main", outDir, "", discardLog())
	if err != nil {
		t.Fatalf("GetUserGenes() error = %v", err)
	}
	if got := filepath.Base(paths[0]); got != "custom.fa" {
		t.Errorf("fasta name = %q, want %q", got, "custom.fa")
	}
}

func TestGetUserGenes_VersionPin(t *testing.T) {
	root := setupRegistry(t)
	registerGene(t, root, "egfp")
	v1 := singleGeneModel("egfp")
	v2 := strings.ReplaceAll(v1, "end: 720", "end: 900")
	update := filepath.Join(t.TempDir(), "egfp.yaml")
	if err := os.WriteFile(update, []byte(v2), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := UpdateUserGene(root, "main", update, discardLog()); err != nil {
		t.Fatalf("UpdateUserGene() error = %v", err)
	}

	pinned, err := GetUserGenes(root, []string{"egfp.1"}, "main",
		filepath.Join(t.TempDir(), "pinned"), "", discardLog())
	if err != nil {
		t.Fatalf("GetUserGenes(egfp.1) error = %v", err)
	}
	got, err := os.ReadFile(pinned[1])
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != v1 {
		t.Errorf("pinned model = %q, want version 1 content", got)
	}

	latest, err := GetUserGenes(root, []string{"egfp"}, "main",
		filepath.Join(t.TempDir(), "latest"), "", discardLog())
	if err != nil {
		t.Fatalf("GetUserGenes(egfp) error = %v", err)
	}
	got, err = os.ReadFile(latest[1])
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != v2 {
		t.Errorf("latest model = %q, want version 2 content", got)
	}
}

func TestGetUserGenes_SameGeneTwoVersions(t *testing.T) {
	root := setupRegistry(t)
	registerGene(t, root, "egfp")
	v1 := singleGeneModel("egfp")
	v2 := strings.ReplaceAll(v1, "end: 720", "end: 900")
	update := filepath.Join(t.TempDir(), "egfp.yaml")
	if err := os.WriteFile(update, []byte(v2), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := UpdateUserGene(root, "main", update, discardLog()); err != nil {
		t.Fatalf("UpdateUserGene() error = %v", err)
	}

	paths, err := GetUserGenes(root, []string{"egfp.1", "egfp.2"}, "main",
		filepath.Join(t.TempDir(), "out"), "", discardLog())
	if err != nil {
		t.Fatalf("GetUserGenes() error = %v", err)
	}
	if got := filepath.Base(paths[0]); got != "egfp.egfp.fa" {
		t.Errorf("fasta name = %q, want %q", got, "egfp.egfp.fa")
	}

	fasta, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(fasta), ">egfp"); got != 2 {
		t.Errorf("fasta holds %d egfp records, want 2:\n%s", got, fasta)
	}
	model, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(model), "end: 720") || !strings.Contains(string(model), "end: 900") {
		t.Errorf("combined model missing a version block:\n%s", model)
	}
	gtf, err := os.ReadFile(paths[2])
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(gtf), "\tgene\t"); got != 2 {
		t.Errorf("gtf holds %d gene features, want 2:\n%s", got, gtf)
	}
}

func TestGetUserGenes_CustomDelimiter(t *testing.T) {
	root := setupRegistry(t)
	registerGene(t, root, "egfp")

	if _, err := GetUserGenes(root, []string{"egfp:1"}, "main",
		filepath.Join(t.TempDir(), "out"), ":", discardLog()); err != nil {
		t.Fatalf("GetUserGenes() error = %v", err)
	}
}

func TestGetUserGenes_UnregisteredGene(t *testing.T) {
	root := setupRegistry(t)

	_, err := GetUserGenes(root, []string{"absent"}, "main",
		filepath.Join(t.TempDir(), "out"), "", discardLog())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("GetUserGenes() error = %v, want os.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "not registered") {
		t.Errorf("error %q should say the gene is not registered", err)
	}
}

func TestGetUserGenes_UnknownVersion(t *testing.T) {
	root := setupRegistry(t)
	registerGene(t, root, "egfp")

	_, err := GetUserGenes(root, []string{"egfp.9"}, "main",
		filepath.Join(t.TempDir(), "out"), "", discardLog())
	if !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("GetUserGenes() error = %v, want ErrUnknownVersion", err)
	}
}

func TestGetUserGenes_NoGenes(t *testing.T) {
	root := setupRegistry(t)

	if _, err := GetUserGenes(root, nil, "main",
		filepath.Join(t.TempDir(), "out"), "", discardLog()); err == nil {
		t.Fatal("expected error for an empty gene list, got nil")
	}
}

func TestConcatLines_GuaranteesNewlineBetweenFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("two\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "joined.txt")
	if err := concatLines(out, []string{a, b}); err != nil {
		t.Fatalf("concatLines() error = %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "one\ntwo\n" {
		t.Errorf("joined = %q, want %q", got, "one\ntwo\n")
	}
}
