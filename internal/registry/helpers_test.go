package registry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// setupRegistry initializes a fresh registry under a temp directory with a
// single mount named "main" and returns its root.
func setupRegistry(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "registry")
	if err := Initialize(root, "main", "", io.Discard); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return root
}

// singleGeneModel returns a one-gene model document in list form.
func singleGeneModel(id string) string {
	return fmt.Sprintf(`- gene_id: %[1]s
  seqname: %[1]s
  strand: "+"
  start: 1
  end: 720
  transcripts:
    - transcript_id: %[1]s.t1
      start: 1
      end: 720
      exons:
        - start: 1
          end: 720
`, id)
}

// writeGeneInputs creates a registerable fasta and model pair for a gene and
// returns their paths.
func writeGeneInputs(t *testing.T, dir, id string) (string, string) {
	t.Helper()
	fasta := filepath.Join(dir, id+".fa")
	model := filepath.Join(dir, id+".yaml")
	if err := os.WriteFile(fasta, []byte(">"+id+"\nATGGTGAGCAAGGGC\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(model, []byte(singleGeneModel(id)), 0o644); err != nil {
		t.Fatal(err)
	}
	return fasta, model
}

// writeGenomeInputs fills dir with one file per required genome input
// pattern, plus an aligner index directory, and returns dir.
func writeGenomeInputs(t *testing.T, dir, species, assembly string, release int) string {
	t.Helper()
	stem := fmt.Sprintf("%s.%s", capitalizeSpecies(species), assembly)
	files := []string{
		fmt.Sprintf("%s.dna.primary_assembly.fa.gz", stem),
		fmt.Sprintf("%s.%d.gtf.gz", stem, release),
		fmt.Sprintf("%s.%d.transcriptome.fa.gz", stem, release),
		fmt.Sprintf("%s.%d.refflat", stem, release),
		fmt.Sprintf("%s.%d.rrna", stem, release),
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	idx := filepath.Join(dir, "star-index_2.7.10b")
	if err := os.MkdirAll(idx, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(idx, "SA"), []byte("index\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func capitalizeSpecies(species string) string {
	if species == "" {
		return species
	}
	b := []byte(species)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
