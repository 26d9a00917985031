//go:build integration

package integration_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/refdata-labs/genomereg/internal/registry"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	Root   string // initialized registry tree, reachable as mount "main"
	Inputs string // scratch directory for files about to be registered
}

// setupTestEnv initializes a registry under a temp directory so every
// operation is sandboxed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		Root:   filepath.Join(t.TempDir(), "registry"),
		Inputs: t.TempDir(),
	}
	if err := registry.Initialize(env.Root, "main", "", io.Discard); err != nil {
		t.Fatalf("initializing registry: %v", err)
	}
	return env
}

// linkRegistry symlinks the registry root, standing in for the path another
// system would mount the same tree under.
func linkRegistry(t *testing.T, root string) string {
	t.Helper()
	link := filepath.Join(t.TempDir(), "cluster-view")
	if err := os.Symlink(root, link); err != nil {
		t.Skipf("symlinks not available: %v", err)
	}
	return link
}

// geneModelYAML returns a single-gene model document for a synthetic
// construct named id.
func geneModelYAML(id string) string {
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

// writeGeneFiles creates the fasta and model inputs for one user-defined
// gene and returns their paths.
func writeGeneFiles(t *testing.T, dir, id string) (string, string) {
	t.Helper()
	fasta := filepath.Join(dir, id+".fa")
	model := filepath.Join(dir, id+".yaml")
	writeFile(t, fasta, ">"+id+"\nATGGTGAGCAAGGGCGAGGAG\n")
	writeFile(t, model, geneModelYAML(id))
	return fasta, model
}

// writeGenomeFiles creates one file per required genome input pattern plus
// an aligner index directory, and returns the input directory.
func writeGenomeFiles(t *testing.T, dir, species, assembly string, release int) string {
	t.Helper()
	stem := strings.ToUpper(species[:1]) + species[1:] + "." + assembly
	names := []string{
		stem + ".dna.primary_assembly.fa.gz",
		fmt.Sprintf("%s.%d.gtf.gz", stem, release),
		fmt.Sprintf("%s.%d.transcriptome.fa.gz", stem, release),
		fmt.Sprintf("%s.%d.refflat", stem, release),
		fmt.Sprintf("%s.%d.rrna", stem, release),
	}
	for _, name := range names {
		writeFile(t, filepath.Join(dir, name), name+"\n")
	}
	writeFile(t, filepath.Join(dir, "star-index_2.7.10b", "SA"), "index\n")
	return dir
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileNotContains fails if the file doesn't exist or contains substr.
func assertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s contains %q, expected it not to.\nContents:\n%s", path, substr, string(data))
	}
}
