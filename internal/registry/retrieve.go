package registry

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/refdata-labs/genomereg/internal/genemodel"
)

// maxNamedOutputs bounds how many gene ids are joined into the output
// basename before it falls back to "custom".
const maxNamedOutputs = 3

// parseGeneRef splits a requested gene reference into id and version. A
// reference without the delimiter selects the latest version.
func parseGeneRef(ref, delim string) (string, int, error) {
	ref = strings.TrimSpace(ref)
	id, suffix, found := strings.Cut(ref, delim)
	if id == "" {
		return "", 0, fmt.Errorf("invalid gene reference %q", ref)
	}
	if !found {
		return id, latestVersion, nil
	}
	version, err := strconv.Atoi(suffix)
	if err != nil {
		return "", 0, fmt.Errorf("invalid version suffix %q in gene reference %q", suffix, ref)
	}
	return id, version, nil
}

// GetUserGenes materializes the requested gene set in outDir: a combined
// fasta, a combined gene model, and a GTF generated from the combined model.
// References may pin a model version as id<delim>version. The returned paths
// are fasta, model, and GTF, in that order. Existing output files are
// replaced.
func GetUserGenes(root string, refs []string, mount, outDir, delim string, log *slog.Logger) ([]string, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("no gene ids requested")
	}
	if delim == "" {
		delim = "."
	}

	var ids, fastaPaths, modelPaths []string
	for _, ref := range refs {
		id, version, err := parseGeneRef(ref, delim)
		if err != nil {
			return nil, err
		}
		cfgPath := UserGeneConfigPath(root, id)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("gene %q is not registered: %w", id, err)
		}
		gene, err := LoadUserGene(cfgPath, mount, log)
		if err != nil {
			return nil, err
		}
		fastaPath, err := gene.Fasta.PathOn(mount)
		if err != nil {
			return nil, fmt.Errorf("gene %s fasta: %w", gene.ID, err)
		}
		modelPath, err := gene.Version(version, mount)
		if err != nil {
			return nil, err
		}
		if version < 0 {
			version = gene.Latest()
		}
		log.Info("resolved gene", "id", gene.ID, "version", version)
		ids = append(ids, gene.ID)
		fastaPaths = append(fastaPaths, fastaPath)
		modelPaths = append(modelPaths, modelPath)
	}

	base := "custom"
	if len(ids) <= maxNamedOutputs {
		base = strings.Join(ids, ".")
	}
	if err := os.MkdirAll(outDir, DirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	fastaOut := filepath.Join(outDir, base+".fa")
	modelOut := filepath.Join(outDir, base+".yaml")
	gtfOut := filepath.Join(outDir, base+".gtf")

	if err := concatFiles(fastaOut, fastaPaths); err != nil {
		return nil, err
	}
	if err := concatLines(modelOut, modelPaths); err != nil {
		return nil, err
	}
	models, err := genemodel.Load(modelOut)
	if err != nil {
		return nil, fmt.Errorf("combined gene model: %w", err)
	}
	if err := os.WriteFile(gtfOut, []byte(genemodel.GTF(models)), FilePerm); err != nil {
		return nil, fmt.Errorf("writing %s: %w", gtfOut, err)
	}
	log.Info("wrote gene set", "fasta", fastaOut, "model", modelOut, "gtf", gtfOut)
	return []string{fastaOut, modelOut, gtfOut}, nil
}

// concatFiles concatenates the inputs byte for byte into out.
func concatFiles(out string, inputs []string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	for _, in := range inputs {
		src, err := os.Open(in)
		if err != nil {
			f.Close()
			return fmt.Errorf("opening %s: %w", in, err)
		}
		_, err = io.Copy(f, src)
		src.Close()
		if err != nil {
			f.Close()
			return fmt.Errorf("appending %s: %w", in, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}
	return nil
}

// concatLines concatenates the inputs line by line, guaranteeing a newline
// between files so list entries from separate gene models never share a
// line.
func concatLines(out string, inputs []string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	w := bufio.NewWriter(f)
	for _, in := range inputs {
		if err := appendLines(w, in); err != nil {
			f.Close()
			return fmt.Errorf("appending %s: %w", in, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}
	return nil
}

func appendLines(w *bufio.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	r := bufio.NewReader(src)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			if _, werr := w.WriteString(line); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
