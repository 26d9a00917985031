package ensembl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/refdata-labs/genomereg/internal/registry"
)

const userAgent = "genomereg-downloader"

// archiveTip points at the Ensembl page explaining which assemblies ship
// with which releases, the usual cause of a missing fasta.
const archiveTip = "check that the assembly name matches the one available in the requested release; " +
	"see https://www.ensembl.org/info/website/archives/assembly.html"

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.Code)
}

// NotFound reports whether err is a StatusError for a missing resource.
func NotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client downloads Ensembl source files.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client for the public Ensembl mirror. The underlying
// HTTP client carries no overall timeout; genome fastas run to many
// gigabytes.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

// Fetch downloads rawURL into destDir, named after the URL's last path
// segment, and returns the file's path. Progress is reported on stderr.
func (c *Client) Fetch(rawURL, destDir string, log *slog.Logger) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL %s: %w", rawURL, err)
	}
	destPath := filepath.Join(destDir, path.Base(parsed.Path))

	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	if err := os.MkdirAll(destDir, registry.DirPerm); err != nil {
		return "", fmt.Errorf("creating %s: %w", destDir, err)
	}
	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	total := resp.ContentLength
	if total > 0 {
		log.Info("downloading", "url", rawURL, "size", humanize.Bytes(uint64(total)))
	} else {
		log.Info("downloading", "url", rawURL)
	}

	var downloaded int64
	lastPercent := -1

	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return "", fmt.Errorf("writing download: %w", writeErr)
			}
			downloaded += int64(n)
			if total > 0 {
				percent := int(downloaded * 100 / total)
				if percent != lastPercent {
					fmt.Fprintf(os.Stderr, "\rDownloading %s... %d%%", path.Base(destPath), percent)
					lastPercent = percent
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("reading download stream: %w", readErr)
		}
	}
	if total > 0 {
		fmt.Fprintln(os.Stderr)
	}

	return destPath, nil
}

// DownloadGenome fetches the GTF and DNA fasta for a species and release
// into the registry's download tree (or the current directory with useCwd),
// preferring the primary assembly fasta and falling back to the toplevel
// sequence. A metadata.json ready for register-genome is written alongside,
// and the returned Metadata mirrors it.
func (c *Client) DownloadGenome(root, species string, release int, assembly string, useCwd bool, log *slog.Logger) (*registry.Metadata, error) {
	species = strings.ToLower(species)
	if assembly == "" {
		var err error
		assembly, err = AssemblyFor(species)
		if err != nil {
			return nil, err
		}
	}

	destDir := filepath.Join(registry.DownloadsDir(root), fmt.Sprintf("release-%d", release), species)
	if useCwd {
		var err error
		destDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
	}

	if _, err := c.Fetch(GTFURL(species, assembly, release), destDir, log); err != nil {
		if NotFound(err) {
			return nil, fmt.Errorf("%w; %s", err, archiveTip)
		}
		return nil, err
	}

	assemblyWord := PrimaryAssembly
	_, err := c.Fetch(FastaURL(species, assembly, release, PrimaryAssembly), destDir, log)
	if NotFound(err) {
		log.Info("no primary assembly fasta published, falling back to toplevel",
			"species", species, "assembly", assembly)
		assemblyWord = Toplevel
		_, err = c.Fetch(FastaURL(species, assembly, release, Toplevel), destDir, log)
	}
	if err != nil {
		if NotFound(err) {
			return nil, fmt.Errorf("%w; %s", err, archiveTip)
		}
		return nil, err
	}

	meta := &registry.Metadata{
		ID:           fmt.Sprintf("%s:%d", FormatAssemblyName(assembly), release),
		Species:      species,
		SpeciesShort: AbbreviateSpecies(species),
		Release:      release,
		Assembly:     assembly,
		AssemblyType: assemblyWord,
		SequenceType: "dna",
	}
	metaPath := filepath.Join(destDir, "metadata.json")
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(metaPath, data, registry.FilePerm); err != nil {
		return nil, fmt.Errorf("writing %s: %w", metaPath, err)
	}
	log.Info("downloaded genome", "species", species, "assembly", assembly,
		"release", release, "dir", destDir)
	return meta, nil
}
