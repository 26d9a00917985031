package ensembl

import (
	"fmt"
	"strings"
)

// baseURL is the Ensembl public mirror.
const baseURL = "https://ftp.ensembl.org/pub"

// Assembly words used in fasta file names, in preference order.
const (
	PrimaryAssembly = "primary_assembly"
	Toplevel        = "toplevel"
)

// GTFURL returns the annotation file URL for a species, assembly, and
// release.
func GTFURL(species, assembly string, release int) string {
	return fmt.Sprintf("%s/release-%d/gtf/%s/%s.%s.%d.gtf.gz",
		baseURL, release, strings.ToLower(species), capitalize(species), assembly, release)
}

// FastaURL returns the DNA fasta URL for a species, assembly, and release.
// assemblyWord is PrimaryAssembly or Toplevel; not every release publishes
// both.
func FastaURL(species, assembly string, release int, assemblyWord string) string {
	return fmt.Sprintf("%s/release-%d/fasta/%s/dna/%s.%s.dna.%s.fa.gz",
		baseURL, release, strings.ToLower(species), capitalize(species), assembly, assemblyWord)
}

// capitalize renders the species segment used in Ensembl file names: first
// letter upper, rest lower, so homo_sapiens becomes Homo_sapiens.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
