package ensembl

import (
	"fmt"
	"sort"
	"strings"
)

// defaultAssemblies maps the species we routinely mirror to their current
// Ensembl assembly. Other species or archived assemblies can be named
// explicitly on the command line.
var defaultAssemblies = map[string]string{
	"homo_sapiens":        "GRCh38",
	"mus_musculus":        "GRCm39",
	"rattus_norvegicus":   "mRatBN7.2",
	"macaca_fascicularis": "Macaca_fascicularis_6.0",
	"macaca_mulatta":      "Mmul_10",
	"sus_scrofa":          "Sscrofa11.1",
	"cricetulus_griseus":  "CHOK1GS_HDv1",
	"monodon_monoceros":   "NGI_Narwhal_1",
}

// AssemblyFor returns the default assembly for an Ensembl species name.
func AssemblyFor(species string) (string, error) {
	assembly, ok := defaultAssemblies[strings.ToLower(species)]
	if !ok {
		return "", fmt.Errorf("no default assembly for species %q (known: %s); name one with --assembly-name",
			species, strings.Join(KnownSpecies(), ", "))
	}
	return assembly, nil
}

// KnownSpecies lists the species with default assemblies, sorted.
func KnownSpecies() []string {
	names := make([]string, 0, len(defaultAssemblies))
	for name := range defaultAssemblies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AbbreviateSpecies shortens an Ensembl species name to the genus initial
// plus the first three letters of the species: homo_sapiens becomes hsap.
func AbbreviateSpecies(species string) string {
	fields := strings.SplitN(strings.ToLower(species), "_", 2)
	if len(fields) < 2 {
		return fields[0]
	}
	genus := fields[0][:1]
	epithet := fields[1]
	if len(epithet) > 3 {
		epithet = epithet[:3]
	}
	return genus + epithet
}

// FormatAssemblyName shortens the long macaque assembly names, which embed
// the species, to genus initial, three epithet letters, and version:
// Macaca_fascicularis_6.0 becomes mfas6.0. Other assembly names pass
// through unchanged.
func FormatAssemblyName(assembly string) string {
	lower := strings.ToLower(assembly)
	if !strings.HasPrefix(lower, "macaca") {
		return assembly
	}
	fields := strings.SplitN(lower, "_", 3)
	if len(fields) < 3 {
		return assembly
	}
	epithet := fields[1]
	if len(epithet) > 3 {
		epithet = epithet[:3]
	}
	return fields[0][:1] + epithet + fields[2]
}
