package registry

import (
	"fmt"
	"os"
	"path/filepath"
)

// Directory and file names that make up an initialized registry tree.
const (
	genomesDirName    = "genomes"
	userGenesDirName  = "user_defined_genes"
	confDirName       = ".conf"
	genomeConfDirName = "genome-registry"
	userConfDirName   = "user-registry"
	mountsFileName    = "mounts.json"
	logDirName        = ".log"
	tempDirName       = ".tmp"
	downloadsDirName  = "downloads"

	sourceDirName  = "source"
	derivedDirName = "derived"

	mainLogName     = "genome-manager.log"
	getGenesLogName = "get-genes.log"

	genomeRecoveryName   = "genome_recovery"
	userGeneRecoveryName = "user_gene_recovery"
)

// Registry trees are group-writable so several users on a shared mount can
// register assets. The get-genes log is world-writable because retrieval runs
// under pipeline service accounts.
const (
	DirPerm       os.FileMode = 0o775
	FilePerm      os.FileMode = 0o664
	SharedLogPerm os.FileMode = 0o666
)

// GenomesDir returns the species asset tree under root.
func GenomesDir(root string) string { return filepath.Join(root, genomesDirName) }

// UserGenesDir returns the per-gene asset tree under root.
func UserGenesDir(root string) string { return filepath.Join(root, userGenesDirName) }

// GenomeConfDir returns the directory holding one config per release.
func GenomeConfDir(root string) string {
	return filepath.Join(root, confDirName, genomeConfDirName)
}

// UserConfDir returns the directory holding one config per user-defined gene.
func UserConfDir(root string) string {
	return filepath.Join(root, confDirName, userConfDirName)
}

// MountsPath returns the location of the registry's mount table.
func MountsPath(root string) string {
	return filepath.Join(root, confDirName, mountsFileName)
}

// LogDir returns the registry's log directory.
func LogDir(root string) string { return filepath.Join(root, logDirName) }

// MainLogPath returns the log file shared by every command except get-genes.
func MainLogPath(root string) string { return filepath.Join(LogDir(root), mainLogName) }

// GetGenesLogPath returns the log file used by retrieval runs.
func GetGenesLogPath(root string) string { return filepath.Join(LogDir(root), getGenesLogName) }

// TempDir returns the scratch tree removed by Clean.
func TempDir(root string) string { return filepath.Join(root, tempDirName) }

// DownloadsDir returns where fetched source files land before registration.
func DownloadsDir(root string) string { return filepath.Join(TempDir(root), downloadsDirName) }

func genomeRecoveryDir(root string) string {
	return filepath.Join(TempDir(root), genomeRecoveryName)
}

func userGeneRecoveryDir(root string) string {
	return filepath.Join(TempDir(root), userGeneRecoveryName)
}

// ReleaseDir returns the directory grouping every species stored for one
// annotation release.
func ReleaseDir(root string, release int) string {
	return filepath.Join(GenomesDir(root), fmt.Sprintf("release-%d", release))
}

// SpeciesDir returns the directory holding one species' files for a release.
func SpeciesDir(root string, release int, species string) string {
	return filepath.Join(ReleaseDir(root, release), species)
}

// GenomeConfigPath returns the release config file, named with the
// zero-padded release number so configs list in release order.
func GenomeConfigPath(root string, release int) string {
	return filepath.Join(GenomeConfDir(root), fmt.Sprintf("%03d.json", release))
}

// UserGeneConfigPath returns the config file for one user-defined gene.
func UserGeneConfigPath(root, geneID string) string {
	return filepath.Join(UserConfDir(root), geneID+".json")
}

// versionFileName names a stored gene model version, zero-padded so versions
// list in order.
func versionFileName(geneID string, version int) string {
	return fmt.Sprintf("%s_v%02d.yaml", geneID, version)
}
