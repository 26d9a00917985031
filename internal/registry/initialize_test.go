package registry

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestInitialize_CreatesTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "registry")
	var out bytes.Buffer
	if err := Initialize(root, "main", "", &out); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	for _, dir := range []string{
		GenomesDir(root), UserGenesDir(root),
		GenomeConfDir(root), UserConfDir(root), LogDir(root),
	} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("expected directory %s: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
	for _, file := range []string{MainLogPath(root), GetGenesLogPath(root), MountsPath(root)} {
		if _, err := os.Stat(file); err != nil {
			t.Errorf("expected file %s: %v", file, err)
		}
	}
	if !bytes.Contains(out.Bytes(), []byte("[ OK ]")) {
		t.Errorf("expected progress lines, got:\n%s", out.String())
	}

	table, err := LoadMountTable(root)
	if err != nil {
		t.Fatalf("LoadMountTable() error = %v", err)
	}
	if table.DefaultMount != "main" {
		t.Errorf("DefaultMount = %q, want %q", table.DefaultMount, "main")
	}
	abs, _ := filepath.Abs(root)
	if table.Mounts["main"] != abs {
		t.Errorf("Mounts[main] = %q, want %q", table.Mounts["main"], abs)
	}
	if table.Format != FormatVersion {
		t.Errorf("Format = %q, want %q", table.Format, FormatVersion)
	}
}

func TestInitialize_SharedPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix permissions do not apply on windows")
	}
	root := filepath.Join(t.TempDir(), "registry")
	if err := Initialize(root, "main", "", io.Discard); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	info, err := os.Stat(GenomesDir(root))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != DirPerm {
		t.Errorf("genomes dir permissions = %o, want %o", perm, DirPerm)
	}
	info, err = os.Stat(GetGenesLogPath(root))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != SharedLogPerm {
		t.Errorf("get-genes log permissions = %o, want %o", perm, SharedLogPerm)
	}
}

func TestInitialize_EmptyDirOK(t *testing.T) {
	root := t.TempDir()
	if err := Initialize(root, "main", "", io.Discard); err != nil {
		t.Fatalf("Initialize() on empty dir error = %v", err)
	}
}

func TestInitialize_RefusesNonEmptyDir(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "occupied"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Initialize(root, "main", "", io.Discard)
	if !errors.Is(err, ErrRegistryExists) {
		t.Fatalf("Initialize() error = %v, want ErrRegistryExists", err)
	}
}

func TestInitialize_RefusesExistingFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "registry")
	if err := os.WriteFile(root, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Initialize(root, "main", "", io.Discard)
	if !errors.Is(err, ErrRegistryExists) {
		t.Fatalf("Initialize() error = %v, want ErrRegistryExists", err)
	}
}

func TestInitialize_RequiresMountName(t *testing.T) {
	root := filepath.Join(t.TempDir(), "registry")
	if err := Initialize(root, "", "", io.Discard); err == nil {
		t.Fatal("expected error for empty mount name, got nil")
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("expected no tree to be created without a mount name")
	}
}

func TestEnsureDir_SkipsExisting(t *testing.T) {
	tmp := t.TempDir()
	var out bytes.Buffer
	if err := ensureDir(&out, tmp, DirPerm); err != nil {
		t.Fatalf("ensureDir() error = %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("[SKIP]")) {
		t.Errorf("expected a skip line for existing dir, got:\n%s", out.String())
	}
}
