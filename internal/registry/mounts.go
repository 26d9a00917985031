package registry

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// FormatVersion is the mount-table format this binary reads and writes.
// Tables from a different major version are rejected.
const FormatVersion = "1.0.0"

//go:embed schema/mounts.schema.json
var mountsSchemaBytes []byte

var (
	mountsSchema     *jsonschema.Schema
	mountsSchemaOnce sync.Once
	mountsSchemaErr  error
)

// MountTable maps the names of the systems a registry is reachable from to
// the absolute path each system mounts the registry at.
type MountTable struct {
	Format       string            `json:"format,omitempty"`
	DefaultMount string            `json:"default_system_name"`
	Mounts       map[string]string `json:"mounts"`
}

// getMountsSchema compiles the embedded mount-table schema once.
func getMountsSchema() (*jsonschema.Schema, error) {
	mountsSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(mountsSchemaBytes))
		if err != nil {
			mountsSchemaErr = fmt.Errorf("unmarshaling mounts schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("mounts.schema.json", doc); err != nil {
			mountsSchemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		mountsSchema, mountsSchemaErr = c.Compile("mounts.schema.json")
		if mountsSchemaErr != nil {
			mountsSchemaErr = fmt.Errorf("compiling mounts schema: %w", mountsSchemaErr)
		}
	})
	return mountsSchema, mountsSchemaErr
}

// LoadMountTable reads and validates the mount table stored under root.
func LoadMountTable(root string) (*MountTable, error) {
	path := MountsPath(root)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mount table: %w", err)
	}

	schema, err := getMountsSchema()
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding mount table %s: %w", path, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("mount table %s is malformed: %w", path, err)
	}

	var t MountTable
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decoding mount table %s: %w", path, err)
	}
	if err := checkFormat(t.Format); err != nil {
		return nil, fmt.Errorf("mount table %s: %w", path, err)
	}
	return &t, nil
}

// checkFormat rejects tables written by a registry with a different major
// format version. Tables from before format stamping load as current.
func checkFormat(format string) error {
	if format == "" {
		return nil
	}
	got, err := semver.NewVersion(strings.TrimPrefix(format, "v"))
	if err != nil {
		return fmt.Errorf("parsing format %q: %w", format, err)
	}
	want := semver.MustParse(FormatVersion)
	if got.Major() != want.Major() {
		return fmt.Errorf("format %s not readable by format %s: %w",
			format, FormatVersion, ErrIncompatibleFormat)
	}
	return nil
}

// Write persists the table under root with registry file permissions.
func (t *MountTable) Write(root string) error {
	if t.Format == "" {
		t.Format = FormatVersion
	}
	return writeJSON(MountsPath(root), t)
}

// ActiveMountFor resolves which named mount the given registry path refers
// to, by path equality over the table.
func (t *MountTable) ActiveMountFor(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving registry path: %w", err)
	}
	for name, p := range t.Mounts {
		mp, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if mp == abs {
			return name, nil
		}
	}
	return "", fmt.Errorf("path %s does not match any registered mount: %w", abs, ErrUnknownMount)
}
