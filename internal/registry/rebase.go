package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RebasePath derives the path an asset would have under a mount rooted at
// newBase, by re-anchoring the path suffix after the last occurrence of the
// anchor directory in one of the asset's existing paths. Every stored path
// shares the same registry-relative suffix, so any of them can serve as the
// source.
func RebasePath(paths map[string]string, anchor, newBase string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("no stored path to derive from")
	}
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	existing := filepath.ToSlash(paths[names[0]])
	marker := "/" + anchor + "/"
	idx := strings.LastIndex(existing, marker)
	if idx < 0 {
		return "", fmt.Errorf("path %s has no %s component", existing, anchor)
	}
	suffix := existing[idx+len(marker):]
	return filepath.Join(newBase, anchor, filepath.FromSlash(suffix)), nil
}

// addMount derives and stores the asset's path under a newly registered
// mount. Names already present are left untouched, so re-attaching a mount is
// safe. With verify set, the derived path must exist on this system.
func addMount(a mountable, name, base, anchor string, verify bool) error {
	paths := a.pathMap()
	if _, ok := paths[name]; ok {
		return nil
	}
	derived, err := RebasePath(paths, anchor, base)
	if err != nil {
		return err
	}
	if verify {
		if _, err := os.Stat(derived); err != nil {
			return fmt.Errorf("derived path for mount %q: %w", name, err)
		}
	}
	paths[name] = derived
	return nil
}

// removeMount drops the named mount's path from the asset. A mount the asset
// never carried is an error so that config drift surfaces instead of being
// papered over.
func removeMount(a mountable, name string) error {
	paths := a.pathMap()
	if _, ok := paths[name]; !ok {
		return fmt.Errorf("no path stored for mount %q: %w", name, ErrUnknownMount)
	}
	delete(paths, name)
	return nil
}
