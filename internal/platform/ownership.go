package platform

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"
)

// ChownTree assigns group ownership of every file and directory under root,
// keeping the current owner, so a registry on a shared mount can be
// maintained by everyone in the group. On Windows this is a no-op.
func ChownTree(root, group string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	g, err := user.LookupGroup(group)
	if err != nil {
		return fmt.Errorf("looking up group %s: %w", group, err)
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return fmt.Errorf("parsing gid %q for group %s: %w", g.Gid, group, err)
	}
	uid := os.Getuid()

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := os.Chown(path, uid, gid); err != nil {
			return fmt.Errorf("chown %s: %w", path, err)
		}
		return nil
	})
}
