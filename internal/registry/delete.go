package registry

import "fmt"

// DeleteGenome removes a registered genome. Refused for now: deleting shared
// reference data needs a reconciliation step with consumers on other mounts
// that does not exist yet.
func DeleteGenome(root, id string) error {
	return fmt.Errorf("delete genome %q: %w", id, ErrNotImplemented)
}
