package registry

import "errors"

// Sentinel errors for the failure classes callers branch on. Wrapped errors
// carry the specifics; these identify the category.
var (
	// ErrDuplicateGenome reports a genome id already present in a release config.
	ErrDuplicateGenome = errors.New("genome already registered")

	// ErrDuplicateMount reports a mount name or path already in the mount table.
	ErrDuplicateMount = errors.New("mountpoint already registered")

	// ErrDuplicateVersion reports a gene model identical to a stored version.
	ErrDuplicateVersion = errors.New("gene model already stored")

	// ErrUnknownMount reports a mount name absent from the mount table or from
	// an asset's path map.
	ErrUnknownMount = errors.New("unknown mount")

	// ErrUnknownVersion reports a gene model version that is not stored.
	ErrUnknownVersion = errors.New("unknown gene model version")

	// ErrProtectedMount reports an attempt to remove the default mount or the
	// mount the command is running on.
	ErrProtectedMount = errors.New("mountpoint is protected")

	// ErrNoMatch reports a genome input pattern that matched nothing.
	ErrNoMatch = errors.New("no matching file")

	// ErrMultipleMatches reports a genome input pattern that matched more than
	// one file.
	ErrMultipleMatches = errors.New("multiple matching files")

	// ErrFileFormat reports a malformed input file.
	ErrFileFormat = errors.New("malformed file")

	// ErrRegistryExists reports an init target that already holds data.
	ErrRegistryExists = errors.New("registry location already in use")

	// ErrIncompatibleFormat reports a mount table written by an incompatible
	// registry version.
	ErrIncompatibleFormat = errors.New("incompatible registry format")

	// ErrNotImplemented marks operations that are deliberately refused until a
	// safe implementation exists.
	ErrNotImplemented = errors.New("not implemented")
)
