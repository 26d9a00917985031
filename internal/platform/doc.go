// Package platform provides cross-platform filesystem operations for the
// permission and ownership handling a shared registry needs. On Unix systems
// it uses chmod and chown directly; on Windows, where Unix permission bits
// and group ownership do not apply, the operations are no-ops.
package platform
