// Package registry implements the genome registry's consistency engine: the
// multi-mount asset records stored in the registry's config files, path
// re-anchoring when storage mounts are added or removed, the backup-and-restore
// transaction that rewrites every config during a mountpoint edit, and the
// builders that copy genome and gene files into the registry tree. Decoding a
// config never touches the filesystem; all path, fingerprint, and format checks
// run in an explicit validation pass.
package registry
