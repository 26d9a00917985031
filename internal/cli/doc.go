// Package cli defines the Cobra command tree for the genomereg CLI. Each file
// in this package registers one top-level command (init, register-genome,
// get-genes, etc.) with the root command. Command implementations delegate to
// internal packages for registry logic and only handle flag parsing, I/O
// formatting, and user interaction.
package cli
