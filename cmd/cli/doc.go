// Package cli wires the gitorg command hierarchy: configuration loading,
// structured logging, and the sync, push, list, and init subcommands.
package cli
