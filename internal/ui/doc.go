// Package ui provides user-facing prompting helpers for commands that ask
// for confirmation before mutating repositories.
package ui
