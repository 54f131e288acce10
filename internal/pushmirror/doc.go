// Package pushmirror pushes the active branch of each managed repository to
// every configured remote. Repositories with pending changes are skipped
// rather than pushed half-finished.
package pushmirror
