// Package reconcile computes the desired remote set for each managed
// repository and applies the minimal add/update operations to match it.
// Remotes not named in the configuration are never touched, and a repeated
// run with no external changes performs zero mutations.
package reconcile
