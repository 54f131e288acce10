// Package gitorgcfg loads and validates the declarative git-org configuration.
//
// The configuration names an organization, a set of named remote hosts, and
// directory names to skip. It is loaded once at process start from
// git-org.yaml (searched upward from the working directory) merged with
// GITORG-prefixed environment overrides, and treated as immutable afterwards.
package gitorgcfg
