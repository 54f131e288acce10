// Package gitrepo exposes repository-level git operations behind the
// RepositoryManager interface, with one implementation shelling out to the
// local git client and one backed by the pure-Go go-git library.
package gitrepo
