package gitrepo

import (
	"context"
	"errors"
)

const (
	notARepositoryMessageConstant      = "not a git repository"
	remoteAlreadyExistsMessageConstant = "remote already exists"
	remoteNotFoundMessageConstant      = "remote not found"
	detachedHeadMessageConstant        = "repository is in a detached HEAD state"
)

// Sentinel errors surfaced by RepositoryManager implementations.
var (
	ErrNotARepository      = errors.New(notARepositoryMessageConstant)
	ErrRemoteAlreadyExists = errors.New(remoteAlreadyExistsMessageConstant)
	ErrRemoteNotFound      = errors.New(remoteNotFoundMessageConstant)
	ErrDetachedHead        = errors.New(detachedHeadMessageConstant)
)

// NamedRemote pairs a remote name with its fetch URL.
type NamedRemote struct {
	Name string
	URL  string
}

// RepositoryManager exposes the repository-level git operations gitorg relies on.
type RepositoryManager interface {
	// ListRemotes returns the configured remotes of the repository at repositoryPath.
	// It fails with ErrNotARepository when the path is not a git working tree.
	ListRemotes(executionContext context.Context, repositoryPath string) ([]NamedRemote, error)
	// AddRemote registers a new remote. It fails with ErrRemoteAlreadyExists
	// when the name is already present.
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	// SetRemoteURL rewrites the URL of an existing remote. It fails with
	// ErrRemoteNotFound when the name is absent.
	SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	// CheckCleanWorktree reports whether the working tree has no pending changes.
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	// GetCurrentBranch returns the checked-out branch name, or ErrDetachedHead.
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	// Push pushes branchName to the named remote.
	Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
}
