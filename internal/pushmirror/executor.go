package pushmirror

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitorg-cli/gitorg/internal/gitrepo"
	"github.com/gitorg-cli/gitorg/internal/selection"
)

const (
	gitManagerNotConfiguredMessageConstant = "git manager not configured"
	worktreeCheckErrorTemplateConstant     = "checking worktree in %s: %w"
	branchResolveErrorTemplateConstant     = "resolving current branch in %s: %w"
	pushErrorTemplateConstant              = "pushing %s to %q from %s: %w"
)

// ErrGitManagerNotConfigured reports an executor constructed without a git manager.
var ErrGitManagerNotConfigured = errors.New(gitManagerNotConfiguredMessageConstant)

// Dependencies captures collaborators required to push branches.
type Dependencies struct {
	GitManager gitrepo.RepositoryManager
}

// Options configures a single repository push.
type Options struct {
	RemoteNames []string
	DryRun      bool
}

// Result reports the outcome of pushing a single repository.
type Result struct {
	RepositoryName string
	BranchName     string
	Pushed         []string
	SkippedDirty   bool
	Errors         []error
}

// HasErrors reports whether any push failed.
func (result Result) HasErrors() bool {
	return len(result.Errors) > 0
}

// Executor pushes the active branch of managed repositories to their remotes.
type Executor struct {
	dependencies Dependencies
}

// NewExecutor constructs an Executor from the provided dependencies.
func NewExecutor(dependencies Dependencies) (*Executor, error) {
	if dependencies.GitManager == nil {
		return nil, ErrGitManagerNotConfigured
	}
	return &Executor{dependencies: dependencies}, nil
}

// Execute pushes the repository's current branch to each remote in options.
// A dirty worktree skips the repository; a detached HEAD is an error.
func (executor *Executor) Execute(
	executionContext context.Context,
	repository selection.ManagedRepository,
	options Options,
) Result {
	result := Result{RepositoryName: repository.Name}

	worktreeClean, worktreeError := executor.dependencies.GitManager.CheckCleanWorktree(executionContext, repository.Path)
	if worktreeError != nil {
		result.Errors = append(result.Errors, fmt.Errorf(worktreeCheckErrorTemplateConstant, repository.Path, worktreeError))
		return result
	}
	if !worktreeClean {
		result.SkippedDirty = true
		return result
	}

	branchName, branchError := executor.dependencies.GitManager.GetCurrentBranch(executionContext, repository.Path)
	if branchError != nil {
		result.Errors = append(result.Errors, fmt.Errorf(branchResolveErrorTemplateConstant, repository.Path, branchError))
		return result
	}
	result.BranchName = branchName

	for _, remoteName := range options.RemoteNames {
		if options.DryRun {
			result.Pushed = append(result.Pushed, remoteName)
			continue
		}

		pushError := executor.dependencies.GitManager.Push(executionContext, repository.Path, remoteName, branchName)
		if pushError != nil {
			result.Errors = append(result.Errors, fmt.Errorf(pushErrorTemplateConstant, branchName, remoteName, repository.Path, pushError))
			continue
		}
		result.Pushed = append(result.Pushed, remoteName)
	}

	return result
}
