package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/gitorg-cli/gitorg/internal/execshell"
)

const (
	notARepositoryStderrFragmentConstant = "not a git repository"
	remoteExistsStderrFragmentConstant   = "already exists"
	remoteMissingStderrFragmentConstant  = "no such remote"
	fetchDirectionSuffixConstant         = "(fetch)"
	remoteListFieldCountConstant         = 2
)

// GitExecutor is the subset of shell execution the manager needs.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ShellGitManager implements RepositoryManager by invoking the local git client.
type ShellGitManager struct {
	executor GitExecutor
}

// NewShellGitManager constructs a manager around the provided executor.
func NewShellGitManager(executor GitExecutor) *ShellGitManager {
	return &ShellGitManager{executor: executor}
}

// ListRemotes parses `git remote -v`, keeping one entry per remote name.
func (manager *ShellGitManager) ListRemotes(executionContext context.Context, repositoryPath string) ([]NamedRemote, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{execshell.GitRemoteSubcommandConstant, execshell.GitRemoteVerboseFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, classifyGitFailure(executionError)
	}

	return parseRemoteListing(executionResult.StandardOutput), nil
}

// AddRemote registers remoteName pointing at remoteURL.
func (manager *ShellGitManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{execshell.GitRemoteSubcommandConstant, execshell.GitRemoteAddSubcommandConstant, remoteName, remoteURL},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return classifyGitFailure(executionError)
	}
	return nil
}

// SetRemoteURL rewrites the URL of an existing remote.
func (manager *ShellGitManager) SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{execshell.GitRemoteSubcommandConstant, execshell.GitRemoteSetURLSubcommandConstant, remoteName, remoteURL},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return classifyGitFailure(executionError)
	}
	return nil
}

// CheckCleanWorktree reports whether `git status --porcelain` produced no output.
func (manager *ShellGitManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{execshell.GitStatusSubcommandConstant, execshell.GitStatusPorcelainFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false, classifyGitFailure(executionError)
	}

	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// GetCurrentBranch resolves the checked-out branch via `git rev-parse --abbrev-ref HEAD`.
func (manager *ShellGitManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{execshell.GitRevParseSubcommandConstant, execshell.GitAbbrevRefFlagConstant, execshell.GitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", classifyGitFailure(executionError)
	}

	branchName := strings.TrimSpace(executionResult.StandardOutput)
	if branchName == execshell.GitHeadReferenceConstant {
		return "", ErrDetachedHead
	}

	return branchName, nil
}

// Push pushes branchName to the named remote.
func (manager *ShellGitManager) Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{execshell.GitPushSubcommandConstant, remoteName, branchName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return classifyGitFailure(executionError)
	}
	return nil
}

// classifyGitFailure maps well-known git stderr output onto sentinel errors so
// callers can branch on errors.Is instead of scraping messages themselves.
func classifyGitFailure(executionError error) error {
	failedError := execshell.CommandFailedError{}
	if !errors.As(executionError, &failedError) {
		return executionError
	}

	loweredStandardError := strings.ToLower(failedError.Result.StandardError)
	switch {
	case strings.Contains(loweredStandardError, notARepositoryStderrFragmentConstant):
		return errors.Join(ErrNotARepository, executionError)
	case strings.Contains(loweredStandardError, remoteExistsStderrFragmentConstant):
		return errors.Join(ErrRemoteAlreadyExists, executionError)
	case strings.Contains(loweredStandardError, remoteMissingStderrFragmentConstant):
		return errors.Join(ErrRemoteNotFound, executionError)
	default:
		return executionError
	}
}

// parseRemoteListing extracts fetch-direction entries from `git remote -v` output.
func parseRemoteListing(listing string) []NamedRemote {
	var remotes []NamedRemote
	seenNames := make(map[string]struct{})

	for _, listingLine := range strings.Split(listing, "\n") {
		trimmedLine := strings.TrimSpace(listingLine)
		if len(trimmedLine) == 0 {
			continue
		}
		if !strings.HasSuffix(trimmedLine, fetchDirectionSuffixConstant) {
			continue
		}

		lineFields := strings.Fields(trimmedLine)
		if len(lineFields) < remoteListFieldCountConstant {
			continue
		}

		remoteName := lineFields[0]
		if _, alreadySeen := seenNames[remoteName]; alreadySeen {
			continue
		}
		seenNames[remoteName] = struct{}{}

		remotes = append(remotes, NamedRemote{Name: remoteName, URL: lineFields[1]})
	}

	return remotes
}
