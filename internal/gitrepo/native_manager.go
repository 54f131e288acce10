package gitrepo

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	gogitconfig "github.com/go-git/go-git/v5/config"
)

const (
	branchRefSpecTemplateConstant = "refs/heads/%s:refs/heads/%s"
)

// NativeGitManager implements RepositoryManager on the pure-Go go-git library,
// so reconciliation works without a git binary on the PATH.
type NativeGitManager struct{}

// NewNativeGitManager constructs a go-git backed manager.
func NewNativeGitManager() *NativeGitManager {
	return &NativeGitManager{}
}

// ListRemotes reads the repository configuration and reports each remote's first URL.
func (manager *NativeGitManager) ListRemotes(executionContext context.Context, repositoryPath string) ([]NamedRemote, error) {
	repository, openError := openRepository(repositoryPath)
	if openError != nil {
		return nil, openError
	}

	configuredRemotes, remotesError := repository.Remotes()
	if remotesError != nil {
		return nil, remotesError
	}

	var remotes []NamedRemote
	for _, configuredRemote := range configuredRemotes {
		remoteConfiguration := configuredRemote.Config()
		if len(remoteConfiguration.URLs) == 0 {
			continue
		}
		remotes = append(remotes, NamedRemote{Name: remoteConfiguration.Name, URL: remoteConfiguration.URLs[0]})
	}

	return remotes, nil
}

// AddRemote registers remoteName pointing at remoteURL.
func (manager *NativeGitManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	repository, openError := openRepository(repositoryPath)
	if openError != nil {
		return openError
	}

	_, createError := repository.CreateRemote(&gogitconfig.RemoteConfig{
		Name: remoteName,
		URLs: []string{remoteURL},
	})
	if errors.Is(createError, gogit.ErrRemoteExists) {
		return errors.Join(ErrRemoteAlreadyExists, createError)
	}

	return createError
}

// SetRemoteURL rewrites the URL list of an existing remote in place.
func (manager *NativeGitManager) SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	repository, openError := openRepository(repositoryPath)
	if openError != nil {
		return openError
	}

	repositoryConfiguration, configurationError := repository.Config()
	if configurationError != nil {
		return configurationError
	}

	remoteConfiguration, remoteExists := repositoryConfiguration.Remotes[remoteName]
	if !remoteExists {
		return ErrRemoteNotFound
	}

	remoteConfiguration.URLs = []string{remoteURL}
	return repository.SetConfig(repositoryConfiguration)
}

// CheckCleanWorktree reports whether the worktree status is clean.
func (manager *NativeGitManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	repository, openError := openRepository(repositoryPath)
	if openError != nil {
		return false, openError
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return false, worktreeError
	}

	worktreeStatus, statusError := worktree.Status()
	if statusError != nil {
		return false, statusError
	}

	return worktreeStatus.IsClean(), nil
}

// GetCurrentBranch resolves HEAD and reports the checked-out branch name.
func (manager *NativeGitManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	repository, openError := openRepository(repositoryPath)
	if openError != nil {
		return "", openError
	}

	headReference, headError := repository.Head()
	if headError != nil {
		return "", headError
	}

	if !headReference.Name().IsBranch() {
		return "", ErrDetachedHead
	}

	return headReference.Name().Short(), nil
}

// Push pushes branchName to the named remote, treating up-to-date as success.
func (manager *NativeGitManager) Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	repository, openError := openRepository(repositoryPath)
	if openError != nil {
		return openError
	}

	branchRefSpec := gogitconfig.RefSpec(fmt.Sprintf(branchRefSpecTemplateConstant, branchName, branchName))
	pushError := repository.PushContext(executionContext, &gogit.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []gogitconfig.RefSpec{branchRefSpec},
	})
	if errors.Is(pushError, gogit.NoErrAlreadyUpToDate) {
		return nil
	}

	return pushError
}

func openRepository(repositoryPath string) (*gogit.Repository, error) {
	repository, openError := gogit.PlainOpen(repositoryPath)
	if errors.Is(openError, gogit.ErrRepositoryNotExists) {
		return nil, errors.Join(ErrNotARepository, openError)
	}
	if openError != nil {
		return nil, openError
	}
	return repository, nil
}
