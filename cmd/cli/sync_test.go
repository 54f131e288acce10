package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitorg-cli/gitorg/cmd/cli"
	"github.com/gitorg-cli/gitorg/internal/gitorgcfg"
	"github.com/gitorg-cli/gitorg/internal/gitrepo"
)

const (
	testStaleRemoteURL        = "git@github.com:oldorg/proj1.git"
	testFailuresErrorMessage  = "one or more repositories reported errors"
	testDesiredProj1RemoteURL = "git@github.com:acme/proj1.git"
)

type recordedRemoteChange struct {
	repositoryPath string
	operation      string
	remoteName     string
	remoteURL      string
}

type recordedBranchPush struct {
	repositoryPath string
	remoteName     string
	branchName     string
}

// memoryRepositoryManager serves remotes from an in-memory map keyed by
// repository path and records every mutation.
type memoryRepositoryManager struct {
	stateMutex       sync.Mutex
	remotesByPath    map[string]map[string]string
	listFailurePaths map[string]error
	dirtyPaths       map[string]bool
	changes          []recordedRemoteChange
	pushes           []recordedBranchPush
}

func newMemoryRepositoryManager() *memoryRepositoryManager {
	return &memoryRepositoryManager{remotesByPath: make(map[string]map[string]string)}
}

func (manager *memoryRepositoryManager) ListRemotes(_ context.Context, repositoryPath string) ([]gitrepo.NamedRemote, error) {
	manager.stateMutex.Lock()
	defer manager.stateMutex.Unlock()

	if listError, shouldFail := manager.listFailurePaths[repositoryPath]; shouldFail {
		return nil, listError
	}

	remotes := make([]gitrepo.NamedRemote, 0, len(manager.remotesByPath[repositoryPath]))
	for remoteName, remoteURL := range manager.remotesByPath[repositoryPath] {
		remotes = append(remotes, gitrepo.NamedRemote{Name: remoteName, URL: remoteURL})
	}
	return remotes, nil
}

func (manager *memoryRepositoryManager) AddRemote(_ context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	manager.stateMutex.Lock()
	defer manager.stateMutex.Unlock()

	if manager.remotesByPath[repositoryPath] == nil {
		manager.remotesByPath[repositoryPath] = make(map[string]string)
	}
	manager.remotesByPath[repositoryPath][remoteName] = remoteURL
	manager.changes = append(manager.changes, recordedRemoteChange{repositoryPath: repositoryPath, operation: "add", remoteName: remoteName, remoteURL: remoteURL})
	return nil
}

func (manager *memoryRepositoryManager) SetRemoteURL(_ context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	manager.stateMutex.Lock()
	defer manager.stateMutex.Unlock()

	manager.remotesByPath[repositoryPath][remoteName] = remoteURL
	manager.changes = append(manager.changes, recordedRemoteChange{repositoryPath: repositoryPath, operation: "set-url", remoteName: remoteName, remoteURL: remoteURL})
	return nil
}

func (manager *memoryRepositoryManager) CheckCleanWorktree(_ context.Context, repositoryPath string) (bool, error) {
	return !manager.dirtyPaths[repositoryPath], nil
}

func (manager *memoryRepositoryManager) GetCurrentBranch(_ context.Context, _ string) (string, error) {
	return "main", nil
}

func (manager *memoryRepositoryManager) Push(_ context.Context, repositoryPath string, remoteName string, branchName string) error {
	manager.stateMutex.Lock()
	defer manager.stateMutex.Unlock()
	manager.pushes = append(manager.pushes, recordedBranchPush{repositoryPath: repositoryPath, remoteName: remoteName, branchName: branchName})
	return nil
}

func syncTestConfiguration() gitorgcfg.Configuration {
	return gitorgcfg.Configuration{
		Org:        "acme",
		Remotes:    map[string]string{"github": "github.com"},
		GitBackend: gitorgcfg.GitBackendCLI,
		Workers:    1,
	}
}

func buildSyncCommandHarness(testInstance *testing.T, gitManager gitrepo.RepositoryManager) (*bytes.Buffer, *bytes.Buffer, func(arguments ...string) error) {
	testInstance.Helper()

	builder := cli.SyncCommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: syncTestConfiguration,
		GitManager:            gitManager,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	stdoutBuffer := &bytes.Buffer{}
	stderrBuffer := &bytes.Buffer{}
	command.SetOut(stdoutBuffer)
	command.SetErr(stderrBuffer)

	return stdoutBuffer, stderrBuffer, func(arguments ...string) error {
		command.SetArgs(arguments)
		return command.Execute()
	}
}

func createManagedRepositories(testInstance *testing.T, repositoryNames ...string) string {
	testInstance.Helper()
	rootPath := testInstance.TempDir()
	for _, repositoryName := range repositoryNames {
		require.NoError(testInstance, os.Mkdir(filepath.Join(rootPath, repositoryName), testDirectoryPermissionsConstant))
	}
	return rootPath
}

func TestSyncCommandAddsMissingRemotes(testInstance *testing.T) {
	rootPath := createManagedRepositories(testInstance, "proj1", "proj2")
	gitManager := newMemoryRepositoryManager()
	stdoutBuffer, _, executeCommand := buildSyncCommandHarness(testInstance, gitManager)

	require.NoError(testInstance, executeCommand(rootPath, "--yes"))

	require.Len(testInstance, gitManager.changes, 2)
	require.Equal(testInstance, testDesiredProj1RemoteURL, gitManager.remotesByPath[filepath.Join(rootPath, "proj1")]["github"])
	require.Contains(testInstance, stdoutBuffer.String(), "proj1")
	require.Contains(testInstance, stdoutBuffer.String(), "proj2")
	require.Contains(testInstance, stdoutBuffer.String(), "ok")
}

func TestSyncCommandUpdatesStaleRemotes(testInstance *testing.T) {
	rootPath := createManagedRepositories(testInstance, "proj1")
	gitManager := newMemoryRepositoryManager()
	gitManager.remotesByPath[filepath.Join(rootPath, "proj1")] = map[string]string{"github": testStaleRemoteURL}
	_, _, executeCommand := buildSyncCommandHarness(testInstance, gitManager)

	require.NoError(testInstance, executeCommand(rootPath, "--yes"))

	require.Len(testInstance, gitManager.changes, 1)
	require.Equal(testInstance, "set-url", gitManager.changes[0].operation)
	require.Equal(testInstance, testDesiredProj1RemoteURL, gitManager.remotesByPath[filepath.Join(rootPath, "proj1")]["github"])
}

func TestSyncCommandDryRunPerformsNoMutations(testInstance *testing.T) {
	rootPath := createManagedRepositories(testInstance, "proj1")
	gitManager := newMemoryRepositoryManager()
	stdoutBuffer, _, executeCommand := buildSyncCommandHarness(testInstance, gitManager)

	require.NoError(testInstance, executeCommand(rootPath, "--dry-run"))

	require.Empty(testInstance, gitManager.changes)
	require.Contains(testInstance, stdoutBuffer.String(), "github")
}

func TestSyncCommandReportsRepositoryFailures(testInstance *testing.T) {
	rootPath := createManagedRepositories(testInstance, "broken", "healthy")
	gitManager := newMemoryRepositoryManager()
	gitManager.listFailurePaths = map[string]error{
		filepath.Join(rootPath, "broken"): gitrepo.ErrNotARepository,
	}
	stdoutBuffer, stderrBuffer, executeCommand := buildSyncCommandHarness(testInstance, gitManager)

	executionError := executeCommand(rootPath, "--yes")
	require.EqualError(testInstance, executionError, testFailuresErrorMessage)

	require.Contains(testInstance, stderrBuffer.String(), "broken")
	require.Contains(testInstance, stdoutBuffer.String(), "healthy")
	require.Equal(testInstance, "git@github.com:acme/healthy.git", gitManager.remotesByPath[filepath.Join(rootPath, "healthy")]["github"])
}

func TestSyncCommandSupportsParallelWorkers(testInstance *testing.T) {
	rootPath := createManagedRepositories(testInstance, "alpha", "bravo", "charlie")
	gitManager := newMemoryRepositoryManager()
	_, _, executeCommand := buildSyncCommandHarness(testInstance, gitManager)

	require.NoError(testInstance, executeCommand(rootPath, "--yes", "--workers", "3"))
	require.Len(testInstance, gitManager.changes, 3)
}
