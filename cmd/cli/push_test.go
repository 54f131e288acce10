package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitorg-cli/gitorg/cmd/cli"
	"github.com/gitorg-cli/gitorg/internal/gitorgcfg"
	"github.com/gitorg-cli/gitorg/internal/gitrepo"
)

func buildPushCommandHarness(testInstance *testing.T, gitManager gitrepo.RepositoryManager) (*bytes.Buffer, func(arguments ...string) error) {
	testInstance.Helper()

	builder := cli.PushCommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: syncTestConfiguration,
		GitManager:            gitManager,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	stdoutBuffer := &bytes.Buffer{}
	command.SetOut(stdoutBuffer)
	command.SetErr(&bytes.Buffer{})

	return stdoutBuffer, func(arguments ...string) error {
		command.SetArgs(arguments)
		return command.Execute()
	}
}

func TestPushCommandPushesActiveBranches(testInstance *testing.T) {
	rootPath := createManagedRepositories(testInstance, "proj1", "proj2")
	gitManager := newMemoryRepositoryManager()
	stdoutBuffer, executeCommand := buildPushCommandHarness(testInstance, gitManager)

	require.NoError(testInstance, executeCommand(rootPath))

	require.Equal(testInstance, []recordedBranchPush{
		{repositoryPath: filepath.Join(rootPath, "proj1"), remoteName: "github", branchName: "main"},
		{repositoryPath: filepath.Join(rootPath, "proj2"), remoteName: "github", branchName: "main"},
	}, gitManager.pushes)
	require.Contains(testInstance, stdoutBuffer.String(), "main")
}

func TestPushCommandSkipsDirtyRepositories(testInstance *testing.T) {
	rootPath := createManagedRepositories(testInstance, "clean", "messy")
	gitManager := newMemoryRepositoryManager()
	gitManager.dirtyPaths = map[string]bool{filepath.Join(rootPath, "messy"): true}
	stdoutBuffer, executeCommand := buildPushCommandHarness(testInstance, gitManager)

	require.NoError(testInstance, executeCommand(rootPath))

	require.Equal(testInstance, []recordedBranchPush{
		{repositoryPath: filepath.Join(rootPath, "clean"), remoteName: "github", branchName: "main"},
	}, gitManager.pushes)
	require.Contains(testInstance, stdoutBuffer.String(), "dirty")
}

func TestPushCommandDryRunPerformsNoPushes(testInstance *testing.T) {
	rootPath := createManagedRepositories(testInstance, "proj1")
	gitManager := newMemoryRepositoryManager()
	stdoutBuffer, executeCommand := buildPushCommandHarness(testInstance, gitManager)

	require.NoError(testInstance, executeCommand(rootPath, "--dry-run"))

	require.Empty(testInstance, gitManager.pushes)
	require.Contains(testInstance, stdoutBuffer.String(), "github")
}

func TestPushCommandRejectsInvalidConfiguration(testInstance *testing.T) {
	builder := cli.PushCommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() gitorgcfg.Configuration { return gitorgcfg.Configuration{} },
		GitManager:            newMemoryRepositoryManager(),
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{testInstance.TempDir()})

	require.Error(testInstance, command.Execute())
}
