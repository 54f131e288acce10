package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gitorg-cli/gitorg/cmd/cli"
	"github.com/gitorg-cli/gitorg/internal/gitorgcfg"
)

func buildInitializeCommandHarness(testInstance *testing.T) (*bytes.Buffer, func(arguments ...string) error) {
	testInstance.Helper()

	builder := cli.InitializeCommandBuilder{}
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

func TestInitializeCommandWritesStarterConfiguration(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	stdoutBuffer, executeCommand := buildInitializeCommandHarness(testInstance)

	require.NoError(testInstance, executeCommand(targetDirectory))

	configurationPath := filepath.Join(targetDirectory, testConfigurationFileName)
	require.Contains(testInstance, stdoutBuffer.String(), configurationPath)

	configurationContent, readError := os.ReadFile(configurationPath)
	require.NoError(testInstance, readError)

	var starterConfiguration gitorgcfg.Configuration
	require.NoError(testInstance, yaml.Unmarshal(configurationContent, &starterConfiguration))
	require.Equal(testInstance, "example-org", starterConfiguration.Org)
	require.Equal(testInstance, map[string]string{"github": "github.com"}, starterConfiguration.Remotes)
	require.Equal(testInstance, gitorgcfg.GitBackendCLI, starterConfiguration.GitBackend)
	require.Equal(testInstance, 1, starterConfiguration.Workers)
	require.NoError(testInstance, starterConfiguration.Validate())
}

func TestInitializeCommandRefusesExistingConfiguration(testInstance *testing.T) {
	targetDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(targetDirectory, testConfigurationFileName)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte("org: existing\n"), testFilePermissionsConstant))

	_, executeCommand := buildInitializeCommandHarness(testInstance)

	executionError := executeCommand(targetDirectory)
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), configurationPath)

	preservedContent, readError := os.ReadFile(configurationPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "org: existing\n", string(preservedContent))
}
