package gitorgcfg

import (
	"fmt"
	"strings"

	"github.com/gitorg-cli/gitorg/internal/utils"
)

const (
	// ConfigurationFileName is the base name of the configuration file, without extension.
	ConfigurationFileName = "git-org"
	// ConfigurationFileType is the configuration encoding consumed by the loader.
	ConfigurationFileType = "yaml"
	// EnvironmentPrefix namespaces environment variable overrides.
	EnvironmentPrefix = "GITORG"

	logLevelConfigKeyConstant   = "log_level"
	logFormatConfigKeyConstant  = "log_format"
	gitBackendConfigKeyConstant = "git_backend"
	workersConfigKeyConstant    = "workers"

	configurationLoadErrorTemplateConstant    = "unable to load configuration: %w"
	configurationFileNotFoundTemplateConstant = "configuration file %s not found (searched %s)"
	searchPathJoinSeparatorConstant           = ", "
	configurationFileNameSeparatorConstant    = "."
)

// The configuration file is searched upward from the working directory, three
// levels deep, mirroring how repositories typically sit one level below the
// directory holding git-org.yaml.
var configurationSearchPaths = []string{".", "..", "../.."}

// Loader resolves the git-org configuration from disk and the environment.
type Loader struct {
	configurationLoader *utils.ConfigurationLoader
}

// NewLoader constructs a Loader with the standard search paths and environment prefix.
func NewLoader() *Loader {
	return &Loader{
		configurationLoader: utils.NewConfigurationLoader(
			ConfigurationFileName,
			ConfigurationFileType,
			EnvironmentPrefix,
			configurationSearchPaths,
		),
	}
}

// DefaultConfigurationValues supplies defaults applied before file and environment merging.
func DefaultConfigurationValues() map[string]any {
	return map[string]any{
		logLevelConfigKeyConstant:   string(utils.LogLevelInfo),
		logFormatConfigKeyConstant:  string(utils.LogFormatStructured),
		gitBackendConfigKeyConstant: string(GitBackendCLI),
		workersConfigKeyConstant:    defaultWorkerCountConstant,
	}
}

// Load resolves and decodes the configuration. An explicit file path bypasses
// the upward search. Validation is deferred to the commands that reconcile or
// push, so commands that never read the organization can still run.
func (loader *Loader) Load(configurationFilePath string) (Configuration, utils.LoadedConfiguration, error) {
	var configuration Configuration

	loadedMetadata, loadError := loader.configurationLoader.LoadConfiguration(
		configurationFilePath,
		DefaultConfigurationValues(),
		&configuration,
	)
	if loadError != nil {
		return Configuration{}, utils.LoadedConfiguration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	return configuration, loadedMetadata, nil
}

// ConfigurationFileNotFoundError reports that no configuration file was found
// anywhere on the search path.
type ConfigurationFileNotFoundError struct {
	FileName    string
	SearchPaths []string
}

// Error names the missing file and the directories that were searched.
func (failure ConfigurationFileNotFoundError) Error() string {
	return fmt.Sprintf(
		configurationFileNotFoundTemplateConstant,
		failure.FileName,
		strings.Join(failure.SearchPaths, searchPathJoinSeparatorConstant),
	)
}

// EnsureConfigurationFile verifies that the loaded configuration actually came
// from a file. Commands that consume the configuration call this before acting
// so a missing git-org.yaml fails up front instead of as a validation error.
func EnsureConfigurationFile(metadata utils.LoadedConfiguration) error {
	if len(metadata.ConfigFileUsed) > 0 {
		return nil
	}

	return ConfigurationFileNotFoundError{
		FileName:    ConfigurationFileName + configurationFileNameSeparatorConstant + ConfigurationFileType,
		SearchPaths: configurationSearchPaths,
	}
}
