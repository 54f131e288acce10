package cli

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gitorg-cli/gitorg/internal/execshell"
	"github.com/gitorg-cli/gitorg/internal/gitorgcfg"
	"github.com/gitorg-cli/gitorg/internal/gitrepo"
	"github.com/gitorg-cli/gitorg/internal/ui"
	"github.com/gitorg-cli/gitorg/internal/utils"
)

const (
	defaultRootPathConstant               = "."
	repositoriesFailedMessageConstant     = "one or more repositories reported errors"
	repositoryErrorOutputTemplateConstant = "%s: %v\n"
	unsupportedGitBackendTemplateConstant = "unsupported git backend: %s"
)

// errRepositoriesFailed makes partial failure visible to scripting callers
// through a nonzero exit code.
var errRepositoriesFailed = errors.New(repositoriesFailedMessageConstant)

// LoggerProvider supplies the logger configured during application initialization.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the configuration resolved during application initialization.
type ConfigurationProvider func() gitorgcfg.Configuration

// ConfigurationMetadataProvider supplies metadata describing where the configuration came from.
type ConfigurationMetadataProvider func() utils.LoadedConfiguration

// ensureConfigurationFile fails when the configuration was assembled purely
// from defaults because no file was found. Commands without a metadata
// provider skip the check.
func ensureConfigurationFile(provider ConfigurationMetadataProvider) error {
	if provider == nil {
		return nil
	}
	return gitorgcfg.EnsureConfigurationFile(provider())
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	if logger := provider(); logger != nil {
		return logger
	}
	return zap.NewNop()
}

func resolveRootPath(arguments []string) string {
	if len(arguments) > 0 {
		return arguments[0]
	}
	return defaultRootPathConstant
}

// buildGitManager constructs the repository manager selected by the configuration.
func buildGitManager(backend gitorgcfg.GitBackend, logger *zap.Logger, humanReadableLogging bool) (gitrepo.RepositoryManager, error) {
	switch backend {
	case gitorgcfg.GitBackendNative:
		return gitrepo.NewNativeGitManager(), nil
	case gitorgcfg.GitBackendCLI, gitorgcfg.GitBackend(""):
		shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
		if executorError != nil {
			return nil, executorError
		}
		if humanReadableLogging {
			shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
		}
		return gitrepo.NewShellGitManager(shellExecutor), nil
	default:
		return nil, fmt.Errorf(unsupportedGitBackendTemplateConstant, backend)
	}
}
