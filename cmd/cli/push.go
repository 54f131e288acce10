package cli

import (
	"github.com/spf13/cobra"

	"github.com/gitorg-cli/gitorg/internal/gitrepo"
	"github.com/gitorg-cli/gitorg/internal/pushmirror"
	"github.com/gitorg-cli/gitorg/internal/selection"
	flagutils "github.com/gitorg-cli/gitorg/internal/utils/flags"
)

const (
	pushUseConstant              = "push [root]"
	pushShortDescriptionConstant = "Push the active branch of every managed repository to its configured remotes"
	pushLongDescriptionConstant  = "push walks the managed repositories under the root directory and pushes each repository's current branch to every remote named in git-org.yaml. Repositories with uncommitted changes are skipped."
)

// PushCommandBuilder assembles the push command.
type PushCommandBuilder struct {
	LoggerProvider                LoggerProvider
	ConfigurationProvider         ConfigurationProvider
	ConfigurationMetadataProvider ConfigurationMetadataProvider
	HumanReadableLoggingProvider  func() bool
	GitManager                    gitrepo.RepositoryManager
}

// Build constructs the push command.
func (builder *PushCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   pushUseConstant,
		Short: pushShortDescriptionConstant,
		Long:  pushLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	flagutils.BindExecutionFlags(command)

	return command, nil
}

func (builder *PushCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if configurationFileError := ensureConfigurationFile(builder.ConfigurationMetadataProvider); configurationFileError != nil {
		return configurationFileError
	}

	configuration := builder.ConfigurationProvider()
	if validationError := configuration.Validate(); validationError != nil {
		return validationError
	}

	logger := resolveLogger(builder.LoggerProvider)
	executionFlags := flagutils.ResolveExecutionFlags(command)

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitManager := builder.GitManager
	if gitManager == nil {
		resolvedManager, managerError := buildGitManager(configuration.GitBackend, logger, humanReadableLogging)
		if managerError != nil {
			return managerError
		}
		gitManager = resolvedManager
	}

	executor, executorError := pushmirror.NewExecutor(pushmirror.Dependencies{GitManager: gitManager})
	if executorError != nil {
		return executorError
	}

	managedRepositories, selectionError := selection.NewDirectorySelector().Select(resolveRootPath(arguments), configuration)
	if selectionError != nil {
		return selectionError
	}

	pushOptions := pushmirror.Options{
		RemoteNames: configuration.SortedRemoteNames(),
		DryRun:      executionFlags.DryRun,
	}

	results := make([]pushmirror.Result, 0, len(managedRepositories))
	for _, managedRepository := range managedRepositories {
		results = append(results, executor.Execute(command.Context(), managedRepository, pushOptions))
	}

	renderPushSummary(command.OutOrStdout(), results)
	reportPushErrors(command.ErrOrStderr(), results)

	for _, pushResult := range results {
		if pushResult.HasErrors() {
			return errRepositoriesFailed
		}
	}

	return nil
}
