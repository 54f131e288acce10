package cli

import (
	"github.com/spf13/cobra"

	"github.com/gitorg-cli/gitorg/internal/gitrepo"
	"github.com/gitorg-cli/gitorg/internal/reconcile"
	"github.com/gitorg-cli/gitorg/internal/selection"
	"github.com/gitorg-cli/gitorg/internal/ui"
	flagutils "github.com/gitorg-cli/gitorg/internal/utils/flags"
)

const (
	syncUseConstant              = "sync [root]"
	syncShortDescriptionConstant = "Reconcile every managed repository's remotes against the configuration"
	syncLongDescriptionConstant  = "sync selects the managed repositories under the root directory and adds or updates their configured remotes to match git-org.yaml. Remotes not named in the configuration are left untouched."
	workersFlagNameConstant      = "workers"
	workersFlagUsageConstant     = "Number of repositories reconciled concurrently."
)

// SyncCommandBuilder assembles the sync command.
type SyncCommandBuilder struct {
	LoggerProvider                LoggerProvider
	ConfigurationProvider         ConfigurationProvider
	ConfigurationMetadataProvider ConfigurationMetadataProvider
	HumanReadableLoggingProvider  func() bool
	GitManager                    gitrepo.RepositoryManager
	Prompter                      reconcile.ConfirmationPrompter
}

// Build constructs the sync command.
func (builder *SyncCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   syncUseConstant,
		Short: syncShortDescriptionConstant,
		Long:  syncLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	flagutils.BindExecutionFlags(command)
	command.Flags().Int(workersFlagNameConstant, 0, workersFlagUsageConstant)

	return command, nil
}

func (builder *SyncCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if configurationFileError := ensureConfigurationFile(builder.ConfigurationMetadataProvider); configurationFileError != nil {
		return configurationFileError
	}

	configuration := builder.ConfigurationProvider()
	logger := resolveLogger(builder.LoggerProvider)
	executionFlags := flagutils.ResolveExecutionFlags(command)

	workerCount := configuration.Workers
	if flagWorkerCount, workerFlagError := command.Flags().GetInt(workersFlagNameConstant); workerFlagError == nil && command.Flags().Changed(workersFlagNameConstant) {
		workerCount = flagWorkerCount
	}

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

	prompter := builder.Prompter
	if prompter == nil {
		prompter = ui.NewPromptUIConfirmationPrompter()
	}

	reconciler, reconcilerError := reconcile.NewReconciler(reconcile.Dependencies{
		GitManager: gitManager,
		Prompter:   prompter,
	})
	if reconcilerError != nil {
		return reconcilerError
	}

	service, serviceError := reconcile.NewService(reconcile.ServiceDependencies{
		Selector:   selection.NewDirectorySelector(),
		Reconciler: reconciler,
		Logger:     logger,
	})
	if serviceError != nil {
		return serviceError
	}

	summary, runError := service.Run(command.Context(), reconcile.RunOptions{
		RootPath:      resolveRootPath(arguments),
		Configuration: configuration,
		DryRun:        executionFlags.DryRun,
		AssumeYes:     executionFlags.AssumeYes,
		WorkerCount:   workerCount,
	})
	if runError != nil {
		return runError
	}

	renderReconciliationSummary(command.OutOrStdout(), summary)
	reportReconciliationErrors(command.ErrOrStderr(), summary)

	if summary.HasFailures() {
		return errRepositoriesFailed
	}

	return nil
}
