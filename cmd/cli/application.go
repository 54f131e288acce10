package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gitorg-cli/gitorg/internal/gitorgcfg"
	"github.com/gitorg-cli/gitorg/internal/utils"
)

const (
	applicationNameConstant                 = "gitorg"
	applicationShortDescriptionConstant     = "Keep a directory of git repositories pointed at consistent remotes"
	applicationLongDescriptionConstant      = "gitorg reconciles the git remotes of every repository under a root directory against a declarative git-org.yaml configuration."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (default: git-org.yaml, searched upward)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	rootCommandInfoMessageConstant          = "gitorg CLI executed"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
)

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *gitorgcfg.Loader
	logger                *zap.Logger
	configuration         gitorgcfg.Configuration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	application := &Application{
		configurationLoader: gitorgcfg.NewLoader(),
		logger:              zap.NewNop(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	syncBuilder := SyncCommandBuilder{
		LoggerProvider:                application.loggerProvider,
		ConfigurationProvider:         application.configurationProvider,
		ConfigurationMetadataProvider: application.configurationMetadataProvider,
		HumanReadableLoggingProvider:  application.humanReadableLoggingEnabled,
	}
	if syncCommand, syncBuildError := syncBuilder.Build(); syncBuildError == nil {
		cobraCommand.AddCommand(syncCommand)
	}

	pushBuilder := PushCommandBuilder{
		LoggerProvider:                application.loggerProvider,
		ConfigurationProvider:         application.configurationProvider,
		ConfigurationMetadataProvider: application.configurationMetadataProvider,
		HumanReadableLoggingProvider:  application.humanReadableLoggingEnabled,
	}
	if pushCommand, pushBuildError := pushBuilder.Build(); pushBuildError == nil {
		cobraCommand.AddCommand(pushCommand)
	}

	listBuilder := ListCommandBuilder{
		LoggerProvider:                application.loggerProvider,
		ConfigurationProvider:         application.configurationProvider,
		ConfigurationMetadataProvider: application.configurationMetadataProvider,
	}
	if listCommand, listBuildError := listBuilder.Build(); listBuildError == nil {
		cobraCommand.AddCommand(listCommand)
	}

	initializeBuilder := InitializeCommandBuilder{
		LoggerProvider: application.loggerProvider,
	}
	if initializeCommand, initializeBuildError := initializeBuilder.Build(); initializeBuildError == nil {
		cobraCommand.AddCommand(initializeCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

// RootCommand exposes the assembled root command, primarily for tests.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

func (application *Application) loggerProvider() *zap.Logger {
	return application.logger
}

func (application *Application) configurationProvider() gitorgcfg.Configuration {
	return application.configuration
}

func (application *Application) configurationMetadataProvider() utils.LoadedConfiguration {
	return application.configurationMetadata
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	configuration, loadedMetadata, loadError := application.configurationLoader.Load(application.configurationFilePath)
	if loadError != nil {
		return loadError
	}

	application.configuration = configuration
	application.configurationMetadata = loadedMetadata

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := utils.NewLogger(
		utils.LogLevel(application.configuration.LogLevel),
		utils.LogFormat(application.configuration.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	return command.Help()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
