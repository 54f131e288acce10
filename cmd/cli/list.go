package cli

import (
	"github.com/spf13/cobra"

	"github.com/gitorg-cli/gitorg/internal/gitrepo"
	"github.com/gitorg-cli/gitorg/internal/selection"
)

const (
	listUseConstant              = "list [root]"
	listShortDescriptionConstant = "List the managed repositories the selection filters admit"
	listLongDescriptionConstant  = "list shows which subdirectories of the root qualify as managed repositories, and with --remotes the remote URLs the configuration dictates for each."
	listRemotesFlagNameConstant  = "remotes"
	listRemotesFlagUsageConstant = "Show the desired remote URLs for each repository."
)

// ListCommandBuilder assembles the list command.
type ListCommandBuilder struct {
	LoggerProvider                LoggerProvider
	ConfigurationProvider         ConfigurationProvider
	ConfigurationMetadataProvider ConfigurationMetadataProvider
}

// Build constructs the list command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   listUseConstant,
		Short: listShortDescriptionConstant,
		Long:  listLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().Bool(listRemotesFlagNameConstant, false, listRemotesFlagUsageConstant)

	return command, nil
}

func (builder *ListCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.ConfigurationProvider()

	showRemotes, flagError := command.Flags().GetBool(listRemotesFlagNameConstant)
	if flagError != nil {
		return flagError
	}

	if showRemotes {
		if configurationFileError := ensureConfigurationFile(builder.ConfigurationMetadataProvider); configurationFileError != nil {
			return configurationFileError
		}
		if validationError := configuration.Validate(); validationError != nil {
			return validationError
		}
	}

	managedRepositories, selectionError := selection.NewDirectorySelector().Select(resolveRootPath(arguments), configuration)
	if selectionError != nil {
		return selectionError
	}

	if !showRemotes {
		renderRepositoryList(command.OutOrStdout(), managedRepositories)
		return nil
	}

	remoteRows := make([]desiredRemoteRow, 0, len(managedRepositories)*len(configuration.Remotes))
	for _, managedRepository := range managedRepositories {
		for _, remoteName := range configuration.SortedRemoteNames() {
			desiredURL, buildError := gitrepo.BuildRemoteURL(configuration.Remotes[remoteName], configuration.Org, managedRepository.Name)
			if buildError != nil {
				return buildError
			}
			remoteRows = append(remoteRows, desiredRemoteRow{
				RepositoryName: managedRepository.Name,
				RemoteName:     remoteName,
				RemoteURL:      desiredURL,
			})
		}
	}

	renderDesiredRemotes(command.OutOrStdout(), remoteRows)
	return nil
}
