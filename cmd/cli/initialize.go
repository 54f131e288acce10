package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gitorg-cli/gitorg/internal/gitorgcfg"
)

const (
	initializeUseConstant              = "init [directory]"
	initializeShortDescriptionConstant = "Write a starter git-org.yaml configuration"
	initializeLongDescriptionConstant  = "init writes a starter git-org.yaml into the target directory (default: current directory). It refuses to overwrite an existing configuration."
	configurationFileNameConstant      = "git-org.yaml"
	configurationFilePermissions       = 0o644
	configurationExistsTemplateConstant = "configuration already exists at %s"
	configurationWrittenMessageConstant = "starter configuration written"
	logFieldConfigurationPathConstant   = "configuration_path"
	starterOrganizationNameConstant     = "example-org"
	starterRemoteNameConstant           = "github"
	starterRemoteHostConstant           = "github.com"
)

// InitializeCommandBuilder assembles the init command.
type InitializeCommandBuilder struct {
	LoggerProvider LoggerProvider
}

// Build constructs the init command.
func (builder *InitializeCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   initializeUseConstant,
		Short: initializeShortDescriptionConstant,
		Long:  initializeLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *InitializeCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configurationPath := filepath.Join(resolveRootPath(arguments), configurationFileNameConstant)

	if _, statError := os.Stat(configurationPath); statError == nil {
		return fmt.Errorf(configurationExistsTemplateConstant, configurationPath)
	}

	starterConfiguration := gitorgcfg.Configuration{
		Org:        starterOrganizationNameConstant,
		Remotes:    map[string]string{starterRemoteNameConstant: starterRemoteHostConstant},
		Skip:       []string{},
		GitBackend: gitorgcfg.GitBackendCLI,
		Workers:    1,
	}

	encodedConfiguration, marshalError := yaml.Marshal(starterConfiguration)
	if marshalError != nil {
		return marshalError
	}

	if writeError := os.WriteFile(configurationPath, encodedConfiguration, configurationFilePermissions); writeError != nil {
		return writeError
	}

	resolveLogger(builder.LoggerProvider).Info(
		configurationWrittenMessageConstant,
		zap.String(logFieldConfigurationPathConstant, configurationPath),
	)

	fmt.Fprintln(command.OutOrStdout(), configurationPath)
	return nil
}
