package gitorgcfg

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	organizationMissingMessageConstant        = "configuration is missing an organization name"
	remoteNameEmptyMessageConstant            = "configuration contains a remote with an empty name"
	remoteHostEmptyTemplateConstant           = "remote %q has an empty host"
	workerCountInvalidTemplateConstant        = "worker count must be at least 1, got %d"
	unsupportedGitBackendTemplateConstant     = "unsupported git backend: %s"
	gitBackendCLIStringConstant               = "cli"
	gitBackendNativeStringConstant            = "native"
	defaultWorkerCountConstant                = 1
)

// GitBackend selects the implementation used to talk to repositories.
type GitBackend string

// Supported git backends.
const (
	// GitBackendCLI shells out to the local git client.
	GitBackendCLI GitBackend = GitBackend(gitBackendCLIStringConstant)
	// GitBackendNative uses the pure-Go git implementation.
	GitBackendNative GitBackend = GitBackend(gitBackendNativeStringConstant)
)

// ErrOrganizationMissing reports a configuration without an organization name.
var ErrOrganizationMissing = errors.New(organizationMissingMessageConstant)

// Configuration describes the desired remote layout for every managed repository.
type Configuration struct {
	Org        string            `mapstructure:"org" yaml:"org"`
	Remotes    map[string]string `mapstructure:"remotes" yaml:"remotes"`
	Skip       []string          `mapstructure:"skip" yaml:"skip,omitempty"`
	GitBackend GitBackend        `mapstructure:"git_backend" yaml:"git_backend,omitempty"`
	Workers    int               `mapstructure:"workers" yaml:"workers,omitempty"`
	LogLevel   string            `mapstructure:"log_level" yaml:"log_level,omitempty"`
	LogFormat  string            `mapstructure:"log_format" yaml:"log_format,omitempty"`
}

// Validate reports whether the configuration is usable for a reconciliation run.
func (configuration Configuration) Validate() error {
	if len(strings.TrimSpace(configuration.Org)) == 0 {
		return ErrOrganizationMissing
	}

	for remoteName, remoteHost := range configuration.Remotes {
		if len(strings.TrimSpace(remoteName)) == 0 {
			return errors.New(remoteNameEmptyMessageConstant)
		}
		if len(strings.TrimSpace(remoteHost)) == 0 {
			return fmt.Errorf(remoteHostEmptyTemplateConstant, remoteName)
		}
	}

	if configuration.Workers < defaultWorkerCountConstant {
		return fmt.Errorf(workerCountInvalidTemplateConstant, configuration.Workers)
	}

	switch configuration.GitBackend {
	case GitBackendCLI, GitBackendNative:
		return nil
	default:
		return fmt.Errorf(unsupportedGitBackendTemplateConstant, configuration.GitBackend)
	}
}

// SkipSet converts the skip list into a membership set for exact-name matching.
func (configuration Configuration) SkipSet() map[string]struct{} {
	skipSet := make(map[string]struct{}, len(configuration.Skip))
	for _, skippedName := range configuration.Skip {
		skipSet[skippedName] = struct{}{}
	}
	return skipSet
}

// SortedRemoteNames returns the configured remote names in lexicographic order.
func (configuration Configuration) SortedRemoteNames() []string {
	remoteNames := make([]string, 0, len(configuration.Remotes))
	for remoteName := range configuration.Remotes {
		remoteNames = append(remoteNames, remoteName)
	}
	sort.Strings(remoteNames)
	return remoteNames
}
