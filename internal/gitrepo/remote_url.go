package gitrepo

import (
	"fmt"
	"strings"
)

const (
	remoteURLTemplateConstant            = "git@%s:%s/%s.git"
	remoteComponentErrorTemplateConstant = "%s: %s"
	requiredValueMessageConstant         = "value is required"
	hostComponentNameConstant            = "host"
	organizationComponentNameConstant    = "organization"
	repositoryComponentNameConstant      = "repository name"
)

// RemoteComponentError indicates a remote URL component was empty.
type RemoteComponentError struct {
	Component string
}

// Error describes the missing component.
func (componentError RemoteComponentError) Error() string {
	return fmt.Sprintf(remoteComponentErrorTemplateConstant, componentError.Component, requiredValueMessageConstant)
}

// BuildRemoteURL derives the SSH-style remote URL for a repository, following
// the git@{host}:{org}/{name}.git convention.
func BuildRemoteURL(host string, organization string, repositoryName string) (string, error) {
	if len(strings.TrimSpace(host)) == 0 {
		return "", RemoteComponentError{Component: hostComponentNameConstant}
	}
	if len(strings.TrimSpace(organization)) == 0 {
		return "", RemoteComponentError{Component: organizationComponentNameConstant}
	}
	if len(strings.TrimSpace(repositoryName)) == 0 {
		return "", RemoteComponentError{Component: repositoryComponentNameConstant}
	}

	return fmt.Sprintf(remoteURLTemplateConstant, host, organization, repositoryName), nil
}
