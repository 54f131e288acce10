package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitorg-cli/gitorg/internal/gitorgcfg"
	"github.com/gitorg-cli/gitorg/internal/gitrepo"
	"github.com/gitorg-cli/gitorg/internal/selection"
)

const (
	gitManagerNotConfiguredMessageConstant = "git manager not configured"
	listRemotesErrorTemplateConstant       = "listing remotes in %s: %w"
	addRemoteErrorTemplateConstant         = "adding remote %q in %s: %w"
	updateRemoteErrorTemplateConstant      = "updating remote %q in %s: %w"
	confirmationPromptTemplateConstant     = "Reconcile remotes in '%s' (%d change(s))? [y/N] "
)

// ErrGitManagerNotConfigured reports a reconciler constructed without a git manager.
var ErrGitManagerNotConfigured = errors.New(gitManagerNotConfiguredMessageConstant)

// ConfirmationPrompter collects user confirmations prior to mutating actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// Dependencies captures collaborators required to reconcile remotes.
type Dependencies struct {
	GitManager gitrepo.RepositoryManager
	Prompter   ConfirmationPrompter
}

// Options configures a single repository reconciliation.
type Options struct {
	DryRun    bool
	AssumeYes bool
}

type operationKind int

const (
	operationAdd operationKind = iota
	operationUpdate
)

type remoteOperation struct {
	kind       operationKind
	remoteName string
	remoteURL  string
}

// Reconciler applies the configured remote set to individual repositories.
type Reconciler struct {
	dependencies Dependencies
}

// NewReconciler constructs a Reconciler from the provided dependencies.
func NewReconciler(dependencies Dependencies) (*Reconciler, error) {
	if dependencies.GitManager == nil {
		return nil, ErrGitManagerNotConfigured
	}
	return &Reconciler{dependencies: dependencies}, nil
}

// Interactive reports whether reconciliation would prompt under the given options.
func (reconciler *Reconciler) Interactive(options Options) bool {
	return reconciler.dependencies.Prompter != nil && !options.AssumeYes && !options.DryRun
}

// Reconcile brings the repository's configured remotes in line with the
// configuration. Remotes absent from the configuration are left untouched.
func (reconciler *Reconciler) Reconcile(
	executionContext context.Context,
	repository selection.ManagedRepository,
	configuration gitorgcfg.Configuration,
	options Options,
) Result {
	result := Result{RepositoryName: repository.Name}

	actualRemotes, listError := reconciler.dependencies.GitManager.ListRemotes(executionContext, repository.Path)
	if listError != nil {
		result.Errors = append(result.Errors, fmt.Errorf(listRemotesErrorTemplateConstant, repository.Path, listError))
		return result
	}

	actualURLsByName := make(map[string]string, len(actualRemotes))
	for _, actualRemote := range actualRemotes {
		actualURLsByName[actualRemote.Name] = actualRemote.URL
	}

	var plannedOperations []remoteOperation
	for _, remoteName := range configuration.SortedRemoteNames() {
		desiredURL, buildError := gitrepo.BuildRemoteURL(configuration.Remotes[remoteName], configuration.Org, repository.Name)
		if buildError != nil {
			result.Errors = append(result.Errors, buildError)
			continue
		}

		actualURL, remotePresent := actualURLsByName[remoteName]
		switch {
		case !remotePresent:
			plannedOperations = append(plannedOperations, remoteOperation{kind: operationAdd, remoteName: remoteName, remoteURL: desiredURL})
		case actualURL != desiredURL:
			plannedOperations = append(plannedOperations, remoteOperation{kind: operationUpdate, remoteName: remoteName, remoteURL: desiredURL})
		default:
			result.Unchanged = append(result.Unchanged, remoteName)
		}
	}

	if len(plannedOperations) == 0 {
		return result
	}

	if options.DryRun {
		recordPlannedOperations(&result, plannedOperations)
		return result
	}

	if reconciler.Interactive(options) {
		prompt := fmt.Sprintf(confirmationPromptTemplateConstant, repository.Name, len(plannedOperations))
		confirmed, promptError := reconciler.dependencies.Prompter.Confirm(prompt)
		if promptError != nil {
			result.Errors = append(result.Errors, promptError)
			return result
		}
		if !confirmed {
			result.SkippedByUser = true
			return result
		}
	}

	reconciler.applyOperations(executionContext, repository, plannedOperations, &result)
	return result
}

func (reconciler *Reconciler) applyOperations(
	executionContext context.Context,
	repository selection.ManagedRepository,
	plannedOperations []remoteOperation,
	result *Result,
) {
	for _, plannedOperation := range plannedOperations {
		switch plannedOperation.kind {
		case operationAdd:
			addError := reconciler.dependencies.GitManager.AddRemote(executionContext, repository.Path, plannedOperation.remoteName, plannedOperation.remoteURL)
			switch {
			case errors.Is(addError, gitrepo.ErrRemoteAlreadyExists):
				result.Errors = append(result.Errors, RemoteConflictError{
					RepositoryPath: repository.Path,
					RemoteName:     plannedOperation.remoteName,
					Cause:          addError,
				})
			case addError != nil:
				result.Errors = append(result.Errors, fmt.Errorf(addRemoteErrorTemplateConstant, plannedOperation.remoteName, repository.Path, addError))
			default:
				result.Added = append(result.Added, plannedOperation.remoteName)
			}
		case operationUpdate:
			updateError := reconciler.dependencies.GitManager.SetRemoteURL(executionContext, repository.Path, plannedOperation.remoteName, plannedOperation.remoteURL)
			if updateError != nil {
				result.Errors = append(result.Errors, fmt.Errorf(updateRemoteErrorTemplateConstant, plannedOperation.remoteName, repository.Path, updateError))
				continue
			}
			result.Updated = append(result.Updated, plannedOperation.remoteName)
		}
	}
}

func recordPlannedOperations(result *Result, plannedOperations []remoteOperation) {
	for _, plannedOperation := range plannedOperations {
		switch plannedOperation.kind {
		case operationAdd:
			result.Added = append(result.Added, plannedOperation.remoteName)
		case operationUpdate:
			result.Updated = append(result.Updated, plannedOperation.remoteName)
		}
	}
}
