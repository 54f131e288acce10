package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gitorg-cli/gitorg/internal/gitorgcfg"
	"github.com/gitorg-cli/gitorg/internal/selection"
)

const (
	selectorNotConfiguredMessageConstant      = "directory selector not configured"
	reconcilerNotConfiguredMessageConstant    = "reconciler not configured"
	parallelPromptingMessageConstant          = "interactive confirmation requires sequential execution; pass --yes or --dry-run to parallelize"
	configurationInvalidErrorTemplateConstant = "invalid configuration: %w"
	runStartedMessageConstant                 = "reconciliation run started"
	runFinishedMessageConstant                = "reconciliation run finished"
	logFieldRunIdentifierConstant             = "run_id"
	logFieldRootPathConstant                  = "root_path"
	logFieldRepositoryCountConstant           = "repository_count"
	logFieldWorkerCountConstant               = "worker_count"
	logFieldAddedCountConstant                = "remotes_added"
	logFieldUpdatedCountConstant              = "remotes_updated"
	logFieldFailedRepositoryCountConstant     = "repositories_with_errors"
)

// Construction and run-level sentinel errors.
var (
	ErrSelectorNotConfigured   = errors.New(selectorNotConfiguredMessageConstant)
	ErrReconcilerNotConfigured = errors.New(reconcilerNotConfiguredMessageConstant)
	ErrParallelPrompting       = errors.New(parallelPromptingMessageConstant)
)

// ServiceDependencies captures collaborators required to run a full reconciliation.
type ServiceDependencies struct {
	Selector   *selection.DirectorySelector
	Reconciler *Reconciler
	Logger     *zap.Logger
}

// RunOptions configures one reconciliation run across a root directory.
type RunOptions struct {
	RootPath      string
	Configuration gitorgcfg.Configuration
	DryRun        bool
	AssumeYes     bool
	WorkerCount   int
}

// RunSummary aggregates per-repository results for one run.
type RunSummary struct {
	RunIdentifier string
	Results       []Result
}

// HasFailures reports whether any repository recorded an error.
func (summary RunSummary) HasFailures() bool {
	for _, repositoryResult := range summary.Results {
		if repositoryResult.HasErrors() {
			return true
		}
	}
	return false
}

// Totals returns run-wide counts of added and updated remotes and failed repositories.
func (summary RunSummary) Totals() (addedCount int, updatedCount int, failedRepositoryCount int) {
	for _, repositoryResult := range summary.Results {
		addedCount += len(repositoryResult.Added)
		updatedCount += len(repositoryResult.Updated)
		if repositoryResult.HasErrors() {
			failedRepositoryCount++
		}
	}
	return addedCount, updatedCount, failedRepositoryCount
}

// Service orchestrates selection and per-repository reconciliation.
type Service struct {
	selector   *selection.DirectorySelector
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Selector == nil {
		return nil, ErrSelectorNotConfigured
	}
	if dependencies.Reconciler == nil {
		return nil, ErrReconcilerNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		selector:   dependencies.Selector,
		reconciler: dependencies.Reconciler,
		logger:     logger,
	}, nil
}

// Run selects managed repositories beneath the root and reconciles each one.
// Configuration and selection failures are fatal; per-repository failures are
// recorded in the summary and never stop the run.
func (service *Service) Run(executionContext context.Context, options RunOptions) (RunSummary, error) {
	if validationError := options.Configuration.Validate(); validationError != nil {
		return RunSummary{}, fmt.Errorf(configurationInvalidErrorTemplateConstant, validationError)
	}

	reconcilerOptions := Options{DryRun: options.DryRun, AssumeYes: options.AssumeYes}
	workerCount := options.WorkerCount
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > 1 && service.reconciler.Interactive(reconcilerOptions) {
		return RunSummary{}, ErrParallelPrompting
	}

	managedRepositories, selectionError := service.selector.Select(options.RootPath, options.Configuration)
	if selectionError != nil {
		return RunSummary{}, selectionError
	}

	summary := RunSummary{RunIdentifier: uuid.NewString()}

	service.logger.Info(
		runStartedMessageConstant,
		zap.String(logFieldRunIdentifierConstant, summary.RunIdentifier),
		zap.String(logFieldRootPathConstant, options.RootPath),
		zap.Int(logFieldRepositoryCountConstant, len(managedRepositories)),
		zap.Int(logFieldWorkerCountConstant, workerCount),
	)

	// Results are written into per-repository slots, so workers never share
	// mutable state and summary ordering matches selection ordering.
	results := make([]Result, len(managedRepositories))
	workerGroup, groupContext := errgroup.WithContext(executionContext)
	workerGroup.SetLimit(workerCount)

	for repositoryIndex, managedRepository := range managedRepositories {
		repositoryIndex, managedRepository := repositoryIndex, managedRepository
		workerGroup.Go(func() error {
			results[repositoryIndex] = service.reconciler.Reconcile(groupContext, managedRepository, options.Configuration, reconcilerOptions)
			return nil
		})
	}

	if waitError := workerGroup.Wait(); waitError != nil {
		return RunSummary{}, waitError
	}

	summary.Results = results

	addedCount, updatedCount, failedRepositoryCount := summary.Totals()
	service.logger.Info(
		runFinishedMessageConstant,
		zap.String(logFieldRunIdentifierConstant, summary.RunIdentifier),
		zap.Int(logFieldAddedCountConstant, addedCount),
		zap.Int(logFieldUpdatedCountConstant, updatedCount),
		zap.Int(logFieldFailedRepositoryCountConstant, failedRepositoryCount),
	)

	return summary, nil
}
