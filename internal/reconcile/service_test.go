package reconcile_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitorg-cli/gitorg/internal/gitrepo"
	"github.com/gitorg-cli/gitorg/internal/reconcile"
	"github.com/gitorg-cli/gitorg/internal/selection"
)

const (
	testBrokenRepositoryNameConstant = "broken"
	testDirectoryPermissionsConstant = 0o755
)

// pathAwareRepositoryManager fails list calls for selected repositories while
// treating every other repository as empty.
type pathAwareRepositoryManager struct {
	failingPaths     map[string]error
	mutationMutex    sync.Mutex
	addedRemotePaths []string
}

func (manager *pathAwareRepositoryManager) ListRemotes(_ context.Context, repositoryPath string) ([]gitrepo.NamedRemote, error) {
	if listError, shouldFail := manager.failingPaths[repositoryPath]; shouldFail {
		return nil, listError
	}
	return nil, nil
}

func (manager *pathAwareRepositoryManager) AddRemote(_ context.Context, repositoryPath string, _ string, _ string) error {
	manager.mutationMutex.Lock()
	defer manager.mutationMutex.Unlock()
	manager.addedRemotePaths = append(manager.addedRemotePaths, repositoryPath)
	return nil
}

func (manager *pathAwareRepositoryManager) SetRemoteURL(_ context.Context, _ string, _ string, _ string) error {
	return nil
}

func (manager *pathAwareRepositoryManager) CheckCleanWorktree(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (manager *pathAwareRepositoryManager) GetCurrentBranch(_ context.Context, _ string) (string, error) {
	return "main", nil
}

func (manager *pathAwareRepositoryManager) Push(_ context.Context, _ string, _ string, _ string) error {
	return nil
}

func newService(testInstance *testing.T, gitManager gitrepo.RepositoryManager, prompter reconcile.ConfirmationPrompter) *reconcile.Service {
	testInstance.Helper()

	reconciler, reconcilerError := reconcile.NewReconciler(reconcile.Dependencies{GitManager: gitManager, Prompter: prompter})
	require.NoError(testInstance, reconcilerError)

	service, serviceError := reconcile.NewService(reconcile.ServiceDependencies{
		Selector:   selection.NewDirectorySelector(),
		Reconciler: reconciler,
	})
	require.NoError(testInstance, serviceError)

	return service
}

func createRepositoryDirectories(testInstance *testing.T, rootPath string, directoryNames []string) {
	testInstance.Helper()
	for _, directoryName := range directoryNames {
		require.NoError(testInstance, os.Mkdir(filepath.Join(rootPath, directoryName), testDirectoryPermissionsConstant))
	}
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	reconciler, reconcilerError := reconcile.NewReconciler(reconcile.Dependencies{GitManager: newFakeRepositoryManager(nil)})
	require.NoError(testInstance, reconcilerError)

	testCases := []struct {
		name          string
		dependencies  reconcile.ServiceDependencies
		expectedError error
	}{
		{
			name:          "missing_selector",
			dependencies:  reconcile.ServiceDependencies{Reconciler: reconciler},
			expectedError: reconcile.ErrSelectorNotConfigured,
		},
		{
			name:          "missing_reconciler",
			dependencies:  reconcile.ServiceDependencies{Selector: selection.NewDirectorySelector()},
			expectedError: reconcile.ErrReconcilerNotConfigured,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, constructionError := reconcile.NewService(testCase.dependencies)
			require.ErrorIs(testInstance, constructionError, testCase.expectedError)
		})
	}
}

func TestServiceRunRejectsInvalidConfiguration(testInstance *testing.T) {
	service := newService(testInstance, newFakeRepositoryManager(nil), nil)

	invalidConfiguration := testConfiguration()
	invalidConfiguration.Org = ""

	_, runError := service.Run(context.Background(), reconcile.RunOptions{
		RootPath:      testInstance.TempDir(),
		Configuration: invalidConfiguration,
	})
	require.Error(testInstance, runError)
}

func TestServiceRunRejectsParallelPrompting(testInstance *testing.T) {
	service := newService(testInstance, newFakeRepositoryManager(nil), &scriptedPrompter{confirmation: true})

	_, runError := service.Run(context.Background(), reconcile.RunOptions{
		RootPath:      testInstance.TempDir(),
		Configuration: testConfiguration(),
		WorkerCount:   2,
	})
	require.ErrorIs(testInstance, runError, reconcile.ErrParallelPrompting)
}

func TestServiceRunFailsOnUnusableRoot(testInstance *testing.T) {
	service := newService(testInstance, newFakeRepositoryManager(nil), nil)

	_, runError := service.Run(context.Background(), reconcile.RunOptions{
		RootPath:      filepath.Join(testInstance.TempDir(), "missing"),
		Configuration: testConfiguration(),
	})
	require.Error(testInstance, runError)

	notADirectoryError := selection.NotADirectoryError{}
	require.ErrorAs(testInstance, runError, &notADirectoryError)
}

func TestServiceRunIsolatesRepositoryFailures(testInstance *testing.T) {
	rootPath := testInstance.TempDir()
	createRepositoryDirectories(testInstance, rootPath, []string{"alpha", testBrokenRepositoryNameConstant, "zeta"})

	gitManager := &pathAwareRepositoryManager{
		failingPaths: map[string]error{
			filepath.Join(rootPath, testBrokenRepositoryNameConstant): gitrepo.ErrNotARepository,
		},
	}
	service := newService(testInstance, gitManager, nil)

	summary, runError := service.Run(context.Background(), reconcile.RunOptions{
		RootPath:      rootPath,
		Configuration: testConfiguration(),
		AssumeYes:     true,
	})
	require.NoError(testInstance, runError)
	require.NotEmpty(testInstance, summary.RunIdentifier)
	require.Len(testInstance, summary.Results, 3)

	require.Equal(testInstance, "alpha", summary.Results[0].RepositoryName)
	require.Equal(testInstance, testBrokenRepositoryNameConstant, summary.Results[1].RepositoryName)
	require.Equal(testInstance, "zeta", summary.Results[2].RepositoryName)

	require.False(testInstance, summary.Results[0].HasErrors())
	require.True(testInstance, summary.Results[1].HasErrors())
	require.False(testInstance, summary.Results[2].HasErrors())
	require.True(testInstance, summary.HasFailures())

	addedCount, updatedCount, failedRepositoryCount := summary.Totals()
	require.Equal(testInstance, 4, addedCount)
	require.Equal(testInstance, 0, updatedCount)
	require.Equal(testInstance, 1, failedRepositoryCount)
}

func TestServiceRunSupportsParallelWorkers(testInstance *testing.T) {
	rootPath := testInstance.TempDir()
	repositoryNames := []string{"alpha", "bravo", "charlie", "delta"}
	createRepositoryDirectories(testInstance, rootPath, repositoryNames)

	gitManager := &pathAwareRepositoryManager{}
	service := newService(testInstance, gitManager, nil)

	summary, runError := service.Run(context.Background(), reconcile.RunOptions{
		RootPath:      rootPath,
		Configuration: testConfiguration(),
		AssumeYes:     true,
		WorkerCount:   3,
	})
	require.NoError(testInstance, runError)
	require.Len(testInstance, summary.Results, len(repositoryNames))

	for repositoryIndex, repositoryName := range repositoryNames {
		require.Equal(testInstance, repositoryName, summary.Results[repositoryIndex].RepositoryName)
	}
	require.False(testInstance, summary.HasFailures())
}
