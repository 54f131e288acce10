package reconcile

import (
	"fmt"
)

const (
	remoteConflictErrorTemplateConstant = "remote %q unexpectedly exists in %s; the reconciliation diff should have prevented this add: %v"
)

// Result reports the outcome of reconciling a single repository.
type Result struct {
	RepositoryName string
	Added          []string
	Updated        []string
	Unchanged      []string
	SkippedByUser  bool
	Errors         []error
}

// HasErrors reports whether any operation on the repository failed.
func (result Result) HasErrors() bool {
	return len(result.Errors) > 0
}

// MutationCount returns the number of applied (or planned) mutating operations.
func (result Result) MutationCount() int {
	return len(result.Added) + len(result.Updated)
}

// RemoteConflictError reports an add that collided with an existing remote.
// The diff logic guards against this, so an occurrence indicates a defect and
// is surfaced prominently in summaries.
type RemoteConflictError struct {
	RepositoryPath string
	RemoteName     string
	Cause          error
}

// Error describes the conflicting remote.
func (conflictError RemoteConflictError) Error() string {
	return fmt.Sprintf(remoteConflictErrorTemplateConstant, conflictError.RemoteName, conflictError.RepositoryPath, conflictError.Cause)
}

// Unwrap exposes the underlying git error.
func (conflictError RemoteConflictError) Unwrap() error {
	return conflictError.Cause
}
