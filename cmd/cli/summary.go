package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/gitorg-cli/gitorg/internal/pushmirror"
	"github.com/gitorg-cli/gitorg/internal/reconcile"
	"github.com/gitorg-cli/gitorg/internal/selection"
)

const (
	repositoryColumnHeaderConstant = "REPOSITORY"
	pathColumnHeaderConstant       = "PATH"
	addedColumnHeaderConstant      = "ADDED"
	updatedColumnHeaderConstant    = "UPDATED"
	unchangedColumnHeaderConstant  = "UNCHANGED"
	statusColumnHeaderConstant     = "STATUS"
	remoteColumnHeaderConstant     = "REMOTE"
	urlColumnHeaderConstant        = "URL"
	branchColumnHeaderConstant     = "BRANCH"
	pushedColumnHeaderConstant     = "PUSHED"

	statusOKConstant            = "ok"
	statusSkippedConstant       = "skipped"
	statusDirtyConstant         = "dirty"
	statusErrorTemplateConstant = "error(%d)"
	remoteNamesJoinSeparator    = ", "
	noneValueConstant           = "-"
)

// desiredRemoteRow is one repository/remote pair rendered by `list --remotes`.
type desiredRemoteRow struct {
	RepositoryName string
	RemoteName     string
	RemoteURL      string
}

func newSummaryTable(writer io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(writer)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

func renderReconciliationSummary(writer io.Writer, summary reconcile.RunSummary) {
	table := newSummaryTable(writer, []string{
		repositoryColumnHeaderConstant,
		addedColumnHeaderConstant,
		updatedColumnHeaderConstant,
		unchangedColumnHeaderConstant,
		statusColumnHeaderConstant,
	})

	for _, repositoryResult := range summary.Results {
		table.Append([]string{
			repositoryResult.RepositoryName,
			joinOrDash(repositoryResult.Added),
			joinOrDash(repositoryResult.Updated),
			strconv.Itoa(len(repositoryResult.Unchanged)),
			reconciliationStatus(repositoryResult),
		})
	}

	table.Render()
}

func reconciliationStatus(repositoryResult reconcile.Result) string {
	switch {
	case repositoryResult.HasErrors():
		return fmt.Sprintf(statusErrorTemplateConstant, len(repositoryResult.Errors))
	case repositoryResult.SkippedByUser:
		return statusSkippedConstant
	default:
		return statusOKConstant
	}
}

func reportReconciliationErrors(writer io.Writer, summary reconcile.RunSummary) {
	for _, repositoryResult := range summary.Results {
		for _, repositoryError := range repositoryResult.Errors {
			fmt.Fprintf(writer, repositoryErrorOutputTemplateConstant, repositoryResult.RepositoryName, repositoryError)
		}
	}
}

func renderPushSummary(writer io.Writer, results []pushmirror.Result) {
	table := newSummaryTable(writer, []string{
		repositoryColumnHeaderConstant,
		branchColumnHeaderConstant,
		pushedColumnHeaderConstant,
		statusColumnHeaderConstant,
	})

	for _, pushResult := range results {
		table.Append([]string{
			pushResult.RepositoryName,
			dashWhenEmpty(pushResult.BranchName),
			joinOrDash(pushResult.Pushed),
			pushStatus(pushResult),
		})
	}

	table.Render()
}

func pushStatus(pushResult pushmirror.Result) string {
	switch {
	case pushResult.HasErrors():
		return fmt.Sprintf(statusErrorTemplateConstant, len(pushResult.Errors))
	case pushResult.SkippedDirty:
		return statusDirtyConstant
	default:
		return statusOKConstant
	}
}

func reportPushErrors(writer io.Writer, results []pushmirror.Result) {
	for _, pushResult := range results {
		for _, pushError := range pushResult.Errors {
			fmt.Fprintf(writer, repositoryErrorOutputTemplateConstant, pushResult.RepositoryName, pushError)
		}
	}
}

func renderRepositoryList(writer io.Writer, managedRepositories []selection.ManagedRepository) {
	table := newSummaryTable(writer, []string{repositoryColumnHeaderConstant, pathColumnHeaderConstant})
	for _, managedRepository := range managedRepositories {
		table.Append([]string{managedRepository.Name, managedRepository.Path})
	}
	table.Render()
}

func renderDesiredRemotes(writer io.Writer, remoteRows []desiredRemoteRow) {
	table := newSummaryTable(writer, []string{repositoryColumnHeaderConstant, remoteColumnHeaderConstant, urlColumnHeaderConstant})
	for _, remoteRow := range remoteRows {
		table.Append([]string{remoteRow.RepositoryName, remoteRow.RemoteName, remoteRow.RemoteURL})
	}
	table.Render()
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return noneValueConstant
	}
	return strings.Join(values, remoteNamesJoinSeparator)
}

func dashWhenEmpty(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return noneValueConstant
	}
	return value
}
