package selection

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gitorg-cli/gitorg/internal/gitorgcfg"
)

const (
	secretNameFragmentConstant       = "secret"
	markerFileNameConstant           = ".no-git-org"
	rootUnreadableErrorTemplate      = "%s: %v"
	rootNotADirectoryMessageConstant = "not a directory"
	rootNotADirectoryErrorTemplate   = "%s: %s"
	predicateDirectoryNameConstant   = "is_directory"
	predicateSkipListNameConstant    = "not_in_skip_list"
	predicateSecretNameConstant      = "name_without_secret"
	predicateMarkerFileNameConstant  = "no_marker_file"
)

// ManagedRepository identifies a directory that passed every selection predicate.
type ManagedRepository struct {
	Name string
	Path string
}

// NotADirectoryError reports a selection root that is missing or not a directory.
type NotADirectoryError struct {
	Path  string
	Cause error
}

// Error describes the unusable root path.
func (selectionError NotADirectoryError) Error() string {
	if selectionError.Cause != nil {
		return fmt.Sprintf(rootUnreadableErrorTemplate, selectionError.Path, selectionError.Cause)
	}
	return fmt.Sprintf(rootNotADirectoryErrorTemplate, selectionError.Path, rootNotADirectoryMessageConstant)
}

// Unwrap exposes the underlying filesystem error, when present.
func (selectionError NotADirectoryError) Unwrap() error {
	return selectionError.Cause
}

// candidate carries the state shared by all predicates for one directory entry.
type candidate struct {
	name    string
	path    string
	skipSet map[string]struct{}
}

// selectionPredicate is one named inclusion rule. Predicates run in a fixed
// order, combined with short-circuit AND.
type selectionPredicate struct {
	name     string
	evaluate func(candidate candidate) bool
}

// DirectorySelector enumerates the managed repositories beneath a root directory.
type DirectorySelector struct {
	predicates []selectionPredicate
}

// NewDirectorySelector constructs a selector with the standard predicate chain.
func NewDirectorySelector() *DirectorySelector {
	return &DirectorySelector{
		predicates: []selectionPredicate{
			{name: predicateDirectoryNameConstant, evaluate: directoryPredicate},
			{name: predicateSkipListNameConstant, evaluate: skipListPredicate},
			{name: predicateSecretNameConstant, evaluate: secretNamePredicate},
			{name: predicateMarkerFileNameConstant, evaluate: markerFilePredicate},
		},
	}
}

// Select returns the managed repositories directly under rootPath, in
// lexicographic name order. It never recurses and has no side effects.
func (selector *DirectorySelector) Select(rootPath string, configuration gitorgcfg.Configuration) ([]ManagedRepository, error) {
	rootInfo, statError := os.Stat(rootPath)
	if statError != nil {
		return nil, NotADirectoryError{Path: rootPath, Cause: statError}
	}
	if !rootInfo.IsDir() {
		return nil, NotADirectoryError{Path: rootPath}
	}

	directoryEntries, readError := os.ReadDir(rootPath)
	if readError != nil {
		return nil, NotADirectoryError{Path: rootPath, Cause: readError}
	}

	skipSet := configuration.SkipSet()

	var managedRepositories []ManagedRepository
	for _, directoryEntry := range directoryEntries {
		entryCandidate := candidate{
			name:    directoryEntry.Name(),
			path:    filepath.Join(rootPath, directoryEntry.Name()),
			skipSet: skipSet,
		}

		if !selector.admits(entryCandidate) {
			continue
		}

		managedRepositories = append(managedRepositories, ManagedRepository{
			Name: entryCandidate.name,
			Path: entryCandidate.path,
		})
	}

	sort.Slice(managedRepositories, func(firstIndex int, secondIndex int) bool {
		return managedRepositories[firstIndex].Name < managedRepositories[secondIndex].Name
	})

	return managedRepositories, nil
}

func (selector *DirectorySelector) admits(entryCandidate candidate) bool {
	for _, predicate := range selector.predicates {
		if !predicate.evaluate(entryCandidate) {
			return false
		}
	}
	return true
}

// skipListPredicate rejects names listed in the configuration skip set.
// Matching is exact and case-sensitive.
func skipListPredicate(entryCandidate candidate) bool {
	_, skipped := entryCandidate.skipSet[entryCandidate.name]
	return !skipped
}

// secretNamePredicate rejects any name containing the literal substring
// "secret". The match is case-sensitive and not word-bounded.
func secretNamePredicate(entryCandidate candidate) bool {
	return !strings.Contains(entryCandidate.name, secretNameFragmentConstant)
}

// directoryPredicate rejects plain files. Symlinks are resolved, so a symlink
// to a directory qualifies.
func directoryPredicate(entryCandidate candidate) bool {
	entryInfo, statError := os.Stat(entryCandidate.path)
	if statError != nil {
		return false
	}
	return entryInfo.IsDir()
}

// markerFilePredicate rejects directories containing a .no-git-org entry.
// Only presence matters; the marker's contents are never read. A stat failure
// other than absence rejects the directory, since the marker may exist behind
// the failure.
func markerFilePredicate(entryCandidate candidate) bool {
	_, statError := os.Stat(filepath.Join(entryCandidate.path, markerFileNameConstant))
	return errors.Is(statError, fs.ErrNotExist)
}
