package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	gitMetadataDirectoryNameConstant = ".git"
	rootNotFoundTemplateConstant     = "scan root %q does not exist: %w"
	rootNotDirectoryTemplate         = "scan root %q is not a directory"
)

// DefaultExcludedSegments lists directory names whose subtrees are never
// scanned: dependency sandboxes and toolchain caches that contain vendored
// repositories nobody pushes.
var DefaultExcludedSegments = []string{"venv", ".cargo", ".pyenv"}

// FilesystemRepositoryDiscoverer locates git working directories on disk.
type FilesystemRepositoryDiscoverer struct {
	excludedSegments map[string]struct{}
}

// NewFilesystemRepositoryDiscoverer constructs a discoverer backed by
// filepath.WalkDir. Paths with any whole segment matching an excluded name are
// skipped; the match is per full path component, so a directory merely
// containing an excluded name as a substring is kept.
func NewFilesystemRepositoryDiscoverer(excludedSegments []string) *FilesystemRepositoryDiscoverer {
	segmentSet := make(map[string]struct{}, len(excludedSegments))
	for _, segment := range excludedSegments {
		trimmedSegment := strings.TrimSpace(segment)
		if len(trimmedSegment) == 0 {
			continue
		}
		segmentSet[trimmedSegment] = struct{}{}
	}
	return &FilesystemRepositoryDiscoverer{excludedSegments: segmentSet}
}

// DiscoverRepositories walks the provided roots and returns the working
// directories containing a .git entry, sorted for reproducible reporting.
// Every root must exist and be a directory; anything else is a fatal error
// reported before any scanning begins.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]string, error) {
	for _, root := range roots {
		rootInfo, statError := os.Stat(root)
		if statError != nil {
			return nil, fmt.Errorf(rootNotFoundTemplateConstant, root, statError)
		}
		if !rootInfo.IsDir() {
			return nil, fmt.Errorf(rootNotDirectoryTemplate, root)
		}
	}

	seen := make(map[string]struct{})
	var repositories []string

	for _, root := range roots {
		walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				return nil
			}

			if directoryEntry.IsDir() && discoverer.isExcludedSegment(directoryEntry.Name()) {
				return fs.SkipDir
			}

			if directoryEntry.Name() != gitMetadataDirectoryNameConstant {
				return nil
			}

			repositoryPath := filepath.Dir(path)
			if _, alreadySeen := seen[repositoryPath]; alreadySeen {
				if directoryEntry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if !discoverer.containsExcludedSegment(repositoryPath) {
				seen[repositoryPath] = struct{}{}
				repositories = append(repositories, repositoryPath)
			}

			if directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	sort.Strings(repositories)
	return repositories, nil
}

func (discoverer *FilesystemRepositoryDiscoverer) isExcludedSegment(segment string) bool {
	_, excluded := discoverer.excludedSegments[segment]
	return excluded
}

func (discoverer *FilesystemRepositoryDiscoverer) containsExcludedSegment(path string) bool {
	for _, segment := range strings.Split(filepath.Clean(path), string(os.PathSeparator)) {
		if discoverer.isExcludedSegment(segment) {
			return true
		}
	}
	return false
}
