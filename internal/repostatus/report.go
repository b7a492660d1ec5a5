package repostatus

import (
	"fmt"
	"sort"
	"strings"
)

const (
	gitReportHeaderConstant            = "[git-checker]\n"
	checkedRootTemplateConstant        = "- Checked at and below %q\n"
	foundRepositoriesTemplateConstant  = "- Found %d git %s.\n"
	repositorySingularLabelConstant    = "repository"
	repositoryPluralLabelConstant      = "repositories"
	dirtySectionTemplateConstant       = "The following directories (%d) have dirty WDs:\n%s"
	unpushedSectionTemplateConstant    = "The following directories (+branches) (%d) need to be pushed:\n%s"
	unscannableSectionTemplateConstant = "The following directories (%d) could not be scanned:\n%s"
	allCleanSentenceConstant           = "All git repositories checked were clean.\n"
	reportItemTemplateConstant         = "\t - %s"
	sectionSeparatorConstant           = "\n\n"
)

// ScanReport aggregates the reduced findings of a full repository scan.
type ScanReport struct {
	Text             string
	DirtyCount       int
	UnpushedCount    int
	UnscannableCount int
}

// BuildScanReport reduces the per-repository statuses, aligned index-for-index
// with repositoryPaths, into a deterministic text report. Dirty paths,
// unpushed descriptors, and unscannable paths are each sorted
// lexicographically so the report is reproducible across runs regardless of
// scan completion order.
func BuildScanReport(scanRoot string, repositoryPaths []string, statuses []RepositoryStatus) ScanReport {
	var dirtyPaths []string
	var unpushedDescriptors []string
	var unscannablePaths []string

	for statusIndex, repositoryStatus := range statuses {
		if repositoryStatus.Unscannable {
			unscannablePaths = append(unscannablePaths, repositoryPaths[statusIndex])
			continue
		}
		if repositoryStatus.Dirty {
			dirtyPaths = append(dirtyPaths, repositoryPaths[statusIndex])
		}
		unpushedDescriptors = append(unpushedDescriptors, repositoryStatus.UnpushedBranches...)
	}

	sort.Strings(dirtyPaths)
	sort.Strings(unpushedDescriptors)
	sort.Strings(unscannablePaths)

	reportBuilder := &strings.Builder{}
	reportBuilder.WriteString(gitReportHeaderConstant)
	reportBuilder.WriteString(fmt.Sprintf(checkedRootTemplateConstant, scanRoot))
	reportBuilder.WriteString(fmt.Sprintf(foundRepositoriesTemplateConstant, len(repositoryPaths), repositoryCountLabel(len(repositoryPaths))))
	reportBuilder.WriteString("\n")

	if len(dirtyPaths) > 0 {
		reportBuilder.WriteString(fmt.Sprintf(dirtySectionTemplateConstant, len(dirtyPaths), itemizePaths(dirtyPaths)))
	}
	if len(dirtyPaths) > 0 && len(unpushedDescriptors) > 0 {
		reportBuilder.WriteString(sectionSeparatorConstant)
	}
	if len(unpushedDescriptors) > 0 {
		reportBuilder.WriteString(fmt.Sprintf(unpushedSectionTemplateConstant, len(unpushedDescriptors), itemizePaths(unpushedDescriptors)))
	}
	if len(dirtyPaths) == 0 && len(unpushedDescriptors) == 0 {
		reportBuilder.WriteString(allCleanSentenceConstant)
	}
	if len(unscannablePaths) > 0 {
		reportBuilder.WriteString("\n")
		reportBuilder.WriteString(fmt.Sprintf(unscannableSectionTemplateConstant, len(unscannablePaths), itemizePaths(unscannablePaths)))
	}

	return ScanReport{
		Text:             reportBuilder.String(),
		DirtyCount:       len(dirtyPaths),
		UnpushedCount:    len(unpushedDescriptors),
		UnscannableCount: len(unscannablePaths),
	}
}

func repositoryCountLabel(repositoryCount int) string {
	if repositoryCount == 1 {
		return repositorySingularLabelConstant
	}
	return repositoryPluralLabelConstant
}

func itemizePaths(paths []string) string {
	itemizedLines := make([]string, 0, len(paths))
	for _, path := range paths {
		itemizedLines = append(itemizedLines, fmt.Sprintf(reportItemTemplateConstant, path))
	}
	return strings.Join(itemizedLines, "\n") + "\n"
}
