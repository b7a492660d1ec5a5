package repostatus

import "strings"

const (
	noCommitsMarkerConstant          = "No commits yet"
	noCommitsMarkerLineIndexConstant = 2
	minimumNoCommitsLineCount        = 3
)

// cleanIndicatorPhrases are the trailing phrases git prints for a clean
// working tree. Git always terminates a clean status report with one of
// these regardless of leading sections such as ahead/behind notices, so only
// the last line is inspected; the set covers the phrasing of both old and
// current git versions.
var cleanIndicatorPhrases = []string{
	"working directory clean",
	"working tree clean",
	"nothing to commit",
}

// IsWorkingTreeClean reports whether captured `git status` output describes a
// working tree without uncommitted changes. Empty output is treated as clean:
// there is nothing to report, and terse status formats legitimately produce
// no lines at all.
func IsWorkingTreeClean(statusLines []string) bool {
	if len(statusLines) == 0 {
		return true
	}

	lastLine := statusLines[len(statusLines)-1]
	for _, cleanIndicatorPhrase := range cleanIndicatorPhrases {
		if strings.Contains(lastLine, cleanIndicatorPhrase) {
			return true
		}
	}
	return false
}

// HasNoCommits reports whether captured `git status` output describes a
// freshly initialized repository without any commit history. Such a
// repository reports a fixed structure whose third line is the no-commits
// marker.
func HasNoCommits(statusLines []string) bool {
	if len(statusLines) < minimumNoCommitsLineCount {
		return false
	}
	return statusLines[noCommitsMarkerLineIndexConstant] == noCommitsMarkerConstant
}

// SplitOutputLines splits captured command output into lines, dropping the
// trailing newline so empty output yields no lines.
func SplitOutputLines(commandOutput string) []string {
	trimmedOutput := strings.TrimRight(commandOutput, "\n")
	if len(trimmedOutput) == 0 {
		return nil
	}
	return strings.Split(trimmedOutput, "\n")
}
