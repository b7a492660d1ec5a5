package checker

import (
	"context"
	"fmt"

	"github.com/temirov/checkup/internal/homecheck"
	"github.com/temirov/checkup/internal/repostatus"
)

// StatusFlags is the bit-field status code a full run produces. Automation
// reading the process exit code can distinguish failure kinds by testing the
// individual bits.
type StatusFlags int

const (
	// StatusClean reports a run that found nothing wrong.
	StatusClean StatusFlags = 0
	// StatusFlagGitProblems is set when any repository is dirty or any
	// branch is unpushed.
	StatusFlagGitProblems StatusFlags = 1 << 2
	// StatusFlagHomeViolations is set when the home directory audit found
	// at least one violation.
	StatusFlagHomeViolations StatusFlags = 1 << 3
)

// ReportMode selects where the assembled report goes.
type ReportMode string

// Supported report modes.
const (
	ReportModePrint ReportMode = "print"
	ReportModeEmail ReportMode = "email"
	ReportModeBoth  ReportMode = "both"
)

const unsupportedReportModeTemplateConstant = "unsupported report mode %q (expected print, email, or both)"

// ReportModeChoices lists the accepted --report values in display order.
var ReportModeChoices = []string{string(ReportModePrint), string(ReportModeEmail), string(ReportModeBoth)}

// ParseReportMode validates a report mode string.
func ParseReportMode(candidate string) (ReportMode, error) {
	switch ReportMode(candidate) {
	case ReportModePrint, ReportModeEmail, ReportModeBoth:
		return ReportMode(candidate), nil
	}
	return "", fmt.Errorf(unsupportedReportModeTemplateConstant, candidate)
}

// IncludesPrint reports whether the mode writes the report to standard output.
func (mode ReportMode) IncludesPrint() bool {
	return mode == ReportModePrint || mode == ReportModeBoth
}

// IncludesEmail reports whether the mode delivers the report by email.
func (mode ReportMode) IncludesEmail() bool {
	return mode == ReportModeEmail || mode == ReportModeBoth
}

// CommandOptions captures the resolved parameters for one checkup run.
type CommandOptions struct {
	GitRoot     string
	ReportMode  ReportMode
	CheckGit    bool
	CheckHome   bool
	AllowPolicy homecheck.AllowPolicy
}

// RepositoryDiscoverer finds git repositories beneath the provided roots.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string) ([]string, error)
}

// RepositoryScanner probes every repository and returns statuses aligned
// index-for-index with the input paths.
type RepositoryScanner interface {
	Scan(executionContext context.Context, repositoryPaths []string) []repostatus.RepositoryStatus
}

// HomePolicyChecker audits the home directory against an allow-list policy.
type HomePolicyChecker interface {
	Check(allowPolicy homecheck.AllowPolicy) ([]homecheck.Violation, error)
}
