package checker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/checkup/internal/homecheck"
	"github.com/temirov/checkup/internal/notify"
	"github.com/temirov/checkup/internal/repostatus"
)

const (
	discoveryProgressTemplateConstant = "[git-checker]\nFinding all git directories at/below %q...\n"
	scanningProgressTemplateConstant  = "Checking status of all %d directories...\n"
	reportSectionSeparatorConstant    = "\n"
	reportTrailingNewlineConstant     = "\n"

	notificationFailedLogMessageConstant = "report notification failed"
	notificationSentLogMessageConstant   = "report notification sent"
	logFieldSubjectConstant              = "subject"
)

// Service runs the configured checks and assembles their combined report.
type Service struct {
	discoverer   RepositoryDiscoverer
	scanner      RepositoryScanner
	homeChecker  HomePolicyChecker
	notifier     notify.Notifier
	logger       *zap.Logger
	outputWriter io.Writer
}

// NewService constructs a Service from its collaborators. The notifier may be
// nil when no email delivery is configured.
func NewService(discoverer RepositoryDiscoverer, scanner RepositoryScanner, homeChecker HomePolicyChecker, notifier notify.Notifier, logger *zap.Logger, outputWriter io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		discoverer:   discoverer,
		scanner:      scanner,
		homeChecker:  homeChecker,
		notifier:     notifier,
		logger:       logger,
		outputWriter: outputWriter,
	}
}

// Run executes the enabled checks and returns the combined status flags.
// Check findings are never errors; the returned error covers only
// operational failures such as an unreadable scan root. A notification
// failure is logged and the printed report preserved, never altering the
// already-computed flags.
func (service *Service) Run(executionContext context.Context, options CommandOptions) (StatusFlags, error) {
	statusFlags := StatusClean
	var reportSections []string

	if options.CheckGit {
		gitReport, gitError := service.runGitCheck(executionContext, options)
		if gitError != nil {
			return StatusClean, gitError
		}
		if gitReport.DirtyCount > 0 || gitReport.UnpushedCount > 0 {
			statusFlags |= StatusFlagGitProblems
		}
		reportSections = append(reportSections, gitReport.Text)
	}

	if options.CheckHome {
		homeReport, violationCount, homeError := service.runHomeCheck(options)
		if homeError != nil {
			return StatusClean, homeError
		}
		if violationCount > 0 {
			statusFlags |= StatusFlagHomeViolations
		}
		reportSections = append(reportSections, homeReport)
	}

	if options.ReportMode.IncludesPrint() && len(reportSections) > 0 {
		fmt.Fprint(service.outputWriter, strings.Join(reportSections, reportSectionSeparatorConstant))
		fmt.Fprint(service.outputWriter, reportTrailingNewlineConstant)
	}

	return statusFlags, nil
}

func (service *Service) runGitCheck(executionContext context.Context, options CommandOptions) (repostatus.ScanReport, error) {
	if options.ReportMode.IncludesPrint() {
		fmt.Fprintf(service.outputWriter, discoveryProgressTemplateConstant, options.GitRoot)
	}

	repositoryPaths, discoveryError := service.discoverer.DiscoverRepositories([]string{options.GitRoot})
	if discoveryError != nil {
		return repostatus.ScanReport{}, discoveryError
	}

	if options.ReportMode.IncludesPrint() {
		fmt.Fprintf(service.outputWriter, scanningProgressTemplateConstant, len(repositoryPaths))
	}

	statuses := service.scanner.Scan(executionContext, repositoryPaths)
	scanReport := repostatus.BuildScanReport(options.GitRoot, repositoryPaths, statuses)

	// Email goes out only when the scan found something.
	if options.ReportMode.IncludesEmail() && (scanReport.DirtyCount > 0 || scanReport.UnpushedCount > 0) {
		service.sendReport(executionContext, scanReport)
	}

	return scanReport, nil
}

func (service *Service) sendReport(executionContext context.Context, scanReport repostatus.ScanReport) {
	if service.notifier == nil {
		return
	}

	reportSubject := notify.BuildReportSubject(scanReport.DirtyCount, scanReport.UnpushedCount)
	if sendError := service.notifier.Send(executionContext, reportSubject, scanReport.Text); sendError != nil {
		service.logger.Warn(notificationFailedLogMessageConstant, zap.Error(sendError))
		return
	}
	service.logger.Info(notificationSentLogMessageConstant, zap.String(logFieldSubjectConstant, reportSubject))
}

func (service *Service) runHomeCheck(options CommandOptions) (string, int, error) {
	violations, checkError := service.homeChecker.Check(options.AllowPolicy)
	if checkError != nil {
		return "", 0, checkError
	}
	return homecheck.BuildReport(violations), len(violations), nil
}
