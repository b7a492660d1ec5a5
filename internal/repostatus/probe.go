package repostatus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/checkup/internal/execshell"
)

const (
	gitStatusSubcommandConstant              = "status"
	gitConfigSubcommandConstant              = "config"
	gitConfigGetRegexpFlagConstant           = "--get-regexp"
	gitLogSubcommandConstant                 = "log"
	branchRemoteConfigurationPatternConstant = `^branch\..*\.remote$`
	branchConfigurationKeyPrefixConstant     = "branch."
	branchConfigurationKeySuffixConstant     = ".remote"
	commitRangeTemplateConstant              = "%s/%s..%s"
	unpushedBranchDescriptorTemplate         = "%s, branch %s"
	gitConfigNoMatchesExitCodeConstant       = 1
	branchConfigurationFieldCountConstant    = 2

	statusQueryFailedLogMessageConstant  = "repository status query failed"
	remoteConfigFailedLogMessageConstant = "branch remote configuration query failed"
	rangeQueryFailedLogMessageConstant   = "commit range query failed"
	logFieldRepositoryConstant           = "repository"
	logFieldBranchConstant               = "branch"
)

// primaryBranchNames are the conventional primary branches reported by the
// repository path alone instead of a "path, branch name" descriptor.
var primaryBranchNames = map[string]struct{}{
	"master": {},
	"main":   {},
}

// Probe inspects a single git working directory by invoking git once per
// question and classifying the captured output.
type Probe struct {
	gitExecutor GitExecutor
	logger      *zap.Logger
}

// NewProbe constructs a repository probe using the provided git executor.
func NewProbe(gitExecutor GitExecutor, logger *zap.Logger) *Probe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Probe{gitExecutor: gitExecutor, logger: logger}
}

// ProbeRepository assembles the status record for one repository. Probe
// failures never abort a scan: an unanswerable status query degrades to an
// unscannable record, and branch-level query failures skip only the affected
// branch. Every git invocation receives the repository as its working
// directory; the probe never touches process-global state.
func (probe *Probe) ProbeRepository(executionContext context.Context, repositoryPath string) RepositoryStatus {
	statusDetails := execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant},
		WorkingDirectory: repositoryPath,
	}

	statusResult, statusError := probe.gitExecutor.ExecuteGit(executionContext, statusDetails)
	if statusError != nil {
		probe.logger.Warn(
			statusQueryFailedLogMessageConstant,
			zap.String(logFieldRepositoryConstant, repositoryPath),
			zap.Error(statusError),
		)
		return RepositoryStatus{Unscannable: true}
	}

	statusLines := SplitOutputLines(statusResult.StandardOutput)
	repositoryStatus := RepositoryStatus{Dirty: !IsWorkingTreeClean(statusLines)}

	// A repository without commits has no meaningful remote-tracking state.
	if HasNoCommits(statusLines) {
		return repositoryStatus
	}

	repositoryStatus.UnpushedBranches = probe.collectUnpushedBranches(executionContext, repositoryPath)
	return repositoryStatus
}

func (probe *Probe) collectUnpushedBranches(executionContext context.Context, repositoryPath string) []string {
	configurationDetails := execshell.CommandDetails{
		Arguments:        []string{gitConfigSubcommandConstant, gitConfigGetRegexpFlagConstant, branchRemoteConfigurationPatternConstant},
		WorkingDirectory: repositoryPath,
	}

	configurationResult, configurationError := probe.gitExecutor.ExecuteGit(executionContext, configurationDetails)
	if configurationError != nil {
		// git config exits 1 when the pattern matches nothing; that simply
		// means no local branch tracks a remote.
		var commandFailure execshell.CommandFailedError
		if errors.As(configurationError, &commandFailure) && commandFailure.Result.ExitCode == gitConfigNoMatchesExitCodeConstant {
			return nil
		}
		probe.logger.Warn(
			remoteConfigFailedLogMessageConstant,
			zap.String(logFieldRepositoryConstant, repositoryPath),
			zap.Error(configurationError),
		)
		return nil
	}

	var unpushedDescriptors []string
	for _, configurationLine := range SplitOutputLines(configurationResult.StandardOutput) {
		branchName, remoteName, parsed := parseBranchRemoteConfiguration(configurationLine)
		if !parsed {
			continue
		}

		if probe.branchIsAhead(executionContext, repositoryPath, branchName, remoteName) {
			unpushedDescriptors = append(unpushedDescriptors, describeUnpushedBranch(repositoryPath, branchName))
		}
	}
	return unpushedDescriptors
}

// parseBranchRemoteConfiguration decodes a "branch.<name>.remote <remote>"
// configuration line. The branch name is recovered by trimming the fixed
// prefix and suffix so branch names containing dots survive intact.
func parseBranchRemoteConfiguration(configurationLine string) (string, string, bool) {
	fields := strings.Fields(configurationLine)
	if len(fields) != branchConfigurationFieldCountConstant {
		return "", "", false
	}

	configurationKey := fields[0]
	if !strings.HasPrefix(configurationKey, branchConfigurationKeyPrefixConstant) {
		return "", "", false
	}
	if !strings.HasSuffix(configurationKey, branchConfigurationKeySuffixConstant) {
		return "", "", false
	}

	branchName := strings.TrimSuffix(strings.TrimPrefix(configurationKey, branchConfigurationKeyPrefixConstant), branchConfigurationKeySuffixConstant)
	if len(branchName) == 0 {
		return "", "", false
	}

	return branchName, fields[1], true
}

func (probe *Probe) branchIsAhead(executionContext context.Context, repositoryPath string, branchName string, remoteName string) bool {
	commitRangeQuery := fmt.Sprintf(commitRangeTemplateConstant, remoteName, branchName, branchName)
	rangeDetails := execshell.CommandDetails{
		Arguments:        []string{gitLogSubcommandConstant, commitRangeQuery},
		WorkingDirectory: repositoryPath,
	}

	rangeResult, rangeError := probe.gitExecutor.ExecuteGit(executionContext, rangeDetails)
	if rangeError != nil {
		probe.logger.Warn(
			rangeQueryFailedLogMessageConstant,
			zap.String(logFieldRepositoryConstant, repositoryPath),
			zap.String(logFieldBranchConstant, branchName),
			zap.Error(rangeError),
		)
		return false
	}

	return len(strings.TrimSpace(rangeResult.StandardOutput)) > 0
}

func describeUnpushedBranch(repositoryPath string, branchName string) string {
	if _, isPrimaryBranch := primaryBranchNames[branchName]; isPrimaryBranch {
		return repositoryPath
	}
	return fmt.Sprintf(unpushedBranchDescriptorTemplate, repositoryPath, branchName)
}
