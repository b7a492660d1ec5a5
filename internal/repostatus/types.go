package repostatus

import (
	"context"

	"github.com/temirov/checkup/internal/execshell"
)

// GitExecutor exposes the subset of shell execution used by repository probes.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryStatus captures the findings for a single repository. It is
// produced fresh on every scan and never cached across runs.
type RepositoryStatus struct {
	// Dirty reports whether the working tree has any uncommitted change
	// (staged, unstaged, or untracked).
	Dirty bool
	// UnpushedBranches lists one descriptor per local branch whose configured
	// remote counterpart lacks commits: the repository path alone for the
	// primary branch, "<path>, branch <name>" otherwise.
	UnpushedBranches []string
	// Unscannable marks repositories whose status could not be determined;
	// such repositories are excluded from problem counts but surfaced in the
	// report so a failed probe never masquerades as a clean one.
	Unscannable bool
}

// RepositoryProber inspects a single repository working directory.
type RepositoryProber interface {
	ProbeRepository(executionContext context.Context, repositoryPath string) RepositoryStatus
}
