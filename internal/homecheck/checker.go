package homecheck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	pathutils "github.com/temirov/checkup/internal/utils/path"
)

const (
	homeResolutionFailureTemplateConstant  = "unable to resolve home directory: %w"
	homeListingFailureTemplateConstant     = "unable to list %s: %w"
	topLevelViolationReasonTemplateConstant = `- ~/ has unwanted top-level contents "%s"`
	subdirectoryViolationReasonTemplate     = `- ~/%s has unwanted contents "%s"`
)

// Violation records one policy breach: the offending path plus the rendered
// human-readable reason line used in the report.
type Violation struct {
	Path   string
	Reason string
}

// ViolationDisposer decides what to do with the violations a check produced.
// The checker itself never removes anything; callers wanting cleanup supply a
// disposer and invoke it on the returned violations themselves.
type ViolationDisposer interface {
	Dispose(violations []Violation) error
}

// Checker audits the home directory against an AllowPolicy.
type Checker struct {
	homeDirectoryProvider pathutils.HomeDirectoryProvider
}

// NewChecker constructs a Checker resolving the home directory through the
// operating system.
func NewChecker() *Checker {
	return NewCheckerWithProvider(os.UserHomeDir)
}

// NewCheckerWithProvider constructs a Checker with a custom home directory
// provider.
func NewCheckerWithProvider(provider pathutils.HomeDirectoryProvider) *Checker {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &Checker{homeDirectoryProvider: provider}
}

// Check lists the home directory's immediate children and every inspected
// subdirectory's children and returns one Violation per entry the policy does
// not allow. An inspected subdirectory that does not exist produces no
// violations. Results are ordered deterministically: top-level violations
// first, then inspected subdirectories in name order.
func (checker *Checker) Check(allowPolicy AllowPolicy) ([]Violation, error) {
	homeDirectory, homeError := checker.homeDirectoryProvider()
	if homeError != nil {
		return nil, fmt.Errorf(homeResolutionFailureTemplateConstant, homeError)
	}

	allowedTopLevelNames := make(map[string]struct{}, len(allowPolicy.NoLookNames)+len(allowPolicy.LookSubdirectories))
	for _, permittedName := range allowPolicy.NoLookNames {
		allowedTopLevelNames[permittedName] = struct{}{}
	}
	for inspectedName := range allowPolicy.LookSubdirectories {
		allowedTopLevelNames[inspectedName] = struct{}{}
	}

	topLevelEntries, topLevelError := os.ReadDir(homeDirectory)
	if topLevelError != nil {
		return nil, fmt.Errorf(homeListingFailureTemplateConstant, homeDirectory, topLevelError)
	}

	var violations []Violation
	for _, topLevelEntry := range topLevelEntries {
		if _, allowed := allowedTopLevelNames[topLevelEntry.Name()]; allowed {
			continue
		}
		entryPath := filepath.Join(homeDirectory, topLevelEntry.Name())
		violations = append(violations, Violation{
			Path:   entryPath,
			Reason: fmt.Sprintf(topLevelViolationReasonTemplateConstant, entryPath),
		})
	}

	inspectedNames := make([]string, 0, len(allowPolicy.LookSubdirectories))
	for inspectedName := range allowPolicy.LookSubdirectories {
		inspectedNames = append(inspectedNames, inspectedName)
	}
	sort.Strings(inspectedNames)

	for _, inspectedName := range inspectedNames {
		allowedEntryNames := make(map[string]struct{}, len(allowPolicy.LookSubdirectories[inspectedName]))
		for _, permittedName := range allowPolicy.LookSubdirectories[inspectedName] {
			allowedEntryNames[permittedName] = struct{}{}
		}

		inspectedPath := filepath.Join(homeDirectory, inspectedName)
		inspectedEntries, inspectedError := os.ReadDir(inspectedPath)
		if inspectedError != nil {
			if os.IsNotExist(inspectedError) {
				continue
			}
			return nil, fmt.Errorf(homeListingFailureTemplateConstant, inspectedPath, inspectedError)
		}

		for _, inspectedEntry := range inspectedEntries {
			if _, allowed := allowedEntryNames[inspectedEntry.Name()]; allowed {
				continue
			}
			violations = append(violations, Violation{
				Path:   filepath.Join(inspectedPath, inspectedEntry.Name()),
				Reason: fmt.Sprintf(subdirectoryViolationReasonTemplate, inspectedName, inspectedEntry.Name()),
			})
		}
	}

	return violations, nil
}
