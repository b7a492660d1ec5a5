package homecheck

import (
	"fmt"
	"strings"
)

const (
	homeReportHeaderConstant       = "[home-checker]"
	homeCleanSentenceConstant      = "Home checker passed. Home directory clean!"
	problemCountTemplateConstant   = "Home checker found %d problems:"
	reportLineSeparatorConstant    = "\n"
)

// BuildReport renders the violations into the home checker report text.
func BuildReport(violations []Violation) string {
	reportLines := []string{homeReportHeaderConstant}
	if len(violations) == 0 {
		reportLines = append(reportLines, homeCleanSentenceConstant)
		return strings.Join(reportLines, reportLineSeparatorConstant)
	}

	reportLines = append(reportLines, fmt.Sprintf(problemCountTemplateConstant, len(violations)))
	for _, violation := range violations {
		reportLines = append(reportLines, violation.Reason)
	}
	return strings.Join(reportLines, reportLineSeparatorConstant)
}
