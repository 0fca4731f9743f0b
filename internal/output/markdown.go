package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pyvet/pyvet/internal/review"
	"github.com/pyvet/pyvet/internal/types"
)

// MarkdownFormatter outputs findings as GitHub-flavored markdown, designed
// for GitHub Actions Job Summaries and PR comments.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, report *review.Report) error {
	if len(report.Findings) == 0 {
		f.printClean(w, report)
		return nil
	}

	f.printSummary(w, report)
	f.printFindings(w, report.Findings)
	f.printFooter(w)
	return nil
}

func (f *MarkdownFormatter) printClean(w io.Writer, report *review.Report) {
	fmt.Fprintf(w, "### :white_check_mark: pyvet review — No issues found\n\n")
	fmt.Fprintf(w, "> %d files reviewed · %d checks · %.2fs\n",
		report.FilesScanned, report.ChecksLoaded, report.Duration.Seconds())
}

func (f *MarkdownFormatter) printSummary(w io.Writer, report *review.Report) {
	fmt.Fprintf(w, "### :mag: pyvet review — %d findings\n\n", len(report.Findings))
	fmt.Fprintf(w, "> **Target:** `%s` · %d files · %d checks · %.2fs\n\n",
		report.Target, report.FilesScanned, report.ChecksLoaded, report.Duration.Seconds())

	counts := report.CountBySeverity()
	var badges []string
	for _, sev := range severityOrder {
		if c := counts[sev]; c > 0 {
			badges = append(badges, fmt.Sprintf("%s **%d %s**", severityEmoji(sev), c, sev.String()))
		}
	}
	fmt.Fprintf(w, "%s\n\n", strings.Join(badges, " · "))
}

func (f *MarkdownFormatter) printFindings(w io.Writer, findings []types.Finding) {
	for _, sev := range severityOrder {
		filtered := filterBySeverity(findings, sev)
		if len(filtered) == 0 {
			continue
		}

		fmt.Fprintf(w, "<details%s>\n", openByDefault(sev))
		fmt.Fprintf(w, "<summary>%s <strong>%s (%d)</strong></summary>\n\n", severityEmoji(sev), sev.String(), len(filtered))

		fmt.Fprintf(w, "| Check | Description | File | Line |\n")
		fmt.Fprintf(w, "|-------|-------------|------|------|\n")
		for _, finding := range filtered {
			desc := finding.Message
			if finding.Snippet != "" {
				desc += fmt.Sprintf("<br><code>%s</code>", escapeMarkdown(truncate(finding.Snippet, 60)))
			}
			fmt.Fprintf(w, "| `%s` | %s | `%s` | L%d |\n",
				finding.CheckID, desc, finding.FilePath, finding.Line)
		}

		fmt.Fprintf(w, "\n</details>\n\n")
	}
}

func (f *MarkdownFormatter) printFooter(w io.Writer) {
	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "*Reviewed by [pyvet](https://github.com/pyvet/pyvet) %s*\n", ToolVersion)
}

func severityEmoji(sev types.Severity) string {
	switch sev {
	case types.SeverityHigh:
		return ":red_circle:"
	case types.SeverityMedium:
		return ":yellow_circle:"
	case types.SeverityLow:
		return ":blue_circle:"
	default:
		return ":white_circle:"
	}
}

func openByDefault(sev types.Severity) string {
	if sev == types.SeverityHigh {
		return " open"
	}
	return ""
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
