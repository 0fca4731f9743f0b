package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pyvet/pyvet/internal/review"
	"github.com/pyvet/pyvet/internal/types"
)

// ANSI color codes
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
)

const (
	barWidth  = 40
	lineWidth = 72
)

// TerminalFormatter outputs findings in a triage-optimized format.
type TerminalFormatter struct {
	NoColor bool
	Verbose bool
}

func (f *TerminalFormatter) color(code, text string) string {
	if f.NoColor {
		return text
	}
	return code + text + reset
}

func (f *TerminalFormatter) Format(w io.Writer, report *review.Report) error {
	f.printHeader(w, report)

	if len(report.Findings) == 0 {
		fmt.Fprintf(w, "\n  %s No issues found.\n", f.color(cyan, "✔"))
	} else {
		counts := report.CountBySeverity()
		f.printDashboard(w, counts, len(report.Findings))
		for _, sev := range severityOrder {
			filtered := filterBySeverity(report.Findings, sev)
			if len(filtered) > 0 {
				f.printSeveritySection(w, sev, filtered)
			}
		}
		f.printTopFiles(w, report.Findings)
	}

	f.printFooter(w, report)
	return nil
}

func (f *TerminalFormatter) separator() string {
	return strings.Repeat("─", lineWidth)
}

func (f *TerminalFormatter) sectionHeader(title string) string {
	prefix := "── " + title + " "
	displayLen := utf8.RuneCountInString(prefix)
	remaining := max(lineWidth-displayLen, 0)
	return prefix + strings.Repeat("─", remaining)
}

func (f *TerminalFormatter) printHeader(w io.Writer, report *review.Report) {
	fmt.Fprintln(w, f.color(bold, f.separator()))
	target := report.Target
	if target == "" {
		target = "(inline)"
	}
	fmt.Fprintf(w, "  %s  %s\n", f.color(bold, "pyvet review"), f.color(dim, target))
	fmt.Fprintln(w, f.color(bold, f.separator()))
}

func (f *TerminalFormatter) printDashboard(w io.Writer, counts map[types.Severity]int, total int) {
	fmt.Fprintf(w, "\n  %s\n\n", f.color(bold, fmt.Sprintf("%d findings", total)))
	for _, sev := range severityOrder {
		c := counts[sev]
		width := 0
		if total > 0 {
			width = c * barWidth / total
		}
		bar := strings.Repeat("█", width)
		fmt.Fprintf(w, "  %-8s %3d  %s\n", sev.String(), c, f.color(f.severityColor(sev), bar))
	}
	fmt.Fprintln(w)
}

func (f *TerminalFormatter) printSeveritySection(w io.Writer, sev types.Severity, findings []types.Finding) {
	title := fmt.Sprintf("%s (%d)", sev.String(), len(findings))
	fmt.Fprintf(w, "%s\n", f.color(f.severityColor(sev), f.sectionHeader(title)))
	for _, finding := range findings {
		location := finding.FilePath
		if location != "" {
			location += ":"
		}
		fmt.Fprintf(w, "  %s %s  %s\n",
			f.color(dim, fmt.Sprintf("%s%d", location, finding.Line)),
			f.color(bold, fmt.Sprintf("[%s]", finding.CheckID)),
			finding.Message)
		if f.Verbose {
			if finding.Element != "" {
				fmt.Fprintf(w, "      %s\n", f.color(dim, fmt.Sprintf("%s %q", strings.ToLower(finding.ElementType), finding.Element)))
			}
			if finding.Snippet != "" {
				fmt.Fprintf(w, "      %s\n", f.color(dim, truncate(finding.Snippet, 60)))
			}
		}
	}
	fmt.Fprintln(w)
}

func (f *TerminalFormatter) printTopFiles(w io.Writer, findings []types.Finding) {
	fileCounts := map[string]int{}
	for _, finding := range findings {
		fileCounts[finding.FilePath]++
	}
	if len(fileCounts) < 2 {
		return
	}
	type fc struct {
		path  string
		count int
	}
	sorted := make([]fc, 0, len(fileCounts))
	for path, count := range fileCounts {
		sorted = append(sorted, fc{path, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].path < sorted[j].path
	})

	fmt.Fprintf(w, "%s\n", f.sectionHeader("top files"))
	limit := min(len(sorted), 5)
	for i := range limit {
		fmt.Fprintf(w, "  %3d  %s\n", sorted[i].count, sorted[i].path)
	}
	fmt.Fprintln(w)
}

func (f *TerminalFormatter) printFooter(w io.Writer, report *review.Report) {
	fmt.Fprintln(w, f.color(dim, f.separator()))
	fmt.Fprintf(w, "  %s\n", f.color(dim, fmt.Sprintf(
		"%d files · %d checks · %.2fs",
		report.FilesScanned, report.ChecksLoaded, report.Duration.Seconds())))
}

func (f *TerminalFormatter) severityColor(sev types.Severity) string {
	switch sev {
	case types.SeverityHigh:
		return red
	case types.SeverityMedium:
		return yellow
	default:
		return blue
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
