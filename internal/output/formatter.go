// Package output formats review reports for terminal (ANSI), JSON, SARIF,
// and Markdown output.
package output

import (
	"io"

	"github.com/pyvet/pyvet/internal/review"
	"github.com/pyvet/pyvet/internal/types"
)

// ToolVersion is the pyvet version reported in SARIF and Markdown output.
var ToolVersion = "dev"

// Formatter is the interface for outputting review reports.
type Formatter interface {
	Format(w io.Writer, report *review.Report) error
}

// severityOrder lists severities from most to least severe for display.
var severityOrder = []types.Severity{
	types.SeverityHigh,
	types.SeverityMedium,
	types.SeverityLow,
}

func filterBySeverity(findings []types.Finding, sev types.Severity) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}
