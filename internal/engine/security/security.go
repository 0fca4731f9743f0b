// Package security implements the line-oriented security scanner: a fixed
// ordered table of case-insensitive substring patterns matched against every
// line of input. No parsing is attempted, so matches inside comments and
// string literals are reported; false positives are preferred over false
// negatives here.
package security

import (
	"strings"

	"github.com/pyvet/pyvet/internal/checks"
	"github.com/pyvet/pyvet/internal/types"
)

// Scanner matches a compiled security check table against code.
type Scanner struct {
	table []*checks.Compiled
}

// New creates a Scanner from a compiled check set. Non-security checks in
// the set are ignored; table order is preserved.
func New(compiled []*checks.Compiled) *Scanner {
	return &Scanner{table: checks.ByCategory(compiled, types.CategorySecurity)}
}

// Scan checks every line of code against the built-in security table.
func Scan(code string) *types.SecurityResult {
	return New(checks.MustBuiltin()).Scan(code)
}

// Scan checks every line of code against the scanner's table. A line can
// produce one finding per matching pattern, in table order. The scan cannot
// fail: every operation is a substring test over already-split lines.
func (s *Scanner) Scan(code string) *types.SecurityResult {
	findings := []types.Finding{}
	for i, line := range strings.Split(code, "\n") {
		lower := strings.ToLower(line)
		for _, c := range s.table {
			if !strings.Contains(lower, c.Lowered) {
				continue
			}
			findings = append(findings, types.Finding{
				Line:     i + 1,
				Category: types.CategorySecurity,
				Severity: c.Severity,
				CheckID:  c.ID,
				Pattern:  c.Pattern,
				Message:  c.Message,
				Snippet:  strings.TrimSpace(line),
			})
		}
	}

	return &types.SecurityResult{
		Status:      types.StatusSuccess,
		IssuesFound: len(findings),
		Issues:      findings,
		Safe:        len(findings) == 0,
	}
}
