// Package performance implements the line-oriented performance scanner. It
// matches a fixed table of anti-pattern substrings against trimmed lines and
// tracks one piece of sequential state: whether the current line sits inside
// a loop body. The loop tracking is an indentation heuristic, not a scope
// tracker; its finding set is a frozen contract, so changing it is a behavior
// change rather than a bug fix.
package performance

import (
	"strings"

	"github.com/pyvet/pyvet/internal/checks"
	"github.com/pyvet/pyvet/internal/types"
)

// Scanner matches a compiled performance check table against code.
type Scanner struct {
	table []*checks.Compiled
}

// New creates a Scanner from a compiled check set. Non-performance checks in
// the set are ignored; table order is preserved.
func New(compiled []*checks.Compiled) *Scanner {
	return &Scanner{table: checks.ByCategory(compiled, types.CategoryPerformance)}
}

// Scan checks code against the built-in performance table.
func Scan(code string) *types.PerformanceResult {
	return New(checks.MustBuiltin()).Scan(code)
}

// Scan walks lines top to bottom. A trimmed line starting with "for " or
// "while " sets the inside-loop flag; a later non-blank line with zero
// leading indentation clears it. loop_only checks fire only while the flag
// is set; every other check fires on any substring match.
func (s *Scanner) Scan(code string) *types.PerformanceResult {
	findings := []types.Finding{}
	inLoop := false

	for i, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "for ") || strings.HasPrefix(trimmed, "while "):
			inLoop = true
		case trimmed != "" && !indented(line) && inLoop:
			inLoop = false
		}

		for _, c := range s.table {
			if !strings.Contains(trimmed, c.Pattern) {
				continue
			}
			if c.LoopOnly && !inLoop {
				continue
			}
			findings = append(findings, types.Finding{
				Line:     i + 1,
				Category: types.CategoryPerformance,
				Severity: c.Severity,
				CheckID:  c.ID,
				Message:  c.Message,
				Snippet:  trimmed,
			})
		}
	}

	return &types.PerformanceResult{
		Status:      types.StatusSuccess,
		IssuesFound: len(findings),
		Issues:      findings,
		Optimized:   len(findings) == 0,
	}
}

func indented(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}
