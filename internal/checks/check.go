// Package checks defines the pattern tables driving the security and
// performance scanners. Tables are ordered lists loaded from YAML (built-in
// via go:embed, plus optional custom directories) and compiled before use;
// file order is table order and is part of the scanners' output contract.
package checks

import (
	"github.com/pyvet/pyvet/internal/types"
)

// RawExamples contains sample lines for check self-testing and explain output.
type RawExamples struct {
	Flagged []string `yaml:"flagged"`
	Clean   []string `yaml:"clean"`
}

// Raw is the YAML representation of a single pattern check.
type Raw struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Category string      `yaml:"category"`
	Severity string      `yaml:"severity"`
	Pattern  string      `yaml:"pattern"`
	Message  string      `yaml:"message"`
	LoopOnly bool        `yaml:"loop_only"`
	Examples RawExamples `yaml:"examples"`
}

// Compiled is a check ready for execution.
type Compiled struct {
	ID       string
	Name     string
	Category types.Category
	Severity types.Severity
	Pattern  string // verbatim, matched against trimmed lines
	Lowered  string // lowercased, for case-insensitive matching
	Message  string
	LoopOnly bool
	Examples RawExamples
}

// Info provides summary metadata about a check, including the fixed
// tree-analyzer checks that have no pattern table entry.
type Info struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Severity string `json:"severity"`
}

// Static returns metadata for the checks implemented directly by the
// tree-based analyzers. They cannot be reconfigured through check files but
// are listed so list-checks covers every check ID a finding can carry.
func Static() []Info {
	return []Info{
		{ID: "STR001", Name: "Function missing docstring", Category: "structure", Severity: "HIGH"},
		{ID: "STR002", Name: "Too many parameters", Category: "structure", Severity: "MEDIUM"},
		{ID: "STR003", Name: "Class missing docstring", Category: "structure", Severity: "HIGH"},
		{ID: "DOC001", Name: "Missing docstring", Category: "documentation", Severity: "HIGH"},
		{ID: "DOC002", Name: "Docstring too brief", Category: "documentation", Severity: "MEDIUM"},
		{ID: "DOC003", Name: "Parameters not documented", Category: "documentation", Severity: "MEDIUM"},
		{ID: "DOC004", Name: "Return value not documented", Category: "documentation", Severity: "LOW"},
	}
}
