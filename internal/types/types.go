// Package types defines shared data structures (Finding, Severity, the
// per-analyzer result types) used across the engine, review, and output
// packages to prevent import cycles.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity represents the severity level of a finding.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a string to a Severity level.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return SeverityHigh, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "LOW":
		return SeverityLow, nil
	default:
		return 0, fmt.Errorf("unknown severity: %q", s)
	}
}

// MarshalJSON serializes a Severity as its uppercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the uppercase severity names.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// Category identifies which analyzer produced a finding.
type Category string

const (
	CategoryStructure     Category = "structure"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
	CategoryDocumentation Category = "documentation"
)

// Status is the outcome of a single analyzer call.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Finding represents a single detected issue. Line numbers are 1-based and
// correspond to the input split on newlines. Only the fields relevant to the
// producing analyzer are populated.
type Finding struct {
	Line        int      `json:"line"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	CheckID     string   `json:"check_id,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	Snippet     string   `json:"code_snippet,omitempty"`
	Element     string   `json:"element,omitempty"`
	ElementType string   `json:"element_type,omitempty"`
	FilePath    string   `json:"file_path,omitempty"`
}

// FunctionInfo is a structure-analyzer record for one function declaration.
type FunctionInfo struct {
	Name         string `json:"name"`
	Args         int    `json:"args"`
	Line         int    `json:"line_number"`
	HasDocstring bool   `json:"has_docstring"`
}

// ClassInfo is a structure-analyzer record for one class declaration.
type ClassInfo struct {
	Name         string `json:"name"`
	Line         int    `json:"line_number"`
	Methods      int    `json:"methods"`
	HasDocstring bool   `json:"has_docstring"`
}

// StructureResult is the report of the structure analyzer.
type StructureResult struct {
	Status       Status         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Functions    []FunctionInfo `json:"functions"`
	Classes      []ClassInfo    `json:"classes"`
	Imports      []string       `json:"imports"`
	LinesOfCode  int            `json:"lines_of_code"`
	IssuesFound  int            `json:"issues_found"`
	Issues       []Finding      `json:"issues"`
}

// SecurityResult is the report of the security scanner.
type SecurityResult struct {
	Status      Status    `json:"status"`
	IssuesFound int       `json:"issues_found"`
	Issues      []Finding `json:"security_issues"`
	Safe        bool      `json:"safe"`
}

// PerformanceResult is the report of the performance scanner.
type PerformanceResult struct {
	Status      Status    `json:"status"`
	IssuesFound int       `json:"issues_found"`
	Issues      []Finding `json:"performance_issues"`
	Optimized   bool      `json:"optimized"`
}

// DocumentationResult is the report of the documentation auditor.
type DocumentationResult struct {
	Status         Status    `json:"status"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	IssuesFound    int       `json:"issues_found"`
	Issues         []Finding `json:"documentation_issues"`
	WellDocumented bool      `json:"well_documented"`
}
