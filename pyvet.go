// Package pyvet provides automated static review of Python source code:
// structure analysis, security scanning, performance scanning, and
// documentation auditing.
//
// This is the library entry point. For the CLI tool, see cmd/pyvet/.
package pyvet

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pyvet/pyvet/internal/checks"
	"github.com/pyvet/pyvet/internal/engine/docs"
	"github.com/pyvet/pyvet/internal/engine/performance"
	"github.com/pyvet/pyvet/internal/engine/security"
	"github.com/pyvet/pyvet/internal/engine/structure"
	"github.com/pyvet/pyvet/internal/review"
	"github.com/pyvet/pyvet/internal/types"
)

// Re-export core types from internal packages so consumers don't need to
// import internal paths.
type (
	Severity            = types.Severity
	Category            = types.Category
	Status              = types.Status
	Finding             = types.Finding
	FunctionInfo        = types.FunctionInfo
	ClassInfo           = types.ClassInfo
	StructureResult     = types.StructureResult
	SecurityResult      = types.SecurityResult
	PerformanceResult   = types.PerformanceResult
	DocumentationResult = types.DocumentationResult
	Report              = review.Report
	FileReview          = review.FileReview
)

const (
	SeverityLow    = types.SeverityLow
	SeverityMedium = types.SeverityMedium
	SeverityHigh   = types.SeverityHigh

	StatusSuccess = types.StatusSuccess
	StatusError   = types.StatusError

	CategoryStructure     = types.CategoryStructure
	CategorySecurity      = types.CategorySecurity
	CategoryPerformance   = types.CategoryPerformance
	CategoryDocumentation = types.CategoryDocumentation
)

// ParseSeverity converts a string to a Severity level.
var ParseSeverity = types.ParseSeverity

// CheckOverride allows changing the severity of a check or disabling it.
type CheckOverride struct {
	Severity string
	Disabled bool
}

// CheckInfo provides summary metadata about a check.
type CheckInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Severity string `json:"severity"`
}

// CheckDetail provides full information about a check.
type CheckDetail struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Severity string   `json:"severity"`
	Pattern  string   `json:"pattern,omitempty"`
	Message  string   `json:"message,omitempty"`
	LoopOnly bool     `json:"loop_only,omitempty"`
	Flagged  []string `json:"flagged_examples,omitempty"`
	Clean    []string `json:"clean_examples,omitempty"`
}

// AnalyzeStructure parses code and reports its functions, classes, imports,
// and structural findings. Malformed input yields a status=error result,
// never an error or panic.
func AnalyzeStructure(code string) *StructureResult {
	return structure.Analyze(code)
}

// ScanSecurity checks every line of code against the security pattern table.
func ScanSecurity(code string, opts ...Option) *SecurityResult {
	cfg := applyOpts(opts)
	compiled, err := loadAndCompile(cfg)
	if err != nil {
		compiled = checks.MustBuiltin()
	}
	return security.New(compiled).Scan(code)
}

// ScanPerformance checks code against the performance anti-pattern table.
func ScanPerformance(code string, opts ...Option) *PerformanceResult {
	cfg := applyOpts(opts)
	compiled, err := loadAndCompile(cfg)
	if err != nil {
		compiled = checks.MustBuiltin()
	}
	return performance.New(compiled).Scan(code)
}

// AuditDocumentation reviews the documentation quality of code. Malformed
// input yields a status=error result, never an error or panic.
func AuditDocumentation(code string) *DocumentationResult {
	return docs.Audit(code)
}

// Review runs all four analyzers over a file or directory on disk.
func Review(ctx context.Context, path string, opts ...Option) (*Report, error) {
	cfg := applyOpts(opts)
	r, compiled, err := buildReviewer(cfg)
	if err != nil {
		return nil, err
	}
	report, err := r.Review(ctx, path)
	if err != nil {
		return nil, err
	}
	report.ChecksLoaded = len(compiled)
	report.Target = path
	return report, nil
}

// ReviewContent runs all four analyzers over inline content without touching
// disk. filename is a hint used for finding locations (e.g. "snippet.py");
// Markdown filenames cause fenced python blocks to be reviewed instead.
func ReviewContent(ctx context.Context, content, filename string, opts ...Option) (*Report, error) {
	cfg := applyOpts(opts)
	r, compiled, err := buildReviewer(cfg)
	if err != nil {
		return nil, err
	}
	report, err := r.ReviewContent(ctx, content, filename)
	if err != nil {
		return nil, err
	}
	report.ChecksLoaded = len(compiled)
	report.Target = filename
	return report, nil
}

// ListChecks returns all available checks, pattern-table and fixed analyzer
// checks alike. Use WithCategory to filter by category.
func ListChecks(opts ...Option) []CheckInfo {
	cfg := applyOpts(opts)
	compiled, _ := loadAndCompile(cfg)

	var infos []CheckInfo
	for _, c := range compiled {
		infos = append(infos, CheckInfo{
			ID:       c.ID,
			Name:     c.Name,
			Category: string(c.Category),
			Severity: c.Severity.String(),
		})
	}
	for _, s := range checks.Static() {
		infos = append(infos, CheckInfo{ID: s.ID, Name: s.Name, Category: s.Category, Severity: s.Severity})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })

	if cfg.category != "" {
		var filtered []CheckInfo
		for _, info := range infos {
			if strings.EqualFold(info.Category, cfg.category) {
				filtered = append(filtered, info)
			}
		}
		infos = filtered
	}
	return infos
}

// ExplainCheck returns detailed information about a specific check.
func ExplainCheck(id string, opts ...Option) (*CheckDetail, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	cfg := applyOpts(opts)
	compiled, _ := loadAndCompile(cfg)

	for _, c := range compiled {
		if c.ID != id {
			continue
		}
		return &CheckDetail{
			ID:       c.ID,
			Name:     c.Name,
			Category: string(c.Category),
			Severity: c.Severity.String(),
			Pattern:  c.Pattern,
			Message:  c.Message,
			LoopOnly: c.LoopOnly,
			Flagged:  c.Examples.Flagged,
			Clean:    c.Examples.Clean,
		}, nil
	}
	for _, s := range checks.Static() {
		if s.ID != id {
			continue
		}
		return &CheckDetail{
			ID:       s.ID,
			Name:     s.Name,
			Category: s.Category,
			Severity: s.Severity,
			Message:  "Implemented by the tree-based analyzers; not configurable through check files.",
		}, nil
	}
	return nil, fmt.Errorf("check %q not found", id)
}

// --- internal helpers ---

func applyOpts(opts []Option) *reviewConfig {
	cfg := &reviewConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// loadAndCompile loads built-in (and optionally custom) checks, compiles
// them, and applies overrides and filters. Used by all public functions.
func loadAndCompile(cfg *reviewConfig) ([]*checks.Compiled, error) {
	compiled := checks.MustBuiltin()

	if cfg.customChecksDir != "" {
		raws, err := checks.LoadFromDir(cfg.customChecksDir)
		if err != nil {
			return nil, fmt.Errorf("loading custom checks from %s: %w", cfg.customChecksDir, err)
		}
		custom, compileErrs := checks.CompileAll(raws)
		for _, e := range compileErrs {
			fmt.Fprintf(os.Stderr, "pyvet: warning: %v\n", e)
		}
		compiled = append(append([]*checks.Compiled{}, compiled...), custom...)
	}

	if len(cfg.checkOverrides) > 0 {
		overrides := make(map[string]checks.Override, len(cfg.checkOverrides))
		for id, ovr := range cfg.checkOverrides {
			overrides[id] = checks.Override{Severity: ovr.Severity, Disabled: ovr.Disabled}
		}
		var overrideErrs []error
		compiled, overrideErrs = checks.ApplyOverrides(compiled, overrides)
		for _, e := range overrideErrs {
			fmt.Fprintf(os.Stderr, "pyvet: warning: %v\n", e)
		}
	}

	if len(cfg.disabledChecks) > 0 {
		disabled := make(map[string]bool, len(cfg.disabledChecks))
		for _, id := range cfg.disabledChecks {
			disabled[strings.ToUpper(strings.TrimSpace(id))] = true
		}
		compiled = checks.FilterByIDs(compiled, disabled)
	}

	return compiled, nil
}

// buildReviewer creates a fully wired Reviewer.
func buildReviewer(cfg *reviewConfig) (*review.Reviewer, []*checks.Compiled, error) {
	compiled, err := loadAndCompile(cfg)
	if err != nil {
		return nil, nil, err
	}

	r := review.New(compiled, cfg.workers)
	r.SetMinSeverity(cfg.minSeverity)
	if len(cfg.ignorePatterns) > 0 {
		r.SetIgnorePatterns(cfg.ignorePatterns)
	}
	return r, compiled, nil
}
