// Package review orchestrates the four analyzers over files and directories:
// target discovery, worker fan-out, and aggregation of per-file results into
// a single report. Each analyzer call stays a pure function over one code
// string; this package only decides what to feed them and how to collect
// what comes back.
package review

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/pyvet/pyvet/internal/checks"
	"github.com/pyvet/pyvet/internal/engine/docs"
	"github.com/pyvet/pyvet/internal/engine/performance"
	"github.com/pyvet/pyvet/internal/engine/security"
	"github.com/pyvet/pyvet/internal/engine/structure"
	"github.com/pyvet/pyvet/internal/state"
	"github.com/pyvet/pyvet/internal/types"
)

// FileReview holds the four analyzer results for one target. For snippet
// targets lifted from Markdown, Line is the host-file line of the snippet.
type FileReview struct {
	Path          string                     `json:"path"`
	Line          int                        `json:"line,omitempty"`
	Structure     *types.StructureResult     `json:"structure"`
	Security      *types.SecurityResult      `json:"security"`
	Performance   *types.PerformanceResult   `json:"performance"`
	Documentation *types.DocumentationResult `json:"documentation"`
}

// Report is the aggregated outcome of a review run. Findings is the
// flattened view across files and analyzers with file paths and host-file
// line numbers filled in; the per-file results are kept verbatim.
type Report struct {
	Files        []FileReview    `json:"files"`
	Findings     []types.Finding `json:"findings"`
	FilesScanned int             `json:"files_scanned"`
	ChecksLoaded int             `json:"checks_loaded"`
	Duration     time.Duration   `json:"-"`
	Target       string          `json:"-"`
}

// MarshalJSON serializes Duration as milliseconds.
func (r Report) MarshalJSON() ([]byte, error) {
	type Alias Report
	return json.Marshal(struct {
		Alias
		DurationMS int64 `json:"duration_ms"`
	}{
		Alias:      Alias(r),
		DurationMS: r.Duration.Milliseconds(),
	})
}

// CountBySeverity tallies the flattened findings per severity level.
func (r *Report) CountBySeverity() map[types.Severity]int {
	counts := map[types.Severity]int{}
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}

// Reviewer runs the analyzer set over targets with a bounded worker pool.
type Reviewer struct {
	table          []*checks.Compiled
	workers        int
	minSeverity    types.Severity
	ignorePatterns []string
	baseline       *state.Store
	updateBaseline bool
}

// New creates a Reviewer using the given compiled check tables. If workers
// <= 0, it defaults to runtime.NumCPU().
func New(table []*checks.Compiled, workers int) *Reviewer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Reviewer{table: table, workers: workers}
}

// SetMinSeverity sets the minimum severity for the flattened finding list.
// Per-file analyzer results are never filtered; their issue counts are part
// of each analyzer's contract.
func (r *Reviewer) SetMinSeverity(sev types.Severity) {
	r.minSeverity = sev
}

// SetIgnorePatterns sets additional file ignore patterns from config.
func (r *Reviewer) SetIgnorePatterns(patterns []string) {
	r.ignorePatterns = patterns
}

// SetBaseline suppresses findings recorded in store. When update is true,
// the current findings are added to the store instead of being filtered.
func (r *Reviewer) SetBaseline(store *state.Store, update bool) {
	r.baseline = store
	r.updateBaseline = update
}

// Review reviews a file or directory on disk.
func (r *Reviewer) Review(ctx context.Context, root string) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		targets := []*Target{{
			Path:     root,
			RelPath:  filepath.Base(root),
			Markdown: isMarkdown(root),
		}}
		return r.ReviewTargets(ctx, targets)
	}

	discovery := &TargetDiscovery{IgnorePatterns: r.ignorePatterns}
	targets, err := discovery.Discover(root)
	if err != nil {
		return nil, err
	}
	return r.ReviewTargets(ctx, targets)
}

// ReviewTargets runs the pipeline on a pre-built target list. Markdown
// targets are expanded into one snippet target per fenced python block.
func (r *Reviewer) ReviewTargets(ctx context.Context, targets []*Target) (*Report, error) {
	start := time.Now()

	expanded := make([]*Target, 0, len(targets))
	filesSeen := 0
	for _, t := range targets {
		if t.Content == nil {
			if err := t.LoadContent(); err != nil {
				continue
			}
		}
		filesSeen++
		if t.Markdown {
			expanded = append(expanded, expandMarkdown(t)...)
		} else {
			expanded = append(expanded, t)
		}
	}

	targetCh := make(chan *Target, len(expanded))
	for _, t := range expanded {
		targetCh <- t
	}
	close(targetCh)

	var (
		mu    sync.Mutex
		files []FileReview
		wg    sync.WaitGroup
	)

	for range r.workers {
		wg.Go(func() {
			for t := range targetCh {
				if ctx.Err() != nil {
					return
				}
				fr := r.reviewTarget(t)
				mu.Lock()
				files = append(files, fr)
				mu.Unlock()
			}
		})
	}

	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Path != files[j].Path {
			return files[i].Path < files[j].Path
		}
		return files[i].Line < files[j].Line
	})

	report := &Report{
		Files:        files,
		FilesScanned: filesSeen,
		ChecksLoaded: len(r.table),
		Duration:     time.Since(start),
	}
	report.Findings = r.flatten(files)
	return report, nil
}

// ReviewContent reviews a single in-memory code unit. filename is used for
// finding locations only.
func (r *Reviewer) ReviewContent(ctx context.Context, code, filename string) (*Report, error) {
	if filename == "" {
		filename = "snippet.py"
	}
	return r.ReviewTargets(ctx, []*Target{{
		Path:     filename,
		RelPath:  filename,
		Content:  []byte(code),
		Markdown: isMarkdown(filename),
	}})
}

func (r *Reviewer) reviewTarget(t *Target) FileReview {
	code := string(t.Content)
	fr := FileReview{
		Path:          t.RelPath,
		Structure:     structure.Analyze(code),
		Security:      security.New(r.table).Scan(code),
		Performance:   performance.New(r.table).Scan(code),
		Documentation: docs.Audit(code),
	}
	if t.LineOffset > 0 {
		fr.Line = t.LineOffset + 1
	}
	return fr
}

// flatten merges the per-file findings into one list with file paths and
// host-file lines, applies the baseline and the minimum severity, and sorts
// by severity (highest first), then path, then line.
func (r *Reviewer) flatten(files []FileReview) []types.Finding {
	var findings []types.Finding
	for _, fr := range files {
		offset := 0
		if fr.Line > 0 {
			offset = fr.Line - 1
		}
		for _, group := range [][]types.Finding{
			fr.Structure.Issues,
			fr.Security.Issues,
			fr.Performance.Issues,
			fr.Documentation.Issues,
		} {
			for _, f := range group {
				f.FilePath = fr.Path
				f.Line += offset
				findings = append(findings, f)
			}
		}
	}

	if r.baseline != nil {
		if r.updateBaseline {
			for _, f := range findings {
				r.baseline.Add(state.Fingerprint(f))
			}
		} else {
			kept := findings[:0]
			for _, f := range findings {
				if !r.baseline.Has(state.Fingerprint(f)) {
					kept = append(kept, f)
				}
			}
			findings = kept
		}
	}

	if r.minSeverity > 0 {
		var kept []types.Finding
		for _, f := range findings {
			if f.Severity >= r.minSeverity {
				kept = append(kept, f)
			}
		}
		findings = kept
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Severity != findings[j].Severity {
			return findings[i].Severity > findings[j].Severity
		}
		if findings[i].FilePath != findings[j].FilePath {
			return findings[i].FilePath < findings[j].FilePath
		}
		return findings[i].Line < findings[j].Line
	})

	return findings
}
