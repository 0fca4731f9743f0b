package review_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pyvet/pyvet/internal/checks"
	"github.com/pyvet/pyvet/internal/review"
	"github.com/pyvet/pyvet/internal/state"
	"github.com/pyvet/pyvet/internal/types"
	"github.com/stretchr/testify/require"
)

func newReviewer(t *testing.T) *review.Reviewer {
	t.Helper()
	return review.New(checks.MustBuiltin(), 2)
}

func TestReviewContent(t *testing.T) {
	code := `import os

def risky(a, b):
    return eval(a)
`
	report, err := newReviewer(t).ReviewContent(context.Background(), code, "sample.py")
	require.NoError(t, err)

	require.Equal(t, 1, report.FilesScanned)
	require.Len(t, report.Files, 1)

	fr := report.Files[0]
	require.Equal(t, "sample.py", fr.Path)
	require.Equal(t, types.StatusSuccess, fr.Structure.Status)
	require.Len(t, fr.Structure.Functions, 1)
	require.False(t, fr.Security.Safe)
	require.True(t, fr.Performance.Optimized)
	require.False(t, fr.Documentation.WellDocumented)

	// Flattened findings carry the file path and sort highest first.
	require.NotEmpty(t, report.Findings)
	for _, f := range report.Findings {
		require.Equal(t, "sample.py", f.FilePath)
	}
	for i := 1; i < len(report.Findings); i++ {
		require.GreaterOrEqual(t, report.Findings[i-1].Severity, report.Findings[i].Severity)
	}
}

func TestReviewContentDefaultFilename(t *testing.T) {
	report, err := newReviewer(t).ReviewContent(context.Background(), "x = 1\n", "")
	require.NoError(t, err)
	require.Equal(t, "snippet.py", report.Files[0].Path)
}

func TestReviewSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(path, []byte("password = \"hunter2\"\n"), 0o644))

	report, err := newReviewer(t).Review(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, report.FilesScanned)
	require.Len(t, report.Findings, 1)
	require.Equal(t, "SEC008", report.Findings[0].CheckID)
}

func TestReviewDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("def f():\n    \"\"\"Documented well enough here.\"\"\"\n    pass\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.py"), []byte("eval(x)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("eval(x)\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "__pycache__"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "__pycache__", "c.py"), []byte("eval(x)\n"), 0o644))

	report, err := newReviewer(t).Review(context.Background(), dir)
	require.NoError(t, err)

	// Only the two python files outside skip dirs are reviewed.
	require.Equal(t, 2, report.FilesScanned)

	var paths []string
	for _, fr := range report.Files {
		paths = append(paths, fr.Path)
	}
	require.Equal(t, []string{"a.py", "b.py"}, paths)
}

func TestReviewMissingPath(t *testing.T) {
	_, err := newReviewer(t).Review(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestReviewMarkdownSnippets(t *testing.T) {
	md := "# Usage\n\n```python\neval(data)\n```\n\nprose with eval( mention\n\n```python\nx = 1\n```\n"
	report, err := newReviewer(t).ReviewContent(context.Background(), md, "README.md")
	require.NoError(t, err)

	// One host file, one snippet review per fenced python block.
	require.Equal(t, 1, report.FilesScanned)
	require.Len(t, report.Files, 2)

	// Prose outside fences is never matched.
	require.Len(t, report.Findings, 1)
	require.Equal(t, "SEC001", report.Findings[0].CheckID)

	// The finding line is positioned in the host document.
	require.Equal(t, 4, report.Findings[0].Line)
}

func TestReviewIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gen"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gen", "auto.py"), []byte("eval(x)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.py"), []byte("eval(x)\n"), 0o644))

	r := newReviewer(t)
	r.SetIgnorePatterns([]string{"gen/"})
	report, err := r.Review(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, 1, report.FilesScanned)
	require.Equal(t, "main.py", report.Files[0].Path)
}

func TestReviewMinSeverity(t *testing.T) {
	code := "for x in data:\n    buf.append(eval(x))\n"
	r := newReviewer(t)
	r.SetMinSeverity(types.SeverityHigh)
	report, err := r.ReviewContent(context.Background(), code, "loop.py")
	require.NoError(t, err)

	for _, f := range report.Findings {
		require.GreaterOrEqual(t, f.Severity, types.SeverityHigh)
	}
	// Per-analyzer results keep everything; only the flat list is filtered.
	require.Equal(t, 1, report.Files[0].Performance.IssuesFound)
}

func TestReviewBaselineSuppression(t *testing.T) {
	code := "eval(x)\n"
	store := state.New(filepath.Join(t.TempDir(), "baseline.json"))

	record := newReviewer(t)
	record.SetBaseline(store, true)
	report, err := record.ReviewContent(context.Background(), code, "app.py")
	require.NoError(t, err)
	require.NotEmpty(t, report.Findings)
	require.Equal(t, len(report.Findings), store.Len())

	filter := newReviewer(t)
	filter.SetBaseline(store, false)
	report, err = filter.ReviewContent(context.Background(), code, "app.py")
	require.NoError(t, err)
	require.Empty(t, report.Findings)

	// A new finding is still reported.
	report, err = filter.ReviewContent(context.Background(), "eval(x)\nos.system(cmd)\n", "app.py")
	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	require.Equal(t, "SEC005", report.Findings[0].CheckID)
}

func TestReviewCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newReviewer(t).ReviewContent(ctx, "x = 1\n", "a.py")
	require.ErrorIs(t, err, context.Canceled)
}

func TestReportCountBySeverity(t *testing.T) {
	report, err := newReviewer(t).ReviewContent(context.Background(), "eval(x)\npassword = 'x'\n", "a.py")
	require.NoError(t, err)

	counts := report.CountBySeverity()
	require.Equal(t, 1, counts[types.SeverityHigh])
	require.Equal(t, 1, counts[types.SeverityMedium])
}

func TestGitChangedFilesOutsideRepo(t *testing.T) {
	// Outside a repository there is nothing to review; no error either.
	files, err := review.GitChangedFiles(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, files)
}
