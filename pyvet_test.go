package pyvet_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pyvet/pyvet"
)

func TestReview(t *testing.T) {
	dir := t.TempDir()
	content := "def risky(a):\n    return eval(a)\n"
	if err := os.WriteFile(filepath.Join(dir, "risky.py"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	report, err := pyvet.Review(context.Background(), dir)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if len(report.Findings) == 0 {
		t.Error("expected findings for risky content, got 0")
	}
	if report.FilesScanned != 1 {
		t.Errorf("FilesScanned = %d, want 1", report.FilesScanned)
	}
	if report.ChecksLoaded == 0 {
		t.Error("ChecksLoaded = 0, want > 0")
	}
}

func TestReviewContent(t *testing.T) {
	report, err := pyvet.ReviewContent(
		context.Background(),
		"import pickle\n\ndata = pickle.loads(blob)\n",
		"loader.py",
	)
	if err != nil {
		t.Fatalf("ReviewContent failed: %v", err)
	}
	if len(report.Findings) == 0 {
		t.Fatal("expected findings for unsafe deserialization, got 0")
	}
	found := false
	for _, f := range report.Findings {
		if f.Category == pyvet.CategorySecurity && f.Severity == pyvet.SeverityHigh {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected at least one high-severity security finding")
	}
}

func TestReviewContentClean(t *testing.T) {
	code := `def add(a, b):
    """Add two integers together.

    Args:
        a: first operand
        b: second operand

    Returns:
        The arithmetic sum.
    """
    return a + b
`
	report, err := pyvet.ReviewContent(context.Background(), code, "math_utils.py")
	if err != nil {
		t.Fatalf("ReviewContent failed: %v", err)
	}
	if len(report.Findings) != 0 {
		t.Errorf("expected 0 findings for clean content, got %d", len(report.Findings))
		for _, f := range report.Findings {
			t.Logf("  unexpected: %s (%s) %s", f.CheckID, f.Severity, f.Message)
		}
	}
}

func TestReviewContentMinSeverity(t *testing.T) {
	report, err := pyvet.ReviewContent(
		context.Background(),
		"for x in rows:\n    out.append(eval(x))\n",
		"loop.py",
		pyvet.WithMinSeverity(pyvet.SeverityHigh),
	)
	if err != nil {
		t.Fatalf("ReviewContent failed: %v", err)
	}
	for _, f := range report.Findings {
		if f.Severity < pyvet.SeverityHigh {
			t.Errorf("finding %s below threshold: %s", f.CheckID, f.Severity)
		}
	}
}

func TestReviewContentDisabledChecks(t *testing.T) {
	report, err := pyvet.ReviewContent(
		context.Background(),
		"eval(x)\n",
		"a.py",
		pyvet.WithDisabledChecks("SEC001"),
	)
	if err != nil {
		t.Fatalf("ReviewContent failed: %v", err)
	}
	for _, f := range report.Findings {
		if f.CheckID == "SEC001" {
			t.Error("SEC001 reported despite being disabled")
		}
	}
}

func TestAnalyzeStructure(t *testing.T) {
	result := pyvet.AnalyzeStructure("def f(a, b, c, d, e, f, g):\n    pass\n")
	if result.Status != pyvet.StatusSuccess {
		t.Fatalf("Status = %s, want success", result.Status)
	}
	if len(result.Functions) != 1 || result.Functions[0].Args != 7 {
		t.Errorf("unexpected functions: %+v", result.Functions)
	}
	if result.IssuesFound != 2 {
		t.Errorf("IssuesFound = %d, want 2", result.IssuesFound)
	}
}

func TestScanSecurity(t *testing.T) {
	result := pyvet.ScanSecurity("os.system(cmd)\n")
	if result.Safe {
		t.Error("expected unsafe result")
	}
	if result.IssuesFound != 1 || result.Issues[0].CheckID != "SEC005" {
		t.Errorf("unexpected issues: %+v", result.Issues)
	}
}

func TestScanSecurityHardcodedPassword(t *testing.T) {
	result := pyvet.ScanSecurity(`password = "admin123"`)
	if result.Safe {
		t.Error("expected unsafe result")
	}
	if result.IssuesFound != 1 || result.Issues[0].CheckID != "SEC008" {
		t.Errorf("unexpected issues: %+v", result.Issues)
	}
}

func TestScanPerformance(t *testing.T) {
	result := pyvet.ScanPerformance("for i in range(len(xs)):\n    pass\n")
	if result.Optimized {
		t.Error("expected unoptimized result")
	}
	if result.IssuesFound != 1 || result.Issues[0].CheckID != "PERF001" {
		t.Errorf("unexpected issues: %+v", result.Issues)
	}
}

func TestAuditDocumentation(t *testing.T) {
	result := pyvet.AuditDocumentation("def f():\n    pass\n")
	if result.WellDocumented {
		t.Error("expected documentation issues")
	}
	if result.IssuesFound != 1 || result.Issues[0].CheckID != "DOC001" {
		t.Errorf("unexpected issues: %+v", result.Issues)
	}
}

func TestListChecks(t *testing.T) {
	infos := pyvet.ListChecks()
	if len(infos) != 22 {
		t.Errorf("expected 22 checks, got %d", len(infos))
	}
	for _, info := range infos {
		if info.ID == "" || info.Name == "" || info.Category == "" || info.Severity == "" {
			t.Errorf("check with missing fields: %+v", info)
		}
	}

	perf := pyvet.ListChecks(pyvet.WithCategory("performance"))
	if len(perf) != 5 {
		t.Errorf("expected 5 performance checks, got %d", len(perf))
	}
}

func TestExplainCheck(t *testing.T) {
	detail, err := pyvet.ExplainCheck("sec001")
	if err != nil {
		t.Fatalf("ExplainCheck failed: %v", err)
	}
	if detail.ID != "SEC001" || detail.Pattern != "eval(" || detail.Severity != "HIGH" {
		t.Errorf("unexpected detail: %+v", detail)
	}

	if _, err := pyvet.ExplainCheck("SEC999"); err == nil {
		t.Error("expected error for unknown check")
	}
}
