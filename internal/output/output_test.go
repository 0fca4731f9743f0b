package output_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pyvet/pyvet/internal/checks"
	"github.com/pyvet/pyvet/internal/output"
	"github.com/pyvet/pyvet/internal/review"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T) *review.Report {
	t.Helper()
	code := `def risky(a, b):
    return eval(a)
`
	r := review.New(checks.MustBuiltin(), 1)
	report, err := r.ReviewContent(context.Background(), code, "app.py")
	require.NoError(t, err)
	report.Target = "app.py"
	return report
}

func emptyReport() *review.Report {
	return &review.Report{
		FilesScanned: 3,
		ChecksLoaded: 15,
		Duration:     120 * time.Millisecond,
		Target:       "clean/",
	}
}

func TestTerminalFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &output.TerminalFormatter{NoColor: true}
	require.NoError(t, f.Format(&buf, sampleReport(t)))

	out := buf.String()
	require.Contains(t, out, "pyvet review")
	require.Contains(t, out, "app.py")
	require.Contains(t, out, "[SEC001]")
	require.Contains(t, out, "Dangerous use of eval()")
	require.Contains(t, out, "HIGH")
	require.NotContains(t, out, "\033[")
}

func TestTerminalFormatterColor(t *testing.T) {
	var buf bytes.Buffer
	f := &output.TerminalFormatter{}
	require.NoError(t, f.Format(&buf, sampleReport(t)))
	require.Contains(t, buf.String(), "\033[")
}

func TestTerminalFormatterVerbose(t *testing.T) {
	var buf bytes.Buffer
	f := &output.TerminalFormatter{NoColor: true, Verbose: true}
	require.NoError(t, f.Format(&buf, sampleReport(t)))

	// Verbose mode shows the offending snippet and the code element.
	require.Contains(t, buf.String(), "return eval(a)")
	require.Contains(t, buf.String(), `"risky"`)
}

func TestTerminalFormatterNoIssues(t *testing.T) {
	var buf bytes.Buffer
	f := &output.TerminalFormatter{NoColor: true}
	require.NoError(t, f.Format(&buf, emptyReport()))
	require.Contains(t, buf.String(), "No issues found")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &output.JSONFormatter{}
	require.NoError(t, f.Format(&buf, sampleReport(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Contains(t, decoded, "files")
	require.Contains(t, decoded, "findings")
	require.Contains(t, decoded, "duration_ms")

	// Per-file analyzer results keep the legacy field names.
	files := decoded["files"].([]any)
	require.Len(t, files, 1)
	file := files[0].(map[string]any)
	security := file["security"].(map[string]any)
	require.Contains(t, security, "security_issues")
	require.Contains(t, security, "safe")
	structure := file["structure"].(map[string]any)
	require.Contains(t, structure, "issues_found")
	require.Contains(t, structure, "lines_of_code")
}

func TestSARIFFormatter(t *testing.T) {
	output.ToolVersion = "v1.2.3"
	t.Cleanup(func() { output.ToolVersion = "dev" })

	var buf bytes.Buffer
	f := &output.SARIFFormatter{}
	require.NoError(t, f.Format(&buf, sampleReport(t)))

	var log struct {
		Schema  string `json:"$schema"`
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name    string `json:"name"`
					Version string `json:"version"`
					Rules   []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine int `json:"startLine"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))

	require.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	require.Equal(t, "pyvet", log.Runs[0].Tool.Driver.Name)
	require.Equal(t, "v1.2.3", log.Runs[0].Tool.Driver.Version)
	require.NotEmpty(t, log.Runs[0].Results)

	// One rule entry per distinct check ID; SEC001 findings map to "error".
	for _, res := range log.Runs[0].Results {
		if res.RuleID == "SEC001" {
			require.Equal(t, "error", res.Level)
			require.Equal(t, "app.py", res.Locations[0].PhysicalLocation.ArtifactLocation.URI)
			require.Equal(t, 2, res.Locations[0].PhysicalLocation.Region.StartLine)
		}
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &output.MarkdownFormatter{}
	require.NoError(t, f.Format(&buf, sampleReport(t)))

	out := buf.String()
	require.Contains(t, out, "### :mag: pyvet review")
	require.Contains(t, out, "| Check | Description | File | Line |")
	require.Contains(t, out, "`SEC001`")
	require.Contains(t, out, "<details open>")
	require.Contains(t, out, "*Reviewed by [pyvet]")
}

func TestMarkdownFormatterClean(t *testing.T) {
	var buf bytes.Buffer
	f := &output.MarkdownFormatter{}
	require.NoError(t, f.Format(&buf, emptyReport()))

	out := buf.String()
	require.Contains(t, out, "No issues found")
	require.NotContains(t, out, "<details")
}

func TestMarkdownEscapesSnippets(t *testing.T) {
	report := sampleReport(t)
	report.Findings[0].Snippet = `x | y < eval("z")`

	var buf bytes.Buffer
	f := &output.MarkdownFormatter{}
	require.NoError(t, f.Format(&buf, report))

	out := buf.String()
	require.Contains(t, out, `\|`)
	require.Contains(t, out, "&lt;")
	require.False(t, strings.Contains(out, `x | y <`))
}
