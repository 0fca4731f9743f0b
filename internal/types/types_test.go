package types_test

import (
	"encoding/json"
	"testing"

	"github.com/pyvet/pyvet/internal/types"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	require.Equal(t, "HIGH", types.SeverityHigh.String())
	require.Equal(t, "MEDIUM", types.SeverityMedium.String())
	require.Equal(t, "LOW", types.SeverityLow.String())
	require.Equal(t, "UNKNOWN", types.Severity(0).String())
}

func TestSeverityOrdering(t *testing.T) {
	require.True(t, types.SeverityHigh > types.SeverityMedium)
	require.True(t, types.SeverityMedium > types.SeverityLow)
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want types.Severity
	}{
		{"high", types.SeverityHigh},
		{"HIGH", types.SeverityHigh},
		{" Medium ", types.SeverityMedium},
		{"low", types.SeverityLow},
	}
	for _, tt := range tests {
		sev, err := types.ParseSeverity(tt.in)
		require.NoError(t, err)
		require.Equal(t, tt.want, sev)
	}

	_, err := types.ParseSeverity("critical")
	require.Error(t, err)
	_, err = types.ParseSeverity("")
	require.Error(t, err)
}

func TestSeverityJSON(t *testing.T) {
	data, err := json.Marshal(types.SeverityHigh)
	require.NoError(t, err)
	require.Equal(t, `"HIGH"`, string(data))

	var sev types.Severity
	require.NoError(t, json.Unmarshal([]byte(`"MEDIUM"`), &sev))
	require.Equal(t, types.SeverityMedium, sev)

	require.Error(t, json.Unmarshal([]byte(`"critical"`), &sev))
}

func TestFindingJSONFieldNames(t *testing.T) {
	f := types.Finding{
		Line:     3,
		Category: types.CategorySecurity,
		Severity: types.SeverityHigh,
		Message:  "Dangerous use of eval()",
		CheckID:  "SEC001",
		Pattern:  "eval(",
		Snippet:  "eval(user_input)",
	}
	data, err := json.Marshal(f)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, float64(3), m["line"])
	require.Equal(t, "security", m["category"])
	require.Equal(t, "HIGH", m["severity"])
	require.Equal(t, "SEC001", m["check_id"])
	require.Equal(t, "eval(user_input)", m["code_snippet"])
	require.NotContains(t, m, "element")
	require.NotContains(t, m, "file_path")
}

func TestSecurityResultJSONShape(t *testing.T) {
	r := types.SecurityResult{
		Status:      types.StatusSuccess,
		IssuesFound: 0,
		Issues:      []types.Finding{},
		Safe:        true,
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"success","issues_found":0,"security_issues":[],"safe":true}`, string(data))
}

func TestStructureResultEmptySlicesMarshal(t *testing.T) {
	r := types.StructureResult{
		Status:    types.StatusSuccess,
		Functions: []types.FunctionInfo{},
		Classes:   []types.ClassInfo{},
		Imports:   []string{},
		Issues:    []types.Finding{},
	}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	// Empty collections serialize as [], never null.
	require.NotContains(t, string(data), "null")
}
