// Package docs implements the documentation auditor: a full tree walk over
// function and class declarations validating docstring presence, minimum
// length, and whether parameters and return values are documented.
package docs

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pyvet/pyvet/internal/pyast"
	"github.com/pyvet/pyvet/internal/types"
)

const minDocstringLen = 20

// Audit reviews the documentation quality of Python code. Malformed input
// and unexpected failures produce a result with status "error"; no error
// ever propagates to the caller.
func Audit(code string) (result *types.DocumentationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &types.DocumentationResult{
				Status:       types.StatusError,
				ErrorMessage: fmt.Sprintf("%v", r),
			}
		}
	}()

	module, err := pyast.Parse(code)
	if err != nil {
		return &types.DocumentationResult{
			Status:       types.StatusError,
			ErrorMessage: err.Error(),
		}
	}

	findings := []types.Finding{}
	for _, decl := range module.Decls {
		if decl.Kind != pyast.KindFunction && decl.Kind != pyast.KindClass {
			continue
		}
		findings = append(findings, auditDecl(decl)...)
	}

	return &types.DocumentationResult{
		Status:         types.StatusSuccess,
		IssuesFound:    len(findings),
		Issues:         findings,
		WellDocumented: len(findings) == 0,
	}
}

// auditDecl applies the docstring checks to one declaration. Missing and
// too-brief are mutually exclusive terminal states; the parameter and return
// checks are independent of each other and apply only to functions whose
// docstring passed the first two.
func auditDecl(decl pyast.Decl) []types.Finding {
	finding := func(id string, sev types.Severity, msg string) types.Finding {
		return types.Finding{
			Line:        decl.Line,
			Category:    types.CategoryDocumentation,
			Severity:    sev,
			CheckID:     id,
			Message:     msg,
			Element:     decl.Name,
			ElementType: decl.Kind.String(),
		}
	}

	if !decl.HasDocstring {
		return []types.Finding{finding("DOC001", types.SeverityHigh, "Missing docstring")}
	}
	if utf8.RuneCountInString(decl.Docstring) < minDocstringLen {
		return []types.Finding{finding("DOC002", types.SeverityMedium, fmt.Sprintf("Docstring too brief (< %d chars)", minDocstringLen))}
	}
	if decl.Kind != pyast.KindFunction {
		return nil
	}

	var findings []types.Finding
	if decl.Params > 0 && !containsAny(decl.Docstring, "Args:", "Parameters:") {
		findings = append(findings, finding("DOC003", types.SeverityMedium, "Docstring doesn't document parameters"))
	}
	if decl.ReturnsValue && !containsAny(decl.Docstring, "Returns:", "Return:") {
		findings = append(findings, finding("DOC004", types.SeverityLow, "Docstring doesn't document return value"))
	}
	return findings
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
