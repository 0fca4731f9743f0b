// Package structure implements the structure analyzer: it parses a code unit
// into a syntax tree, records every function, class, and import declaration,
// and flags over-complex signatures and missing docstrings.
package structure

import (
	"fmt"
	"strings"

	"github.com/pyvet/pyvet/internal/pyast"
	"github.com/pyvet/pyvet/internal/types"
)

const maxParams = 5

// Analyze inspects the structure of Python code. It never panics or returns
// a Go error; malformed input and unexpected failures produce a result with
// status "error".
func Analyze(code string) (result *types.StructureResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &types.StructureResult{
				Status:       types.StatusError,
				ErrorMessage: fmt.Sprintf("Error analyzing code: %v", r),
			}
		}
	}()

	module, err := pyast.Parse(code)
	if err != nil {
		return &types.StructureResult{
			Status:       types.StatusError,
			ErrorMessage: fmt.Sprintf("Syntax error in code: %s", err),
		}
	}

	result = &types.StructureResult{
		Status:      types.StatusSuccess,
		Functions:   []types.FunctionInfo{},
		Classes:     []types.ClassInfo{},
		Imports:     []string{},
		LinesOfCode: len(strings.Split(code, "\n")),
		Issues:      []types.Finding{},
	}

	for _, decl := range module.Decls {
		switch decl.Kind {
		case pyast.KindFunction:
			result.Functions = append(result.Functions, types.FunctionInfo{
				Name:         decl.Name,
				Args:         decl.Params,
				Line:         decl.Line,
				HasDocstring: decl.HasDocstring,
			})
			if !decl.HasDocstring {
				result.Issues = append(result.Issues, types.Finding{
					Line:     decl.Line,
					Category: types.CategoryStructure,
					Severity: types.SeverityHigh,
					CheckID:  "STR001",
					Message:  fmt.Sprintf("Function '%s' at line %d missing docstring", decl.Name, decl.Line),
				})
			}
			if decl.Params > maxParams {
				result.Issues = append(result.Issues, types.Finding{
					Line:     decl.Line,
					Category: types.CategoryStructure,
					Severity: types.SeverityMedium,
					CheckID:  "STR002",
					Message:  fmt.Sprintf("Function '%s' has %d parameters (>%d suggests complexity)", decl.Name, decl.Params, maxParams),
				})
			}

		case pyast.KindClass:
			result.Classes = append(result.Classes, types.ClassInfo{
				Name:         decl.Name,
				Line:         decl.Line,
				Methods:      decl.Methods,
				HasDocstring: decl.HasDocstring,
			})
			if !decl.HasDocstring {
				result.Issues = append(result.Issues, types.Finding{
					Line:     decl.Line,
					Category: types.CategoryStructure,
					Severity: types.SeverityHigh,
					CheckID:  "STR003",
					Message:  fmt.Sprintf("Class '%s' at line %d missing docstring", decl.Name, decl.Line),
				})
			}

		case pyast.KindImport:
			result.Imports = append(result.Imports, decl.Name)
		}
	}

	result.IssuesFound = len(result.Issues)
	return result
}
