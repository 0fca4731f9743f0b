package checks

import (
	"fmt"
	"strings"

	"github.com/pyvet/pyvet/internal/types"
)

// Compile converts a Raw check into a Compiled one ready for execution.
func Compile(raw Raw) (*Compiled, error) {
	if raw.ID == "" {
		return nil, fmt.Errorf("check missing ID")
	}
	if raw.Pattern == "" {
		return nil, fmt.Errorf("check %s: no pattern defined", raw.ID)
	}

	sev, err := types.ParseSeverity(raw.Severity)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", raw.ID, err)
	}

	var cat types.Category
	switch strings.ToLower(raw.Category) {
	case "security":
		cat = types.CategorySecurity
	case "performance":
		cat = types.CategoryPerformance
	default:
		return nil, fmt.Errorf("check %s: unknown category %q", raw.ID, raw.Category)
	}

	if raw.LoopOnly && cat != types.CategoryPerformance {
		return nil, fmt.Errorf("check %s: loop_only is only valid for performance checks", raw.ID)
	}

	return &Compiled{
		ID:       raw.ID,
		Name:     raw.Name,
		Category: cat,
		Severity: sev,
		Pattern:  raw.Pattern,
		Lowered:  strings.ToLower(raw.Pattern),
		Message:  raw.Message,
		LoopOnly: raw.LoopOnly,
		Examples: raw.Examples,
	}, nil
}

// CompileAll compiles a slice of raw checks, returning compiled checks and
// any per-check errors. Order is preserved.
func CompileAll(raws []Raw) ([]*Compiled, []error) {
	var compiled []*Compiled
	var errs []error
	for _, raw := range raws {
		c, err := Compile(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		compiled = append(compiled, c)
	}
	return compiled, errs
}

// Override allows a per-check severity change or disable from config.
type Override struct {
	Severity string
	Disabled bool
}

// ApplyOverrides applies config-based overrides to compiled checks. Disabled
// checks are removed. Invalid severity values produce an error but keep the
// original check.
func ApplyOverrides(compiled []*Compiled, overrides map[string]Override) ([]*Compiled, []error) {
	var result []*Compiled
	var errs []error
	for _, c := range compiled {
		ovr, ok := overrides[c.ID]
		if !ok {
			result = append(result, c)
			continue
		}
		if ovr.Disabled {
			continue
		}
		if ovr.Severity != "" {
			sev, err := types.ParseSeverity(ovr.Severity)
			if err != nil {
				errs = append(errs, fmt.Errorf("check %s override: %w", c.ID, err))
				result = append(result, c)
				continue
			}
			// Copy before mutating: the built-in table is shared.
			clone := *c
			clone.Severity = sev
			c = &clone
		}
		result = append(result, c)
	}
	return result, errs
}

// FilterByIDs removes checks whose IDs are in the disabled set.
func FilterByIDs(compiled []*Compiled, disabled map[string]bool) []*Compiled {
	var result []*Compiled
	for _, c := range compiled {
		if !disabled[c.ID] {
			result = append(result, c)
		}
	}
	return result
}

// ByCategory returns the checks of one category, preserving table order.
func ByCategory(compiled []*Compiled, cat types.Category) []*Compiled {
	var result []*Compiled
	for _, c := range compiled {
		if c.Category == cat {
			result = append(result, c)
		}
	}
	return result
}
