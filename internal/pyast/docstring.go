package pyast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// docstring returns the cleaned docstring of a definition body: a string
// literal appearing as the first statement. The boolean reports presence,
// which is distinct from a present-but-empty docstring.
func docstring(body *sitter.Node, src []byte) (string, bool) {
	if body == nil || body.NamedChildCount() == 0 {
		return "", false
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return "", false
	}
	lit := first.NamedChild(0)
	switch lit.Type() {
	case "string":
		return cleanDoc(stripQuotes(lit.Content(src))), true
	case "concatenated_string":
		var parts []string
		for i := 0; i < int(lit.NamedChildCount()); i++ {
			piece := lit.NamedChild(i)
			if piece.Type() == "string" {
				parts = append(parts, stripQuotes(piece.Content(src)))
			}
		}
		return cleanDoc(strings.Join(parts, "")), true
	}
	return "", false
}

// stripQuotes removes a string literal's prefix letters and quote delimiters.
func stripQuotes(s string) string {
	for len(s) > 0 {
		switch s[0] {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
			s = s[1:]
			continue
		}
		break
	}
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(s, q) {
			s = strings.TrimPrefix(s, q)
			s = strings.TrimSuffix(s, q)
			return s
		}
	}
	return s
}

// cleanDoc normalizes a docstring the way documentation tools do: the first
// line is stripped, the common leading whitespace of the remaining lines is
// removed, and leading and trailing blank lines are dropped.
func cleanDoc(s string) string {
	lines := strings.Split(s, "\n")

	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	cleaned := make([]string, 0, len(lines))
	cleaned = append(cleaned, strings.TrimLeft(lines[0], " \t"))
	for _, line := range lines[1:] {
		if margin > 0 && len(line) >= margin {
			line = line[margin:]
		}
		cleaned = append(cleaned, strings.TrimRight(line, " \t"))
	}

	for len(cleaned) > 0 && cleaned[0] == "" {
		cleaned = cleaned[1:]
	}
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.Join(cleaned, "\n")
}
