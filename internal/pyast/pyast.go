// Package pyast parses Python source with Tree-sitter and flattens the
// declarations (functions, classes, imports) into positioned records for the
// tree-based analyzers. Each Parse call owns its tree and releases it before
// returning, so callers never touch Tree-sitter state.
package pyast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Kind discriminates the declaration records produced by Parse.
type Kind int

const (
	KindFunction Kind = iota
	KindClass
	KindImport
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "Function"
	case KindClass:
		return "Class"
	case KindImport:
		return "Import"
	default:
		return "Unknown"
	}
}

// Decl is one declaration encountered during a full depth-first walk.
// For imports, Name holds the imported module path.
type Decl struct {
	Kind         Kind
	Name         string
	Line         int // 1-based
	Params       int // functions: positional parameter count
	Methods      int // classes: directly contained function definitions
	Docstring    string
	HasDocstring bool
	ReturnsValue bool // functions: any return-with-value in the body
}

// Module is the flattened result of parsing one source unit. Decls are in
// depth-first encounter order; nested declarations appear after the
// declaration that contains them.
type Module struct {
	Decls []Decl
}

// Functions returns the function declarations in walk order.
func (m *Module) Functions() []Decl {
	return m.byKind(KindFunction)
}

// Classes returns the class declarations in walk order.
func (m *Module) Classes() []Decl {
	return m.byKind(KindClass)
}

// Imports returns the imported module paths in walk order.
func (m *Module) Imports() []string {
	var names []string
	for _, d := range m.Decls {
		if d.Kind == KindImport {
			names = append(names, d.Name)
		}
	}
	return names
}

func (m *Module) byKind(k Kind) []Decl {
	var decls []Decl
	for _, d := range m.Decls {
		if d.Kind == k {
			decls = append(decls, d)
		}
	}
	return decls
}

// Parse parses code as Python source. A fresh parser is created per call so
// concurrent callers never share Tree-sitter state. Returns an error carrying
// the position of the first syntax error when the input is malformed.
func Parse(code string) (*Module, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	src := []byte(code)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstErrorNode(root); bad != nil {
			pt := bad.StartPoint()
			return nil, fmt.Errorf("invalid syntax at line %d, column %d", pt.Row+1, pt.Column+1)
		}
		return nil, fmt.Errorf("invalid syntax")
	}

	m := &Module{}
	walk(root, src, m)
	return m, nil
}

// firstErrorNode returns the first ERROR or missing node in document order.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstErrorNode(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

// walk visits every named node depth-first, collecting declaration records.
// Function and class bodies are descended into so nested declarations are
// recorded after their parents.
func walk(node *sitter.Node, src []byte, m *Module) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "function_definition":
			m.Decls = append(m.Decls, functionDecl(child, src))
			walkBody(child, src, m)

		case "class_definition":
			m.Decls = append(m.Decls, classDecl(child, src))
			walkBody(child, src, m)

		case "decorated_definition":
			inner := child.ChildByFieldName("definition")
			if inner == nil {
				continue
			}
			switch inner.Type() {
			case "function_definition":
				m.Decls = append(m.Decls, functionDecl(inner, src))
			case "class_definition":
				m.Decls = append(m.Decls, classDecl(inner, src))
			default:
				continue
			}
			walkBody(inner, src, m)

		case "import_statement":
			m.Decls = append(m.Decls, importDecls(child, src)...)

		case "import_from_statement", "future_import_statement":
			m.Decls = append(m.Decls, importFromDecl(child, src))

		default:
			walk(child, src, m)
		}
	}
}

func walkBody(def *sitter.Node, src []byte, m *Module) {
	if body := def.ChildByFieldName("body"); body != nil {
		walk(body, src, m)
	}
}

func functionDecl(node *sitter.Node, src []byte) Decl {
	d := Decl{
		Kind: KindFunction,
		Line: int(node.StartPoint().Row) + 1,
	}
	if name := node.ChildByFieldName("name"); name != nil {
		d.Name = name.Content(src)
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		d.Params = countParams(params)
	}
	body := node.ChildByFieldName("body")
	d.Docstring, d.HasDocstring = docstring(body, src)
	d.ReturnsValue = body != nil && hasValueReturn(body)
	return d
}

func classDecl(node *sitter.Node, src []byte) Decl {
	d := Decl{
		Kind: KindClass,
		Line: int(node.StartPoint().Row) + 1,
	}
	if name := node.ChildByFieldName("name"); name != nil {
		d.Name = name.Content(src)
	}
	body := node.ChildByFieldName("body")
	d.Docstring, d.HasDocstring = docstring(body, src)
	d.Methods = countMethods(body)
	return d
}

// countParams counts positional parameters the way a reader of the signature
// would: plain, typed, and defaulted names, stopping at *args or the bare *
// separator (keyword-only parameters and **kwargs are excluded).
func countParams(params *sitter.Node) int {
	count := 0
	for i := 0; i < int(params.NamedChildCount()); i++ {
		switch params.NamedChild(i).Type() {
		case "identifier", "typed_parameter", "default_parameter", "typed_default_parameter":
			count++
		case "positional_separator":
			// "/": preceding parameters already counted
		case "list_splat_pattern", "keyword_separator", "dictionary_splat_pattern":
			return count
		}
	}
	return count
}

// countMethods counts function definitions directly contained in a class body,
// including decorated ones.
func countMethods(body *sitter.Node) int {
	if body == nil {
		return 0
	}
	count := 0
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "function_definition":
			count++
		case "decorated_definition":
			if inner := child.ChildByFieldName("definition"); inner != nil && inner.Type() == "function_definition" {
				count++
			}
		}
	}
	return count
}

// hasValueReturn reports whether any return statement in the subtree carries
// a value. Returns in nested definitions count, matching a full-subtree walk.
func hasValueReturn(node *sitter.Node) bool {
	if node.Type() == "return_statement" && node.NamedChildCount() > 0 {
		return true
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if hasValueReturn(node.NamedChild(i)) {
			return true
		}
	}
	return false
}

func importDecls(node *sitter.Node, src []byte) []Decl {
	line := int(node.StartPoint().Row) + 1
	var decls []Decl
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			decls = append(decls, Decl{Kind: KindImport, Name: child.Content(src), Line: line})
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				decls = append(decls, Decl{Kind: KindImport, Name: name.Content(src), Line: line})
			}
		}
	}
	return decls
}

// importFromDecl records the module of a "from X import ..." statement; the
// imported names are not recorded. Future imports report "__future__".
// Relative imports keep their dot prefix, so "from . import x" records "."
// rather than an empty module name.
func importFromDecl(node *sitter.Node, src []byte) Decl {
	d := Decl{Kind: KindImport, Line: int(node.StartPoint().Row) + 1}
	if node.Type() == "future_import_statement" {
		d.Name = "__future__"
		return d
	}
	if mod := node.ChildByFieldName("module_name"); mod != nil {
		d.Name = mod.Content(src)
	}
	return d
}
