package review

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// codeBlock is a fenced python block extracted from a Markdown document.
type codeBlock struct {
	content   []byte
	startLine int // 1-based line of the first content line in the host file
}

// expandMarkdown returns one snippet target per fenced python code block in
// a Markdown target. Blocks with other (or no) language tags are skipped.
func expandMarkdown(t *Target) []*Target {
	var targets []*Target
	for _, block := range pythonBlocks(t.Content) {
		targets = append(targets, &Target{
			Path:       t.Path,
			RelPath:    t.RelPath,
			Content:    block.content,
			LineOffset: block.startLine - 1,
		})
	}
	return targets
}

func pythonBlocks(source []byte) []codeBlock {
	md := goldmark.New()
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader)

	var blocks []codeBlock
	collectBlocks(doc, source, &blocks)
	return blocks
}

func collectBlocks(n ast.Node, source []byte, blocks *[]codeBlock) {
	if fenced, ok := n.(*ast.FencedCodeBlock); ok {
		if isPythonLang(fenced, source) && fenced.Lines().Len() > 0 {
			var buf bytes.Buffer
			lines := fenced.Lines()
			for i := range lines.Len() {
				seg := lines.At(i)
				buf.Write(seg.Value(source))
			}
			*blocks = append(*blocks, codeBlock{
				content:   buf.Bytes(),
				startLine: lineAtOffset(source, lines.At(0).Start),
			})
		}
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		collectBlocks(child, source, blocks)
	}
}

func isPythonLang(n *ast.FencedCodeBlock, source []byte) bool {
	lang := n.Language(source)
	if lang == nil {
		return false
	}
	switch strings.ToLower(string(lang)) {
	case "python", "python3", "py":
		return true
	}
	return false
}

// lineAtOffset converts a byte offset to a 1-based line number.
func lineAtOffset(source []byte, offset int) int {
	line := 1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
		}
	}
	return line
}
