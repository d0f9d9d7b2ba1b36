package updater

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// RenderNotes converts markdown release notes into plain text suitable
// for terminal output. It walks the goldmark AST instead of stripping
// syntax with regexes: headings become their own line, list items get a
// dash bullet, and paragraphs are separated by blank lines.
func RenderNotes(source string) string {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.(type) {
		case *ast.Heading:
			sb.WriteString(extractText(n, src))
			sb.WriteString("\n")
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			sb.WriteString("  - ")
			sb.WriteString(strings.TrimSpace(extractText(n, src)))
			sb.WriteString("\n")
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			sb.WriteString(extractText(n, src))
			sb.WriteString("\n\n")
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimRight(sb.String(), "\n")
}

// extractText concatenates every text node under n.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
