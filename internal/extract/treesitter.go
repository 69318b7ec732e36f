// Package extract walks tree-sitter syntax trees of Python source and
// produces docmodel records. One extractor exists per declaration kind;
// BuildModule composes them into a single pass over a module.
//
// Extraction is best-effort by design: annotations, defaults, and values
// are captured as literal source text and never evaluated, and constructs
// the extractors do not understand are stringified rather than rejected.
package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// pythonLanguage is shared by every parse; tree-sitter languages are
// immutable and safe for concurrent use.
var pythonLanguage = sitter.NewLanguage(python.Language())

// nodeText extracts the literal source text of a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// namedChildren collects the direct children of a node, skipping anonymous
// punctuation tokens.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.IsNamed() {
			out = append(out, child)
		}
	}
	return out
}

// findChildByKind finds the first direct child with the given kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// definitionOf unwraps decorated_definition nodes. Decorators are visitable
// but carry no semantics here; unknown decorators are simply ignored.
func definitionOf(node *sitter.Node) *sitter.Node {
	if node.Kind() != "decorated_definition" {
		return node
	}
	if def := node.ChildByFieldName("definition"); def != nil {
		return def
	}
	return node
}

// docstringOf returns the cleaned docstring of a module, class, or function
// body: the first statement when it is a bare string literal.
func docstringOf(body *sitter.Node, source []byte) string {
	if body == nil {
		return ""
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if !child.IsNamed() || child.Kind() == "comment" {
			continue
		}
		if child.Kind() != "expression_statement" {
			return ""
		}
		str := findChildByKind(child, "string")
		if str == nil {
			return ""
		}
		return cleanDocstring(nodeText(str, source))
	}
	return ""
}

// stringLiteralValue strips quotes and string prefixes (r, b, u, f in any
// case) from a string literal's source text.
func stringLiteralValue(text string) string {
	for len(text) > 0 && strings.ContainsRune("rRbBuUfF", rune(text[0])) {
		text = text[1:]
	}
	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, quote) && strings.HasSuffix(text, quote) && len(text) >= 2*len(quote) {
			return text[len(quote) : len(text)-len(quote)]
		}
	}
	return text
}

// cleanDocstring normalizes a docstring literal the way Python's
// ast.get_docstring does: strip the quotes, trim the uniform leading
// indentation of continuation lines, and drop surrounding blank lines.
func cleanDocstring(literal string) string {
	value := stringLiteralValue(literal)
	lines := strings.Split(value, "\n")
	if len(lines) == 1 {
		return strings.TrimSpace(value)
	}

	// Uniform indent is computed from every line after the first.
	indent := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		lineIndent := len(line) - len(trimmed)
		if indent < 0 || lineIndent < indent {
			indent = lineIndent
		}
	}

	out := []string{strings.TrimSpace(lines[0])}
	for _, line := range lines[1:] {
		if indent > 0 && len(line) >= indent {
			line = line[indent:]
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}

	result := strings.Join(out, "\n")
	return strings.Trim(result, "\n")
}
