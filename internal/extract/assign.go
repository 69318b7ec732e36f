package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/apibook/internal/docmodel"
)

// exportList recognizes `__all__ = ["a", "b"]` (list or tuple of string
// literals) and returns the declared names in order. Non-literal elements
// are skipped rather than failing the extraction.
func exportList(assign *sitter.Node, source []byte) ([]string, bool) {
	left := assign.ChildByFieldName("left")
	if left == nil || nodeText(left, source) != "__all__" {
		return nil, false
	}
	right := assign.ChildByFieldName("right")
	if right == nil || (right.Kind() != "list" && right.Kind() != "tuple") {
		return nil, false
	}

	names := []string{}
	for _, elt := range namedChildren(right) {
		if elt.Kind() != "string" {
			continue
		}
		names = append(names, stringLiteralValue(nodeText(elt, source)))
	}
	return names, true
}

// extractVariable turns a plain module-level assignment into a Variable,
// capturing the right-hand side as literal text.
func extractVariable(assign *sitter.Node, source []byte) docmodel.Variable {
	return docmodel.Variable{
		Name:  nodeText(assign.ChildByFieldName("left"), source),
		Value: nodeText(assign.ChildByFieldName("right"), source),
	}
}

// extractTypeAlias turns an annotated module-level assignment into a
// TypeAlias. Following the convention `Name: TypeAlias = SomeType`, the
// assigned value is the aliased type; the annotation is the fallback when
// no value is present.
func extractTypeAlias(assign *sitter.Node, source []byte) docmodel.TypeAlias {
	alias := docmodel.TypeAlias{
		Name: nodeText(assign.ChildByFieldName("left"), source),
		Type: nodeText(assign.ChildByFieldName("right"), source),
	}
	if alias.Type == "" {
		alias.Type = nodeText(assign.ChildByFieldName("type"), source)
	}
	return alias
}
