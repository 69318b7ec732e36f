package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/apibook/internal/docmodel"
)

// extractClass turns a class_definition node into a Class record: base
// expressions as literal text, methods via the function extractor, fields
// via the annotated-assignment extractor, plus the class docstring.
func extractClass(node *sitter.Node, source []byte) docmodel.Class {
	cls := docmodel.Class{
		Name: nodeText(node.ChildByFieldName("name"), source),
	}

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for _, base := range namedChildren(supers) {
			cls.Bases = append(cls.Bases, nodeText(base, source))
		}
	}

	body := node.ChildByFieldName("body")
	cls.Docstring = docstringOf(body, source)
	if body == nil {
		return cls
	}

	for _, stmt := range namedChildren(body) {
		stmt = definitionOf(stmt)
		switch stmt.Kind() {
		case "function_definition":
			cls.Methods = append(cls.Methods, extractFunction(stmt, source))
		case "expression_statement":
			assign := findChildByKind(stmt, "assignment")
			if assign == nil {
				continue
			}
			if field, ok := extractClassField(assign, source); ok {
				cls.Fields = append(cls.Fields, field)
			}
		}
	}
	return cls
}

// extractClassField turns an annotated assignment in a class body into a
// ClassField. Unannotated class-body assignments are not fields.
func extractClassField(assign *sitter.Node, source []byte) (docmodel.ClassField, bool) {
	typeNode := assign.ChildByFieldName("type")
	if typeNode == nil {
		return docmodel.ClassField{}, false
	}
	return docmodel.ClassField{
		Name:    nodeText(assign.ChildByFieldName("left"), source),
		Type:    nodeText(typeNode, source),
		Default: nodeText(assign.ChildByFieldName("right"), source),
	}, true
}
