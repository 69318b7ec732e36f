package extract

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/apibook/internal/docmodel"
)

// extractFunction turns a function_definition node into a Function record.
// Parameters before the bare `*` separator are positional; the rest are
// keyword-only. Nested function definitions are not descended into.
func extractFunction(node *sitter.Node, source []byte) docmodel.Function {
	fn := docmodel.Function{
		Name: nodeText(node.ChildByFieldName("name"), source),
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		keywordOnly := false
		for _, param := range namedChildren(params) {
			switch param.Kind() {
			case "keyword_separator":
				keywordOnly = true
			case "positional_separator":
				// `/` marker; positional-only args need no special rendering
			default:
				arg, ok := extractArg(param, source)
				if !ok {
					continue
				}
				if keywordOnly {
					fn.KwOnlyArgs = append(fn.KwOnlyArgs, arg)
				} else {
					fn.Args = append(fn.Args, arg)
				}
			}
		}
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		fn.Returns = nodeText(ret, source)
	}

	fn.Docstring = docstringOf(node.ChildByFieldName("body"), source)
	return fn
}

// extractArg turns one parameter node into an Arg. Annotation and default
// expressions are captured as literal text, whatever they are.
func extractArg(node *sitter.Node, source []byte) (docmodel.Arg, bool) {
	switch node.Kind() {
	case "identifier":
		return docmodel.Arg{Name: nodeText(node, source)}, true
	case "typed_parameter":
		// the name is the first named child; only the type has a field
		arg := docmodel.Arg{Type: nodeText(node.ChildByFieldName("type"), source)}
		if children := namedChildren(node); len(children) > 0 {
			arg.Name = nodeText(children[0], source)
		}
		return arg, true
	case "default_parameter":
		return docmodel.Arg{
			Name:    nodeText(node.ChildByFieldName("name"), source),
			Default: nodeText(node.ChildByFieldName("value"), source),
		}, true
	case "typed_default_parameter":
		return docmodel.Arg{
			Name:    nodeText(node.ChildByFieldName("name"), source),
			Type:    nodeText(node.ChildByFieldName("type"), source),
			Default: nodeText(node.ChildByFieldName("value"), source),
		}, true
	case "list_splat_pattern", "dictionary_splat_pattern":
		// *args / **kwargs keep their stars in the rendered name
		return docmodel.Arg{Name: nodeText(node, source)}, true
	}
	return docmodel.Arg{}, false
}
