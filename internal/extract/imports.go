package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/apibook/internal/docmodel"
)

// extractNakedImports turns `import a.b, c` into one NakedImport per named
// module.
func extractNakedImports(node *sitter.Node, source []byte) []docmodel.Import {
	var out []docmodel.Import
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "dotted_name":
			out = append(out, docmodel.NakedImport{Module: nodeText(child, source)})
		case "aliased_import":
			// `import a.b as ab`: the dotted path is still the module
			out = append(out, docmodel.NakedImport{Module: nodeText(child.ChildByFieldName("name"), source)})
		}
	}
	return out
}

// extractFromImport turns `from ..m import a, b as c` into a FromImport.
// Relative is the count of leading dots; Names holds the locally visible
// names, so an alias replaces the imported name.
func extractFromImport(node *sitter.Node, source []byte) docmodel.FromImport {
	imp := docmodel.FromImport{}

	// future_import_statement spells __future__ as a bare keyword, so no
	// module_name field exists
	if node.Kind() == "future_import_statement" {
		imp.Module = "__future__"
	}

	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode != nil {
		switch moduleNode.Kind() {
		case "dotted_name":
			imp.Module = nodeText(moduleNode, source)
		case "relative_import":
			if prefix := findChildByKind(moduleNode, "import_prefix"); prefix != nil {
				imp.Relative = strings.Count(nodeText(prefix, source), ".")
			}
			if dotted := findChildByKind(moduleNode, "dotted_name"); dotted != nil {
				imp.Module = nodeText(dotted, source)
			}
		}
	}

	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "dotted_name":
			// skip the module path itself
			if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
				continue
			}
			imp.Names = append(imp.Names, nodeText(child, source))
		case "aliased_import":
			imp.Names = append(imp.Names, nodeText(child.ChildByFieldName("alias"), source))
		case "wildcard_import":
			imp.Names = append(imp.Names, "*")
		}
	}
	return imp
}
