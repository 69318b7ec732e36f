package extract

import (
	"errors"
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/apibook/internal/docmodel"
)

// ErrParse reports a source file the parser could not make sense of. The
// caller skips the file and keeps going; a parse failure is fatal only for
// its own module.
var ErrParse = errors.New("parse error")

// BuildModule parses Python source and assembles the complete Module
// record for it: docstring, declarations, imports, and the __all__ export
// surface. moduleName is the dotted path the module is known by.
func BuildModule(source []byte, moduleName string) (*docmodel.Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(pythonLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, moduleName)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: %s: invalid syntax", ErrParse, moduleName)
	}

	module := &docmodel.Module{
		Name:      moduleName,
		Docstring: docstringOf(root, source),
	}

	for _, stmt := range namedChildren(root) {
		stmt = definitionOf(stmt)
		switch stmt.Kind() {
		case "function_definition":
			module.Functions = append(module.Functions, extractFunction(stmt, source))
		case "class_definition":
			module.Classes = append(module.Classes, extractClass(stmt, source))
		case "import_statement":
			module.Imports = append(module.Imports, extractNakedImports(stmt, source)...)
		case "import_from_statement", "future_import_statement":
			module.Imports = append(module.Imports, extractFromImport(stmt, source))
		case "expression_statement":
			assign := findChildByKind(stmt, "assignment")
			if assign == nil {
				// bare expressions (including the already-captured module
				// docstring) carry no declarations
				continue
			}
			switch {
			case assign.ChildByFieldName("type") != nil:
				module.Aliases = append(module.Aliases, extractTypeAlias(assign, source))
			default:
				if names, ok := exportList(assign, source); ok {
					module.AllExports = names
					continue
				}
				module.Variables = append(module.Variables, extractVariable(assign, source))
			}
		}
	}

	return module, nil
}

// BuildModuleFromFile reads and builds one source file.
func BuildModuleFromFile(path, moduleName string) (*docmodel.Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return BuildModule(source, moduleName)
}
