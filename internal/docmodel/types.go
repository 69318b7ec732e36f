// Package docmodel defines the declaration records extracted from a Python
// module: the module itself, its classes, functions, fields, variables,
// type aliases, and imports. Records are plain data: type annotations,
// default values, and variable values are carried as literal source text
// and are never evaluated.
package docmodel

// Arg is a single positional or keyword-only parameter of a function.
type Arg struct {
	Name string
	// Type is the literal annotation text ("int", "dict[str, Foo]"), empty
	// when the parameter is unannotated.
	Type string
	// Default is the literal default-value expression, empty when absent.
	Default string
}

// Function is a module-level function or a class method. Methods carry
// keyword-only parameters separately so the renderer can place them after
// the bare `*` marker.
type Function struct {
	Name       string
	Args       []Arg
	KwOnlyArgs []Arg
	// Returns is the literal return annotation text, empty when absent.
	Returns   string
	Docstring string
}

// ClassField is an annotated assignment in a class body.
type ClassField struct {
	Name    string
	Type    string
	Default string
}

// Class is a class definition. Bases are kept as literal expression text;
// no inheritance semantics are attached to them.
type Class struct {
	Name      string
	Bases     []string
	Methods   []Function
	Fields    []ClassField
	Docstring string
}

// Variable is a plain module-level assignment without an annotation.
type Variable struct {
	Name  string
	Value string
}

// TypeAlias is an annotated module-level assignment, e.g.
// `Handler: TypeAlias = Callable[[int], None]`.
type TypeAlias struct {
	Name string
	Type string
}

// NakedImport is `import a.b.c`.
type NakedImport struct {
	Module string
}

// FromImport is `from ..a.b import x, y as z`. Names holds the locally
// visible names (the alias when one is given). Relative counts the leading
// dots: 0 for an absolute import, N for N levels up from the importing
// module's package.
type FromImport struct {
	Module   string
	Names    []string
	Relative int
}

// Import is either a NakedImport or a FromImport.
type Import interface {
	importDecl()
}

func (NakedImport) importDecl() {}
func (FromImport) importDecl()  {}

// Module is the complete extracted surface of one source file. AllExports
// holds the names from an `__all__` assignment in declaration order; empty
// means no explicit export surface was declared.
type Module struct {
	Name       string
	Docstring  string
	Classes    []Class
	Functions  []Function
	Variables  []Variable
	Aliases    []TypeAlias
	Imports    []Import
	AllExports []string
}

// ArgDoc is documentation for one parameter, parsed out of a docstring.
type ArgDoc struct {
	Type        string
	Default     string
	Description string
}

// Signature is a transient composite used while rendering: parameter and
// return documentation parsed out of a docstring, attached to a function
// without mutating the function record.
type Signature struct {
	Args      map[string]ArgDoc
	Returns   []string
	Docstring string
}
