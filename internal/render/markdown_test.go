package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/apibook/internal/docmodel"
	"github.com/mvp-joe/apibook/internal/resolve"
)

// Test Plan for Module rendering:
// - Package initializers render a package header, other modules a module header
// - Sections appear in fixed order: Classes, Functions, Variables,
//   Type Aliases, Imports
// - Empty sections are omitted entirely
// - The self receiver is dropped from method signatures
// - Keyword-only arguments render after a bare *
// - Signatures over the column budget wrap one argument per line
// - Docstring parameter docs merge into the Arguments list
// - Class docstring Args attach to __init__
// - Underscore-named variables and aliases are hidden, re-exports included
// - Re-exported declarations render inline with their origin
// - Unresolved exports render as a visible gap
// - Rendering is deterministic

func sampleView() *resolve.View {
	return &resolve.View{
		Module: &docmodel.Module{
			Name:      "pkg.shapes",
			Docstring: "Tools for shaping widgets.",
			Classes: []docmodel.Class{
				{
					Name:      "Foo",
					Bases:     []string{"Base"},
					Docstring: "A foo.\n\nArgs:\n    x (int): seed value",
					Fields: []docmodel.ClassField{
						{Name: "count", Type: "int", Default: "0"},
					},
					Methods: []docmodel.Function{
						{
							Name: "__init__",
							Args: []docmodel.Arg{
								{Name: "self"},
								{Name: "x", Type: "int", Default: "3"},
							},
						},
						{
							Name:      "bar",
							Args:      []docmodel.Arg{{Name: "self"}, {Name: "x", Type: "int", Default: "3"}},
							Returns:   "str",
							Docstring: "Stringify x.\n\nArgs:\n    x: the value\n\nReturns:\n    the rendered value",
						},
					},
				},
			},
			Functions: []docmodel.Function{
				{
					Name:       "polish",
					Args:       []docmodel.Arg{{Name: "w"}},
					KwOnlyArgs: []docmodel.Arg{{Name: "force", Default: "False"}},
					Returns:    "bool",
					Docstring:  "Polish a widget.",
				},
			},
			Variables: []docmodel.Variable{{Name: "DEFAULT_SIZE", Value: "4"}},
			Aliases:   []docmodel.TypeAlias{{Name: "Handler", Type: "Callable[[Widget], None]"}},
			Imports: []docmodel.Import{
				docmodel.NakedImport{Module: "os.path"},
				docmodel.FromImport{Module: "core", Names: []string{"Widget"}, Relative: 1},
			},
		},
	}
}

func TestModule_SectionOrder(t *testing.T) {
	t.Parallel()

	out := Module(sampleView())

	assert.True(t, strings.HasPrefix(out, "# module `pkg.shapes`\n\n"))
	assert.Contains(t, out, "Tools for shaping widgets.")

	order := []string{"## Classes", "## Functions", "## Variables", "## Type Aliases", "## Imports"}
	last := -1
	for _, heading := range order {
		idx := strings.Index(out, heading)
		require.GreaterOrEqual(t, idx, 0, heading)
		assert.Greater(t, idx, last, heading)
		last = idx
	}
}

func TestModule_PackageHeader(t *testing.T) {
	t.Parallel()

	view := &resolve.View{Module: &docmodel.Module{Name: "pkg.__init__"}}
	out := Module(view)
	assert.True(t, strings.HasPrefix(out, "# package `pkg`\n\n"))

	// Test: sections with no content do not appear
	assert.NotContains(t, out, "## Classes")
	assert.NotContains(t, out, "## Imports")
}

func TestModule_ClassRendering(t *testing.T) {
	t.Parallel()

	out := Module(sampleView())

	assert.Contains(t, out, "### `class Foo(Base):`")
	assert.Contains(t, out, "A foo.")
	assert.Contains(t, out, "#### Fields")
	assert.Contains(t, out, "- `count`: `int` = `0`")
	assert.Contains(t, out, "#### Methods")

	// Test: self is dropped from method signatures
	assert.Contains(t, out, "```python\nbar(x: int = 3) -> str\n```")
	assert.NotContains(t, out, "bar(self")

	// Test: class docstring Args attach to __init__
	assert.Contains(t, out, "```python\n__init__(x: int = 3)\n```")
	assert.Contains(t, out, "- `x (int)`: seed value (_default: 3_)")
}

func TestModule_FunctionRendering(t *testing.T) {
	t.Parallel()

	out := Module(sampleView())

	assert.Contains(t, out, "```python\npolish(w, *, force=False) -> bool\n```")
	assert.Contains(t, out, "Polish a widget.")

	// Test: docstring arg docs merge into the Arguments list
	assert.Contains(t, out, "**Arguments**:")
	assert.Contains(t, out, "- `x (int)`: the value (_default: 3_)")

	assert.Contains(t, out, "**Returns**:\n- the rendered value")
}

func TestModule_VariablesAliasesImports(t *testing.T) {
	t.Parallel()

	out := Module(sampleView())

	assert.Contains(t, out, "- `DEFAULT_SIZE` = `4`")
	assert.Contains(t, out, "- `type Handler`: `Callable[[Widget], None]`")
	assert.Contains(t, out, "- `import os.path`")
	assert.Contains(t, out, "- `from .core import Widget`")
}

func TestModule_HidesUnderscoreVariablesAndAliases(t *testing.T) {
	t.Parallel()

	view := &resolve.View{
		Module: &docmodel.Module{
			Name:      "pkg.registry",
			Variables: []docmodel.Variable{{Name: "_VISIBLE_FUNCTIONS", Value: "[]"}},
			Aliases:   []docmodel.TypeAlias{{Name: "_Hidden", Type: "int"}},
		},
		Reexports: []resolve.Reexport{
			{Origin: "pkg.core", Decl: &docmodel.Variable{Name: "_CACHE", Value: "{}"}},
			{Origin: "pkg.core", Decl: &docmodel.TypeAlias{Name: "_Key", Type: "str"}},
		},
	}

	out := Module(view)

	assert.NotContains(t, out, "_VISIBLE_FUNCTIONS")
	assert.NotContains(t, out, "_Hidden")
	assert.NotContains(t, out, "_CACHE")
	assert.NotContains(t, out, "_Key")

	// Test: sections holding only hidden names are omitted entirely
	assert.NotContains(t, out, "## Variables")
	assert.NotContains(t, out, "## Type Aliases")
}

func TestModule_Reexports(t *testing.T) {
	t.Parallel()

	view := &resolve.View{
		Module: &docmodel.Module{Name: "pkg.__init__"},
		Reexports: []resolve.Reexport{
			{Origin: "pkg.core", Decl: &docmodel.Class{Name: "Widget", Docstring: "A widget."}},
			{Origin: "pkg.core", Decl: &docmodel.Function{Name: "polish"}},
			{Origin: "pkg.core", Decl: &docmodel.Variable{Name: "SIZE", Value: "4"}},
		},
		Unresolved: []string{"Ghost"},
	}

	out := Module(view)

	assert.Contains(t, out, "### `class Widget:`")
	assert.Contains(t, out, "_Re-exported from `pkg.core`._")
	assert.Contains(t, out, "```python\npolish()\n```")
	assert.Contains(t, out, "- `SIZE` = `4` — from `pkg.core`")

	assert.Contains(t, out, "## Exports")
	assert.Contains(t, out, "- `Ghost` _(unresolved)_")
}

func TestFormatSignature_Wrapping(t *testing.T) {
	t.Parallel()

	fn := &docmodel.Function{
		Name: "configure",
		Args: []docmodel.Arg{
			{Name: "host", Type: "str", Default: `"localhost"`},
			{Name: "port", Type: "int", Default: "8080"},
			{Name: "timeout_seconds", Type: "float", Default: "30.0"},
			{Name: "retries", Type: "int", Default: "3"},
		},
		Returns: "Config",
	}

	got := formatSignature(fn, false)
	assert.Contains(t, got, "configure(\n    host: str = \"localhost\",\n")
	assert.True(t, strings.HasSuffix(got, ",\n) -> Config"))

	short := &docmodel.Function{Name: "ping", Args: []docmodel.Arg{{Name: "host"}}}
	assert.Equal(t, "ping(host)", formatSignature(short, false))
}

func TestModule_Deterministic(t *testing.T) {
	t.Parallel()

	view := sampleView()
	first := Module(view)
	second := Module(view)
	assert.Equal(t, first, second)
}
