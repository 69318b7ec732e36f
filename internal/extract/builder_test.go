package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/apibook/internal/docmodel"
)

// Test Plan for BuildModule:
// - Extract the module docstring
// - Extract classes with bases, fields, methods, and docstrings
// - Extract method parameters with annotations and defaults
// - Separate keyword-only parameters after the bare * marker
// - Extract standalone functions with return annotations
// - Extract naked imports, from-imports, relative imports, and aliases
// - Handle __future__ imports without a module_name field
// - Capture the __all__ export surface in declaration order
// - Extract plain variables and annotated type aliases
// - Unwrap decorated definitions
// - Reject unparseable source with ErrParse
// - Handle empty files without errors

const sampleSource = `"""Tools for shaping widgets."""

from __future__ import annotations

import os.path
import numpy as np
from ..util import helper as h
from .core import Widget

__all__ = ["Widget", "polish"]

DEFAULT_SIZE = 4

Handler: TypeAlias = Callable[[Widget], None]


class Foo(Base):
    """A foo.

    Args:
        x (int): seed value
    """

    count: int = 0
    _secret: str = ""

    def bar(self, x: int = 3) -> str:
        """Stringify x.

        Args:
            x: the value

        Returns:
            the rendered value
        """
        return str(x)


@lru_cache
def polish(w, *, force=False) -> bool:
    """Polish a widget."""
    return True
`

func buildSample(t *testing.T) *docmodel.Module {
	t.Helper()
	module, err := BuildModule([]byte(sampleSource), "pkg.shapes")
	require.NoError(t, err)
	require.NotNil(t, module)
	return module
}

func TestBuildModule_Docstring(t *testing.T) {
	t.Parallel()

	module := buildSample(t)
	assert.Equal(t, "pkg.shapes", module.Name)
	assert.Equal(t, "Tools for shaping widgets.", module.Docstring)
}

func TestBuildModule_Imports(t *testing.T) {
	t.Parallel()

	module := buildSample(t)
	require.Len(t, module.Imports, 5)

	assert.Equal(t, docmodel.FromImport{Module: "__future__", Names: []string{"annotations"}}, module.Imports[0])
	assert.Equal(t, docmodel.NakedImport{Module: "os.path"}, module.Imports[1])
	assert.Equal(t, docmodel.NakedImport{Module: "numpy"}, module.Imports[2])

	// Test: alias replaces the imported name
	assert.Equal(t, docmodel.FromImport{Module: "util", Names: []string{"h"}, Relative: 2}, module.Imports[3])
	assert.Equal(t, docmodel.FromImport{Module: "core", Names: []string{"Widget"}, Relative: 1}, module.Imports[4])
}

func TestBuildModule_Exports(t *testing.T) {
	t.Parallel()

	module := buildSample(t)
	assert.Equal(t, []string{"Widget", "polish"}, module.AllExports)

	// Test: the __all__ assignment must not also appear as a variable
	require.Len(t, module.Variables, 1)
	assert.Equal(t, docmodel.Variable{Name: "DEFAULT_SIZE", Value: "4"}, module.Variables[0])
}

func TestBuildModule_TypeAlias(t *testing.T) {
	t.Parallel()

	module := buildSample(t)
	require.Len(t, module.Aliases, 1)
	assert.Equal(t, docmodel.TypeAlias{Name: "Handler", Type: "Callable[[Widget], None]"}, module.Aliases[0])
}

func TestBuildModule_Class(t *testing.T) {
	t.Parallel()

	module := buildSample(t)
	require.Len(t, module.Classes, 1)

	cls := module.Classes[0]
	assert.Equal(t, "Foo", cls.Name)
	assert.Equal(t, []string{"Base"}, cls.Bases)
	assert.Contains(t, cls.Docstring, "A foo.")
	assert.Contains(t, cls.Docstring, "x (int): seed value")

	require.Len(t, cls.Fields, 2)
	assert.Equal(t, docmodel.ClassField{Name: "count", Type: "int", Default: "0"}, cls.Fields[0])
	assert.Equal(t, docmodel.ClassField{Name: "_secret", Type: "str", Default: `""`}, cls.Fields[1])

	require.Len(t, cls.Methods, 1)
	bar := cls.Methods[0]
	assert.Equal(t, "bar", bar.Name)
	assert.Equal(t, "str", bar.Returns)
	require.Len(t, bar.Args, 2)
	assert.Equal(t, docmodel.Arg{Name: "self"}, bar.Args[0])
	assert.Equal(t, docmodel.Arg{Name: "x", Type: "int", Default: "3"}, bar.Args[1])
	assert.Contains(t, bar.Docstring, "Stringify x.")
}

func TestBuildModule_Function(t *testing.T) {
	t.Parallel()

	module := buildSample(t)
	require.Len(t, module.Functions, 1)

	// Test: decorated definitions are unwrapped
	polish := module.Functions[0]
	assert.Equal(t, "polish", polish.Name)
	assert.Equal(t, "bool", polish.Returns)
	assert.Equal(t, "Polish a widget.", polish.Docstring)

	require.Len(t, polish.Args, 1)
	assert.Equal(t, docmodel.Arg{Name: "w"}, polish.Args[0])

	// Test: force comes after the bare * separator
	require.Len(t, polish.KwOnlyArgs, 1)
	assert.Equal(t, docmodel.Arg{Name: "force", Default: "False"}, polish.KwOnlyArgs[0])
}

func TestBuildModule_SplatParameters(t *testing.T) {
	t.Parallel()

	source := `def call(fn, *args, **kwargs):
    return fn(*args, **kwargs)
`
	module, err := BuildModule([]byte(source), "pkg.call")
	require.NoError(t, err)
	require.Len(t, module.Functions, 1)

	args := module.Functions[0].Args
	require.Len(t, args, 3)
	assert.Equal(t, "fn", args[0].Name)
	assert.Equal(t, "*args", args[1].Name)
	assert.Equal(t, "**kwargs", args[2].Name)
}

func TestBuildModule_InvalidSyntax(t *testing.T) {
	t.Parallel()

	_, err := BuildModule([]byte("def broken(:\n"), "pkg.broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestBuildModule_EmptyFile(t *testing.T) {
	t.Parallel()

	module, err := BuildModule([]byte(""), "pkg.empty")
	require.NoError(t, err)
	assert.Equal(t, "pkg.empty", module.Name)
	assert.Empty(t, module.Docstring)
	assert.Empty(t, module.Classes)
	assert.Empty(t, module.Functions)
}

func TestBuildModuleFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "shapes.py")
	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0o644))

	module, err := BuildModuleFromFile(path, "pkg.shapes")
	require.NoError(t, err)
	assert.Equal(t, "Tools for shaping widgets.", module.Docstring)

	_, err = BuildModuleFromFile(filepath.Join(dir, "missing.py"), "pkg.missing")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrParse)
}
