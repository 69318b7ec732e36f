package docmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for module lookups:
// - ResolveExport finds declarations in kind order and returns pointers
// - ResolveExport falls back to imports and returns them by value
// - ResolveImport maps absolute and relative from-imports to dotted paths
// - ResolveImport treats `from . import x` as pointing at the module itself
// - DeclaresDirectly is true only for the module's own declarations

func sampleModule() *Module {
	return &Module{
		Name:      "pkg.sub.mod",
		Classes:   []Class{{Name: "Widget"}},
		Functions: []Function{{Name: "polish"}},
		Variables: []Variable{{Name: "SIZE", Value: "4"}},
		Aliases:   []TypeAlias{{Name: "Handler", Type: "Callable"}},
		Imports: []Import{
			NakedImport{Module: "os"},
			FromImport{Module: "qux", Names: []string{"item"}, Relative: 1},
			FromImport{Module: "top", Names: []string{"thing"}, Relative: 2},
			FromImport{Module: "numpy", Names: []string{"array"}},
			FromImport{Module: "", Names: []string{"selfref"}, Relative: 1},
		},
	}
}

func TestResolveExport_Declarations(t *testing.T) {
	t.Parallel()

	m := sampleModule()

	cls, ok := m.ResolveExport("Widget").(*Class)
	require.True(t, ok)
	assert.Same(t, &m.Classes[0], cls)

	fn, ok := m.ResolveExport("polish").(*Function)
	require.True(t, ok)
	assert.Same(t, &m.Functions[0], fn)

	_, ok = m.ResolveExport("SIZE").(*Variable)
	assert.True(t, ok)

	_, ok = m.ResolveExport("Handler").(*TypeAlias)
	assert.True(t, ok)

	assert.Nil(t, m.ResolveExport("unknown"))
}

func TestResolveExport_Imports(t *testing.T) {
	t.Parallel()

	m := sampleModule()

	imp, ok := m.ResolveExport("item").(FromImport)
	require.True(t, ok)
	assert.Equal(t, "qux", imp.Module)

	naked, ok := m.ResolveExport("os").(NakedImport)
	require.True(t, ok)
	assert.Equal(t, "os", naked.Module)
}

func TestResolveImport(t *testing.T) {
	t.Parallel()

	m := sampleModule()

	// Test: one level up from pkg.sub.mod lands in pkg.sub
	target, ok := m.ResolveImport("item")
	require.True(t, ok)
	assert.Equal(t, "pkg.sub.qux", target)

	// Test: two levels up lands in pkg
	target, ok = m.ResolveImport("thing")
	require.True(t, ok)
	assert.Equal(t, "pkg.top", target)

	// Test: absolute imports pass through unchanged
	target, ok = m.ResolveImport("array")
	require.True(t, ok)
	assert.Equal(t, "numpy", target)

	// Test: `from . import x` points back at the module itself
	target, ok = m.ResolveImport("selfref")
	require.True(t, ok)
	assert.Equal(t, "pkg.sub.mod", target)

	_, ok = m.ResolveImport("unknown")
	assert.False(t, ok)
}

func TestDeclaresDirectly(t *testing.T) {
	t.Parallel()

	m := sampleModule()

	assert.True(t, m.DeclaresDirectly("Widget"))
	assert.True(t, m.DeclaresDirectly("polish"))
	assert.True(t, m.DeclaresDirectly("SIZE"))
	assert.True(t, m.DeclaresDirectly("Handler"))

	// Test: imported names are not the module's own declarations
	assert.False(t, m.DeclaresDirectly("item"))
	assert.False(t, m.DeclaresDirectly("os"))
	assert.False(t, m.DeclaresDirectly("unknown"))
}
