package docmodel

import (
	"slices"
	"strings"
)

// Declaration is any record a module can export: a Class, Function,
// Variable, TypeAlias, or one of the import records.
type Declaration any

// ResolveExport looks up a name among the module's own declarations, in
// declaration-kind order (classes, functions, variables, aliases, imports).
// It returns nil when the name is not known to the module at all.
func (m *Module) ResolveExport(name string) Declaration {
	for i := range m.Classes {
		if m.Classes[i].Name == name {
			return &m.Classes[i]
		}
	}
	for i := range m.Functions {
		if m.Functions[i].Name == name {
			return &m.Functions[i]
		}
	}
	for i := range m.Variables {
		if m.Variables[i].Name == name {
			return &m.Variables[i]
		}
	}
	for i := range m.Aliases {
		if m.Aliases[i].Name == name {
			return &m.Aliases[i]
		}
	}
	for _, imp := range m.Imports {
		switch imp := imp.(type) {
		case FromImport:
			if slices.Contains(imp.Names, name) {
				return imp
			}
		case NakedImport:
			if imp.Module == name {
				return imp
			}
		}
	}
	return nil
}

// ResolveImport maps a name brought in by a from-import to the dotted path
// of the module it was imported from, resolving relative levels against the
// module's own dotted name. If we are foo.bar.baz and the import is
// `from .qux import item` (relative = 1), the target is foo.bar.qux.
// The second return is false when no import mentions the name.
func (m *Module) ResolveImport(name string) (string, bool) {
	for _, imp := range m.Imports {
		switch imp := imp.(type) {
		case FromImport:
			if !slices.Contains(imp.Names, name) {
				continue
			}
			if imp.Relative == 0 {
				return imp.Module, true
			}
			// `from . import x` names no module at all; the target is the
			// module itself and the caller treats it as a no-op hop.
			if imp.Module == "" {
				return m.Name, true
			}
			parts := strings.Split(m.Name, ".")
			if imp.Relative >= len(parts) {
				parts = parts[:0]
			} else {
				parts = parts[:len(parts)-imp.Relative]
			}
			parts = append(parts, imp.Module)
			return strings.Join(parts, "."), true
		case NakedImport:
			if imp.Module == name {
				return imp.Module, true
			}
		}
	}
	return "", false
}

// DeclaresDirectly reports whether name is one of the module's own
// declarations, as opposed to something merely imported.
func (m *Module) DeclaresDirectly(name string) bool {
	switch m.ResolveExport(name).(type) {
	case *Class, *Function, *Variable, *TypeAlias:
		return true
	}
	return false
}
