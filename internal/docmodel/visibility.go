package docmodel

import "strings"

// Dunder methods that stay visible despite the leading underscore.
var visibleMethods = []string{"__init__", "__call__"}

// IsVisibleName reports whether a declaration name belongs in rendered
// output. Names with a leading underscore are private by convention.
func IsVisibleName(name string) bool {
	return !strings.HasPrefix(name, "_")
}

// IsVisibleMethod is IsVisibleName plus the __init__/__call__ allowlist.
func IsVisibleMethod(name string) bool {
	if IsVisibleName(name) {
		return true
	}
	for _, m := range visibleMethods {
		if name == m {
			return true
		}
	}
	return false
}

// VisibleMethods filters a class's methods down to the renderable set.
func (c *Class) VisibleMethods() []Function {
	var out []Function
	for _, m := range c.Methods {
		if IsVisibleMethod(m.Name) {
			out = append(out, m)
		}
	}
	return out
}

// VisibleFields filters a class's fields down to the renderable set.
func (c *Class) VisibleFields() []ClassField {
	var out []ClassField
	for _, f := range c.Fields {
		if IsVisibleName(f.Name) {
			out = append(out, f)
		}
	}
	return out
}

// VisibleClasses filters the module's classes down to the renderable set.
func (m *Module) VisibleClasses() []Class {
	var out []Class
	for _, c := range m.Classes {
		if IsVisibleName(c.Name) {
			out = append(out, c)
		}
	}
	return out
}

// VisibleFunctions filters the module's functions down to the renderable set.
func (m *Module) VisibleFunctions() []Function {
	var out []Function
	for _, f := range m.Functions {
		if IsVisibleName(f.Name) {
			out = append(out, f)
		}
	}
	return out
}

// VisibleVariables filters the module's variables down to the renderable set.
func (m *Module) VisibleVariables() []Variable {
	var out []Variable
	for _, v := range m.Variables {
		if IsVisibleName(v.Name) {
			out = append(out, v)
		}
	}
	return out
}

// VisibleAliases filters the module's type aliases down to the renderable set.
func (m *Module) VisibleAliases() []TypeAlias {
	var out []TypeAlias
	for _, a := range m.Aliases {
		if IsVisibleName(a.Name) {
			out = append(out, a)
		}
	}
	return out
}
