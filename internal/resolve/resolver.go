// Package resolve performs the second pass over a fully built module
// mapping: for every name a module lists in its export surface but does
// not declare itself, it follows the from-import chain until it finds the
// module that truly declares the name, then annotates the exporting
// module's view with a reference to that declaration. Chains that dead-end
// or loop become per-name warnings; nothing here is fatal.
package resolve

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/dominikbraun/graph"

	"github.com/mvp-joe/apibook/internal/docmodel"
)

// WarningKind classifies a resolution failure.
type WarningKind string

const (
	// UnresolvedExport is an export-surface name that cannot be traced to
	// any declaration within the scanned root.
	UnresolvedExport WarningKind = "unresolved-export"
	// CycleDetected is a re-export chain that revisits a (module, name)
	// pair. Handled identically to UnresolvedExport: warn, render the gap.
	CycleDetected WarningKind = "cycle-detected"
)

// Warning records one per-name resolution failure.
type Warning struct {
	Module string
	Name   string
	Kind   WarningKind
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: export %q: %s (%s)", w.Module, w.Name, w.Kind, w.Detail)
}

// Reexport references a declaration that lives in another module but is
// rendered inline under the exporting module. The declaration is shared,
// never copied.
type Reexport struct {
	// Origin is the dotted name of the module that declares the symbol.
	Origin string
	Decl   docmodel.Declaration
}

// View is one module plus everything resolution added to it. The renderer
// consumes Views read-only.
type View struct {
	*docmodel.Module
	Reexports []Reexport
	// Unresolved lists export-surface names that could not be traced; the
	// renderer still lists them as a visible gap.
	Unresolved []string
	Warnings   []Warning
}

// Exports resolves every module's export surface against the complete
// module mapping. The mapping must be complete before this runs: a chain
// may hop through any module in the batch.
func Exports(modules map[string]*docmodel.Module) map[string]*View {
	views := make(map[string]*View, len(modules))

	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		module := modules[name]
		view := &View{Module: module}
		for _, export := range module.AllExports {
			resolveExport(view, export, modules)
		}
		views[name] = view
	}
	return views
}

// resolveExport traces one export-surface name. The hop graph is built with
// cycle prevention enabled, so a chain that revisits a (module, name) pair
// is rejected at the edge insert instead of looping forever.
func resolveExport(view *View, name string, modules map[string]*docmodel.Module) {
	if view.DeclaresDirectly(name) {
		return
	}

	hops := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	current := view.Module

	for {
		target, ok := current.ResolveImport(name)
		if !ok {
			view.fail(name, UnresolvedExport,
				fmt.Sprintf("no import in %s mentions it", current.Name))
			return
		}

		if target == current.Name {
			// Self-resolution makes no progress; the symbol is treated as
			// locally declared and the export is a documented no-op.
			log.Debug("export resolves to itself", "module", current.Name, "name", name)
			return
		}

		next := lookupModule(modules, target)
		if next == nil {
			view.fail(name, UnresolvedExport,
				fmt.Sprintf("module %s is outside the scanned root", target))
			return
		}

		if err := addHop(hops, hopKey(current.Name, name), hopKey(next.Name, name)); err != nil {
			view.fail(name, CycleDetected,
				fmt.Sprintf("re-export chain revisits %s.%s", next.Name, name))
			return
		}

		if next.DeclaresDirectly(name) {
			view.Reexports = append(view.Reexports, Reexport{
				Origin: next.Name,
				Decl:   next.ResolveExport(name),
			})
			return
		}
		current = next
	}
}

func (v *View) fail(name string, kind WarningKind, detail string) {
	v.Unresolved = append(v.Unresolved, name)
	v.Warnings = append(v.Warnings, Warning{
		Module: v.Name,
		Name:   name,
		Kind:   kind,
		Detail: detail,
	})
}

// lookupModule finds a module by dotted name, also trying the package
// initializer form (pkg -> pkg.__init__).
func lookupModule(modules map[string]*docmodel.Module, name string) *docmodel.Module {
	if m, ok := modules[name]; ok {
		return m
	}
	if m, ok := modules[name+".__init__"]; ok {
		return m
	}
	return nil
}

func hopKey(module, name string) string {
	return module + "::" + name
}

// addHop records one traversal edge. Both a cycle-creating edge and a
// duplicate edge mean the chain revisited a pair.
func addHop(hops graph.Graph[string, string], from, to string) error {
	if err := hops.AddVertex(from); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return err
	}
	if err := hops.AddVertex(to); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return err
	}
	return hops.AddEdge(from, to)
}
