package render

import (
	"fmt"
	"sort"
	"strings"
)

// TocMarker is the substitution point inside a summary template.
const TocMarker = "{{toc}}"

// defaultSummaryTemplate is used when no template file is supplied.
const defaultSummaryTemplate = `# API Reference

{{toc}}
`

// DocPath maps a dotted module name to its document path: dots become
// path separators and a package initializer collapses onto the package
// itself (pkg.a -> pkg/a.md, pkg.__init__ -> pkg.md).
func DocPath(moduleName string) string {
	name := strings.TrimSuffix(moduleName, ".__init__")
	return strings.ReplaceAll(name, ".", "/") + ".md"
}

type tocNode struct {
	children map[string]*tocNode
	isModule bool
	docPath  string
}

func newTocNode() *tocNode {
	return &tocNode{children: make(map[string]*tocNode)}
}

// Summary renders the navigation summary: a nested bullet list of module
// links substituted for the {{toc}} marker of the template, or of a
// default flat template when none is given. Underscore-prefixed path
// components are hidden, which also folds pkg.__init__ onto pkg.
func Summary(moduleNames []string, template string) string {
	root := newTocNode()
	for _, name := range moduleNames {
		insertModule(root, name)
	}

	var toc strings.Builder
	writeToc(&toc, root, 0)

	if template == "" {
		template = defaultSummaryTemplate
	}
	return strings.ReplaceAll(template, TocMarker, toc.String())
}

func insertModule(root *tocNode, moduleName string) {
	parts := strings.Split(moduleName, ".")
	// underscore-named modules are hidden; __init__ folds onto its package
	if last := parts[len(parts)-1]; strings.HasPrefix(last, "_") && last != "__init__" {
		return
	}

	node := root
	for _, part := range parts {
		if strings.HasPrefix(part, "_") {
			continue
		}
		child, ok := node.children[part]
		if !ok {
			child = newTocNode()
			node.children[part] = child
		}
		node = child
	}
	if node != root {
		node.isModule = true
		node.docPath = DocPath(moduleName)
	}
}

func writeToc(sb *strings.Builder, node *tocNode, level int) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		child := node.children[name]
		if child.isModule {
			fmt.Fprintf(sb, "%s- [%s](%s)\n\n", strings.Repeat("  ", level), name, child.docPath)
		}
		// namespace components without a module of their own get no entry,
		// but their children still render at the deeper level
		writeToc(sb, child, level+1)
	}
}
