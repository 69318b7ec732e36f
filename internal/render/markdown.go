// Package render serializes resolved module views to Markdown. Rendering
// is deterministic: the same view always produces byte-identical output.
package render

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/apibook/internal/docmodel"
	"github.com/mvp-joe/apibook/internal/docstring"
	"github.com/mvp-joe/apibook/internal/resolve"
)

// maxSignatureWidth is the column budget before a signature wraps onto one
// line per argument.
const maxSignatureWidth = 80

// Module renders one resolved module view to a complete Markdown document.
// Sections appear in fixed order (Classes, Functions, Variables, Type
// Aliases, Imports) and a section is omitted entirely when empty.
// Re-exported declarations render inline annotated with their origin.
// Underscore-prefixed names are hidden throughout, including re-exports.
func Module(view *resolve.View) string {
	var sb strings.Builder

	if pkg, ok := strings.CutSuffix(view.Name, ".__init__"); ok {
		fmt.Fprintf(&sb, "# package `%s`\n\n", pkg)
	} else {
		fmt.Fprintf(&sb, "# module `%s`\n\n", view.Name)
	}

	if view.Docstring != "" {
		fmt.Fprintf(&sb, "%s\n\n", view.Docstring)
	}

	classes := view.VisibleClasses()
	functions := view.VisibleFunctions()
	variables := view.VisibleVariables()
	aliases := view.VisibleAliases()
	var reClasses, reFunctions, reAliases, reVariables []resolve.Reexport
	for _, re := range view.Reexports {
		switch decl := re.Decl.(type) {
		case *docmodel.Class:
			if docmodel.IsVisibleName(decl.Name) {
				reClasses = append(reClasses, re)
			}
		case *docmodel.Function:
			if docmodel.IsVisibleName(decl.Name) {
				reFunctions = append(reFunctions, re)
			}
		case *docmodel.TypeAlias:
			if docmodel.IsVisibleName(decl.Name) {
				reAliases = append(reAliases, re)
			}
		case *docmodel.Variable:
			if docmodel.IsVisibleName(decl.Name) {
				reVariables = append(reVariables, re)
			}
		}
	}

	if len(classes) > 0 || len(reClasses) > 0 {
		sb.WriteString("## Classes\n\n")
		for i := range classes {
			sb.WriteString(renderClass(&classes[i], ""))
		}
		for _, re := range reClasses {
			sb.WriteString(renderClass(re.Decl.(*docmodel.Class), re.Origin))
		}
	}

	if len(functions) > 0 || len(reFunctions) > 0 {
		sb.WriteString("## Functions\n\n")
		for i := range functions {
			sb.WriteString(renderFunction(&functions[i], false, nil, ""))
		}
		for _, re := range reFunctions {
			sb.WriteString(renderFunction(re.Decl.(*docmodel.Function), false, nil, re.Origin))
		}
	}

	if len(variables) > 0 || len(reVariables) > 0 {
		sb.WriteString("## Variables\n\n")
		for _, v := range variables {
			fmt.Fprintf(&sb, "- `%s` = `%s`\n", v.Name, v.Value)
		}
		for _, re := range reVariables {
			v := re.Decl.(*docmodel.Variable)
			fmt.Fprintf(&sb, "- `%s` = `%s` — from `%s`\n", v.Name, v.Value, re.Origin)
		}
		sb.WriteString("\n")
	}

	if len(aliases) > 0 || len(reAliases) > 0 {
		sb.WriteString("## Type Aliases\n\n")
		for _, alias := range aliases {
			fmt.Fprintf(&sb, "- `type %s`: `%s`\n", alias.Name, alias.Type)
		}
		for _, re := range reAliases {
			alias := re.Decl.(*docmodel.TypeAlias)
			fmt.Fprintf(&sb, "- `type %s`: `%s` — from `%s`\n", alias.Name, alias.Type, re.Origin)
		}
		sb.WriteString("\n")
	}

	if len(view.Imports) > 0 {
		sb.WriteString("## Imports\n\n")
		for _, imp := range view.Imports {
			fmt.Fprintf(&sb, "- `%s`\n", renderImport(imp))
		}
		sb.WriteString("\n")
	}

	if len(view.Unresolved) > 0 {
		// names the module exports but resolution could not trace; listed
		// so the gap is visible in the document
		sb.WriteString("## Exports\n\n")
		for _, name := range view.Unresolved {
			fmt.Fprintf(&sb, "- `%s` _(unresolved)_\n", name)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderImport produces the compact one-line form of an import. Relative
// from-imports keep their leading dots, so `from ..m import a` and
// `from m import a` stay distinguishable.
func renderImport(imp docmodel.Import) string {
	switch imp := imp.(type) {
	case docmodel.NakedImport:
		return fmt.Sprintf("import %s", imp.Module)
	case docmodel.FromImport:
		return fmt.Sprintf("from %s%s import %s",
			strings.Repeat(".", imp.Relative), imp.Module, strings.Join(imp.Names, ", "))
	}
	return ""
}

func renderClass(cls *docmodel.Class, origin string) string {
	var sb strings.Builder

	bases := ""
	if len(cls.Bases) > 0 {
		bases = fmt.Sprintf("(%s)", strings.Join(cls.Bases, ", "))
	}
	fmt.Fprintf(&sb, "### `class %s%s:`\n\n", cls.Name, bases)
	if origin != "" {
		fmt.Fprintf(&sb, "_Re-exported from `%s`._\n\n", origin)
	}
	sb.WriteString("<div style=\"padding-left: 20px;\">\n\n")

	var classSig *docmodel.Signature
	if cls.Docstring != "" {
		sig := signatureOf(cls.Docstring)
		classSig = &sig
		if sig.Docstring != "" {
			fmt.Fprintf(&sb, "%s\n\n", sig.Docstring)
		}
	}

	if fields := cls.VisibleFields(); len(fields) > 0 {
		sb.WriteString("#### Fields\n\n")
		for _, field := range fields {
			defaultInfo := ""
			if field.Default != "" {
				defaultInfo = fmt.Sprintf(" = `%s`", field.Default)
			}
			fmt.Fprintf(&sb, "- `%s`: `%s`%s\n\n", field.Name, field.Type, defaultInfo)
		}
	}

	if methods := cls.VisibleMethods(); len(methods) > 0 {
		sb.WriteString("#### Methods\n\n")
		for i := range methods {
			// the class docstring may document __init__'s parameters
			var extra *docmodel.Signature
			if methods[i].Name == "__init__" {
				extra = classSig
			}
			sb.WriteString(renderFunction(&methods[i], true, extra, ""))
		}
	}

	sb.WriteString("</div>\n\n")
	return sb.String()
}

// renderFunction renders a function or method: a fenced call signature,
// the Arguments list, a Returns entry when either a return annotation or a
// docstring return-description exists, and the docstring prose.
func renderFunction(fn *docmodel.Function, isMethod bool, extra *docmodel.Signature, origin string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "```python\n%s\n```\n\n", formatSignature(fn, isMethod))
	if origin != "" {
		fmt.Fprintf(&sb, "_Re-exported from `%s`._\n\n", origin)
	}
	sb.WriteString("<div style=\"padding-left: 20px;\">\n\n")

	if fn.Docstring != "" || extra != nil {
		sig := signatureOf(fn.Docstring)

		if sig.Docstring != "" {
			fmt.Fprintf(&sb, "%s\n\n", sig.Docstring)
		}

		docArgs := mergeArgDocs(sig, extra)
		if args := documentableArgs(fn, isMethod); len(args) > 0 {
			sb.WriteString("**Arguments**:")
			for _, arg := range args {
				sb.WriteString(renderArg(arg, docArgs))
			}
			sb.WriteString("\n\n")
		}

		if returns := returnsOf(fn, sig, extra); len(returns) > 0 {
			sb.WriteString("**Returns**:")
			for _, ret := range returns {
				fmt.Fprintf(&sb, "\n- %s", ret)
			}
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString("</div>\n\n")
	return sb.String()
}

// formatSignature builds the call signature. The self receiver is dropped,
// keyword-only arguments follow a bare `*`, and signatures over the column
// budget wrap one argument per line.
func formatSignature(fn *docmodel.Function, isMethod bool) string {
	var parts []string
	for i, arg := range fn.Args {
		if isMethod && i == 0 && arg.Name == "self" {
			continue
		}
		parts = append(parts, formatArg(arg))
	}
	if len(fn.KwOnlyArgs) > 0 {
		parts = append(parts, "*")
		for _, arg := range fn.KwOnlyArgs {
			parts = append(parts, formatArg(arg))
		}
	}

	ret := ""
	if fn.Returns != "" {
		ret = fmt.Sprintf(" -> %s", fn.Returns)
	}

	oneLine := fmt.Sprintf("%s(%s)%s", fn.Name, strings.Join(parts, ", "), ret)
	if len(oneLine) <= maxSignatureWidth || len(parts) == 0 {
		return oneLine
	}
	return fmt.Sprintf("%s(\n    %s,\n)%s", fn.Name, strings.Join(parts, ",\n    "), ret)
}

func formatArg(arg docmodel.Arg) string {
	s := arg.Name
	if arg.Type != "" {
		s += ": " + arg.Type
	}
	if arg.Default != "" {
		if arg.Type != "" {
			s += " = " + arg.Default
		} else {
			s += "=" + arg.Default
		}
	}
	return s
}

// documentableArgs is the argument list shown under **Arguments**: every
// positional arg except the receiver, then the keyword-only args.
func documentableArgs(fn *docmodel.Function, isMethod bool) []docmodel.Arg {
	var out []docmodel.Arg
	for i, arg := range fn.Args {
		if isMethod && i == 0 && arg.Name == "self" {
			continue
		}
		out = append(out, arg)
	}
	return append(out, fn.KwOnlyArgs...)
}

func renderArg(arg docmodel.Arg, docs map[string]docmodel.ArgDoc) string {
	doc, hasDoc := docs[arg.Name]

	typeInfo := "`"
	argType := arg.Type
	if argType == "" && hasDoc {
		argType = doc.Type
	}
	if argType != "" {
		typeInfo = fmt.Sprintf(" (%s)`", argType)
	}

	desc := ""
	if hasDoc && doc.Description != "" {
		desc = ": " + doc.Description
	}

	defaultInfo := ""
	switch {
	case arg.Default != "":
		defaultInfo = fmt.Sprintf(" (_default: %s_)", arg.Default)
	case hasDoc && doc.Default != "":
		defaultInfo = fmt.Sprintf(" (_default: %s_)", doc.Default)
	}

	return fmt.Sprintf("\n- `%s%s%s%s", arg.Name, typeInfo, desc, defaultInfo)
}

// returnsOf merges the return annotation with docstring return
// descriptions. The docstring description wins the prose slot; the bare
// annotation is shown when that is all there is.
func returnsOf(fn *docmodel.Function, sig docmodel.Signature, extra *docmodel.Signature) []string {
	returns := sig.Returns
	if len(returns) == 0 && extra != nil {
		returns = extra.Returns
	}
	if len(returns) == 0 && fn.Returns != "" {
		returns = []string{fmt.Sprintf("`%s`", fn.Returns)}
	}
	return returns
}

// signatureOf builds the transient Signature composite from a docstring.
func signatureOf(docs string) docmodel.Signature {
	parsed := docstring.Parse(docs)

	sig := docmodel.Signature{
		Args:      make(map[string]docmodel.ArgDoc, len(parsed.Params)),
		Docstring: parsed.Description,
	}
	for _, param := range parsed.Params {
		sig.Args[param.Name] = docmodel.ArgDoc{
			Type:        param.Type,
			Description: param.Description,
		}
	}
	if parsed.Returns != "" {
		sig.Returns = []string{parsed.Returns}
	}
	return sig
}

// mergeArgDocs overlays the class-docstring signature (when rendering
// __init__) on top of the method's own docstring args.
func mergeArgDocs(sig docmodel.Signature, extra *docmodel.Signature) map[string]docmodel.ArgDoc {
	merged := make(map[string]docmodel.ArgDoc, len(sig.Args))
	for name, doc := range sig.Args {
		merged[name] = doc
	}
	if extra != nil {
		for name, doc := range extra.Args {
			merged[name] = doc
		}
	}
	return merged
}
