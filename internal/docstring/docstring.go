// Package docstring parses Google-style docstrings into a description,
// parameter documentation, and a return description. Only the sections the
// renderer consumes are understood; anything unrecognized is kept as prose.
package docstring

import (
	"regexp"
	"strings"
)

// Param is the documentation attached to one parameter in an Args section.
type Param struct {
	Name        string
	Type        string
	Description string
}

// Parsed is the structured view of one docstring.
type Parsed struct {
	Description string
	Params      []Param
	Returns     string
}

// section headers recognized at the start of a line
var (
	argsHeaders    = []string{"Args:", "Arguments:", "Parameters:"}
	returnsHeaders = []string{"Returns:", "Return:"}
	otherHeaders   = []string{"Raises:", "Yields:", "Attributes:", "Examples:", "Example:", "Note:", "Notes:"}

	// `name (type): description` with the type part optional
	paramLine = regexp.MustCompile(`^([*\w.]+)\s*(?:\(([^)]*)\))?\s*:\s*(.*)$`)
)

type sectionKind int

const (
	sectionDescription sectionKind = iota
	sectionArgs
	sectionReturns
	sectionOther
)

func headerKind(line string) (sectionKind, bool) {
	trimmed := strings.TrimSpace(line)
	for _, h := range argsHeaders {
		if trimmed == h {
			return sectionArgs, true
		}
	}
	for _, h := range returnsHeaders {
		if trimmed == h {
			return sectionReturns, true
		}
	}
	for _, h := range otherHeaders {
		if trimmed == h {
			return sectionOther, true
		}
	}
	return sectionDescription, false
}

// Parse splits a docstring into description, Args entries, and the Returns
// description. A zero Parsed is returned for empty input.
func Parse(docs string) Parsed {
	var parsed Parsed
	if strings.TrimSpace(docs) == "" {
		return parsed
	}

	section := sectionDescription
	var description []string
	var returns []string
	// indentation of the current param entry, -1 when none is open
	paramIndent := -1

	for _, line := range strings.Split(docs, "\n") {
		if kind, ok := headerKind(line); ok {
			section = kind
			paramIndent = -1
			if kind == sectionOther {
				// unrecognized sections keep their header in the prose
				description = append(description, line)
			}
			continue
		}

		switch section {
		case sectionDescription:
			description = append(description, line)
		case sectionReturns:
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				returns = append(returns, trimmed)
			}
		case sectionArgs:
			indent := len(line) - len(strings.TrimLeft(line, " \t"))
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			// A continuation line is indented deeper than the entry that
			// opened it; everything else starts a new entry.
			if paramIndent >= 0 && indent > paramIndent && len(parsed.Params) > 0 {
				last := &parsed.Params[len(parsed.Params)-1]
				last.Description = strings.TrimSpace(last.Description + " " + trimmed)
				continue
			}
			if m := paramLine.FindStringSubmatch(trimmed); m != nil {
				parsed.Params = append(parsed.Params, Param{
					Name:        m[1],
					Type:        m[2],
					Description: strings.TrimSpace(m[3]),
				})
				paramIndent = indent
			}
		case sectionOther:
			// retained as prose so nothing is silently lost
			description = append(description, line)
		}
	}

	parsed.Description = strings.TrimSpace(strings.Join(description, "\n"))
	parsed.Returns = strings.Join(returns, " ")
	return parsed
}
