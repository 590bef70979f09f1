// Package codegen renders the normalized schema into TypeScript interface
// declarations: external imports, value-object interfaces, model
// interfaces, and the fixed auxiliary JSON-LD interface.
package codegen

import (
	"path"
	"strings"
)

// ImportCollector accumulates external type references and renders them as
// import declarations. Both module paths and the type names under a path
// keep first-insertion order, so output is deterministic across runs.
type ImportCollector struct {
	paths []string
	types map[string][]string
}

// NewImportCollector returns an empty collector.
func NewImportCollector() *ImportCollector {
	return &ImportCollector{types: make(map[string][]string)}
}

// Add records an import reference of the form "<path>|<TypeName>" or a
// bare "<path>" (the basename doubles as the type name).
func (c *ImportCollector) Add(ref string) {
	modulePath, typeName := SplitImportRef(ref)
	if modulePath == "" || typeName == "" {
		return
	}
	names, seen := c.types[modulePath]
	if !seen {
		c.paths = append(c.paths, modulePath)
	}
	for _, name := range names {
		if name == typeName {
			return
		}
	}
	c.types[modulePath] = append(names, typeName)
}

// Empty reports whether no references were collected.
func (c *ImportCollector) Empty() bool {
	return len(c.paths) == 0
}

// Render emits one import line per module path, followed by a blank line
// when any imports exist.
func (c *ImportCollector) Render(sb *strings.Builder) {
	if c.Empty() {
		return
	}
	for _, modulePath := range c.paths {
		sb.WriteString("import { ")
		sb.WriteString(strings.Join(c.types[modulePath], ", "))
		sb.WriteString(" } from '")
		sb.WriteString(modulePath)
		sb.WriteString("';\n")
	}
	sb.WriteString("\n")
}

// SplitImportRef decomposes an import reference into its module path and
// display type name: the explicit alias after the separator when present,
// else the basename of the path.
func SplitImportRef(ref string) (modulePath, typeName string) {
	if idx := strings.IndexByte(ref, '|'); idx >= 0 {
		return ref[:idx], strings.TrimSpace(ref[idx+1:])
	}
	return ref, path.Base(ref)
}
