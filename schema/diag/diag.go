// Package diag collects non-fatal extraction diagnostics. A broken relation
// declaration or an unresolvable cast must not abort generation for the
// whole model set, but the skip should still be observable; every tolerated
// failure is recorded here and reported after the run.
package diag

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"
)

// Warning describes one skipped piece of schema metadata.
type Warning struct {
	Model   string
	Field   string
	Message string
}

// String formats the warning as "Model.field: message".
func (w Warning) String() string {
	subject := w.Model
	if w.Field != "" {
		subject += "." + w.Field
	}
	if subject == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", subject, w.Message)
}

// Diagnostics accumulates warnings across an extraction run. Collection
// never errors out early; callers push and continue.
type Diagnostics struct {
	warnings []Warning
}

// New returns an empty collection.
func New() *Diagnostics {
	return &Diagnostics{}
}

// Skipf records a skipped model member with a formatted reason.
func (d *Diagnostics) Skipf(model, field, format string, args ...any) {
	d.warnings = append(d.warnings, Warning{
		Model:   model,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnings returns all collected warnings in push order.
func (d *Diagnostics) Warnings() []Warning {
	return d.warnings
}

// HasWarnings reports whether anything was skipped.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.warnings) > 0
}

// ToPrettyString formats the collection for terminal output, one warning
// per line.
func (d *Diagnostics) ToPrettyString() string {
	var buf bytes.Buffer

	warningTitle := color.New(color.FgYellow, color.Bold)
	warningDesc := color.New(color.Bold)

	for _, w := range d.warnings {
		warningTitle.Fprintf(&buf, "warning")
		fmt.Fprintf(&buf, ": ")
		warningDesc.Fprintf(&buf, "%s\n", w.String())
	}
	return buf.String()
}
