package codegen

import (
	"strings"

	"github.com/modelts/modelts/schema"
)

// EmitValueObjects renders one interface per distinct value-object type
// referenced by the schema. The initial sweep walks fields in schema order;
// value objects those interfaces reference in turn are queued and drained
// FIFO afterward, so nesting is discovered breadth-first. Each interface is
// emitted at most once per run regardless of how many fields reference it.
func (e *Emitter) EmitValueObjects(sb *strings.Builder) {
	for _, ms := range e.schemas.Models() {
		for _, fd := range ms.Fields {
			if fd.Kind != schema.KindValueObject || len(fd.Properties) == 0 {
				continue
			}
			e.emitValueObject(sb, fd.ValueObjectName, fd.Properties)
		}
	}

	// Drain recursively discovered references. Names that no longer
	// resolve to a registered value object are dropped with a diagnostic,
	// not errors: the referencing member already rendered.
	for len(e.pending) > 0 {
		short := e.pending[0]
		e.pending = e.pending[1:]
		delete(e.enqueued, short)

		t, ok := e.registry.ValueObjectType(short)
		if !ok {
			e.diags.Skipf("", short, "referenced value object is not registered")
			continue
		}
		if !e.analyzer.IsValueObject(t) {
			e.diags.Skipf("", short, "referenced type %s is not a value object", t.String())
			continue
		}
		e.emitValueObject(sb, short, e.analyzer.Fields(t))
	}
}

// emitValueObject renders a single value-object interface and queues the
// value objects its properties reference. The reserved JSON-LD name is
// only marked processed: its references always render as the auxiliary
// interface, never as a generated one.
func (e *Emitter) emitValueObject(sb *strings.Builder, short string, properties []schema.ValueObjectField) {
	short = strings.TrimSuffix(short, "[]")
	name := interfaceName(short)
	if e.includeJsonLd && short == ReservedJsonLdName {
		e.processed[name] = true
		return
	}
	if !e.markProcessed(name) {
		return
	}

	sb.WriteString("export interface ")
	sb.WriteString(name)
	sb.WriteString(" {\n")
	for _, prop := range properties {
		sb.WriteString(indent)
		sb.WriteString(prop.Name)
		if prop.Optional() {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		sb.WriteString(prop.MappedType)
		sb.WriteString(";\n")

		for _, ref := range prop.Refs {
			e.enqueue(ref)
		}
	}
	sb.WriteString("}\n\n")
}
