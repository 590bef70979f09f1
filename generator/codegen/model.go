package codegen

import (
	"strings"

	"github.com/modelts/modelts/schema"
	"github.com/modelts/modelts/tstype"
)

// knownNullableFields are field names rendered optional even though no
// metadata marks them nullable. Columns like soft-delete stamps are
// nullable in practice but never appear in fillable or cast metadata.
var knownNullableFields = map[string]bool{
	"deleted_at":        true,
	"email_verified_at": true,
	"remember_token":    true,
}

// EmitModels renders one interface per model, in schema map order, with
// one member per extracted field in extraction order.
func (e *Emitter) EmitModels(sb *strings.Builder) {
	for _, ms := range e.schemas.Models() {
		name := interfaceName(ms.Name)
		if !e.markProcessed(name) {
			continue
		}
		sb.WriteString("export interface ")
		sb.WriteString(name)
		sb.WriteString(" {\n")
		for _, fd := range ms.Fields {
			e.emitModelField(sb, fd)
		}
		sb.WriteString("}\n\n")
	}
}

// emitModelField renders one member, dispatching on the field's kind.
func (e *Emitter) emitModelField(sb *strings.Builder, fd schema.FieldDescriptor) {
	switch fd.Kind {
	case schema.KindValueObject:
		ref := interfaceName(fd.ValueObjectName)
		if e.includeJsonLd && fd.ValueObjectName == ReservedJsonLdName {
			ref = AuxiliaryInterfaceName
		}
		if fd.IsArray {
			ref += "[]"
		}
		if fd.Nullable {
			e.writeMember(sb, fd.Name, true, ref+" | null")
		} else {
			e.writeMember(sb, fd.Name, false, ref)
		}

	case schema.KindImport:
		_, typeName := SplitImportRef(fd.DeclaredType)
		e.writeMember(sb, fd.Name, e.isOptional(fd), typeName)

	case schema.KindRelation:
		e.writeMember(sb, fd.Name, true, e.relationType(fd))

	default:
		mapped := e.mapper.Map(fd.DeclaredType)
		if fd.Verbatim {
			mapped = e.mapper.MapLenient(fd.DeclaredType)
		}
		e.writeMember(sb, fd.Name, e.isOptional(fd), mapped)
	}
}

// relationType maps a relation to its interface reference: an array of the
// related interface for collection-shaped kinds, the bare interface
// otherwise. A polymorphic relation without a fixed target degrades to the
// unknown sentinel.
func (e *Emitter) relationType(fd schema.FieldDescriptor) string {
	if fd.RelatedModel == "" {
		return tstype.Unknown
	}
	ref := interfaceName(fd.RelatedModel)
	if schema.RelationKind(fd.DeclaredType).IsCollection() {
		ref += "[]"
	}
	return ref
}

// isOptional applies the optionality rule for non-value-object fields: a
// field is optional when it is a relation, a synthetic count field, a known
// nullable name, or a scalar marked nullable by an override or column
// introspection.
func (e *Emitter) isOptional(fd schema.FieldDescriptor) bool {
	if fd.Kind == schema.KindRelation {
		return true
	}
	if strings.HasSuffix(fd.Name, schema.CountSuffix) {
		return true
	}
	if knownNullableFields[fd.Name] {
		return true
	}
	return fd.Kind == schema.KindScalar && fd.Nullable
}

func (e *Emitter) writeMember(sb *strings.Builder, name string, optional bool, tsType string) {
	sb.WriteString(indent)
	sb.WriteString(name)
	if optional {
		sb.WriteString("?")
	}
	sb.WriteString(": ")
	sb.WriteString(tsType)
	sb.WriteString(";\n")
}
