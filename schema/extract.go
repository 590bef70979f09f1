package schema

import (
	"strings"

	"github.com/modelts/modelts/tstype"
)

// CountSuffix is appended to a collection relation's field name to form its
// synthetic numeric count twin.
const CountSuffix = "_count"

// extractFields assembles one model's ordered field descriptor sequence.
// Assembly order is the emitted member order and is fixed: primary key,
// fillable attributes, timestamps, relations (with count twins), and
// finally any leftover per-model overrides appended by the builder pass.
// Every step checks for prior presence before appending; the first writer
// wins and later steps never overwrite.
func (b *Builder) extractFields(model Model) *ModelSchema {
	name := model.ModelName()
	ms := &ModelSchema{Name: name, Table: TableFor(model)}
	overrides := b.modelOverrides[name]
	casts := model.Casts()

	// Primary key first, always numeric.
	pk := model.PrimaryKey()
	if pk != "" {
		ms.Fields = append(ms.Fields, FieldDescriptor{
			Name:         pk,
			DeclaredType: "integer",
			Kind:         KindScalar,
		})
	}

	// Declared attributes in declaration order. Precedence per attribute:
	// per-model override, then a structured custom cast, then the raw cast
	// tag (defaulting to string).
	for _, attr := range model.Fillable() {
		if ms.HasField(attr) {
			continue
		}
		if value, ok := overrideFor(overrides, attr); ok {
			ms.Fields = append(ms.Fields, b.overrideDescriptor(attr, value))
			continue
		}
		tag, hasCast := casts[attr]
		if hasCast {
			if fd := b.resolveCast(model, attr, tag); fd != nil {
				ms.Fields = append(ms.Fields, *fd)
				continue
			}
		}
		declared := "string"
		if hasCast {
			declared = tag
		}
		ms.Fields = append(ms.Fields, FieldDescriptor{
			Name:         attr,
			DeclaredType: declared,
			Kind:         KindScalar,
		})
	}

	// Timestamp columns, unless already declared or overridden; overridden
	// timestamps arrive through the override passes instead.
	if model.Timestamps() {
		createdAt, updatedAt := timestampColumnsFor(model)
		for _, column := range []string{createdAt, updatedAt} {
			if column == "" || ms.HasField(column) {
				continue
			}
			if b.hasOverride(name, column) {
				continue
			}
			ms.Fields = append(ms.Fields, FieldDescriptor{
				Name:         column,
				DeclaredType: "string",
				Kind:         KindScalar,
			})
		}
	}

	// Relations, each optionally paired with a "<field>_count" twin when
	// the kind is collection-shaped and counts are enabled.
	for _, rel := range b.resolveRelations(model) {
		if !ms.HasField(rel.FieldName) {
			ms.Fields = append(ms.Fields, FieldDescriptor{
				Name:         rel.FieldName,
				DeclaredType: string(rel.Kind),
				Kind:         KindRelation,
				RelatedModel: rel.RelatedModel,
				Pivot:        rel.Pivot,
			})
		}
		if rel.Kind.IsCollection() && b.opts.IncludeCounts {
			countField := rel.FieldName + CountSuffix
			if !ms.HasField(countField) {
				ms.Fields = append(ms.Fields, FieldDescriptor{
					Name:         countField,
					DeclaredType: "integer",
					Kind:         KindScalar,
				})
			}
		}
	}

	b.enrichNullability(model, ms)
	return ms
}

// enrichNullability marks scalar fields nullable from column constraint
// metadata when the run has a nullability source. This closes the gap the
// deny-list heuristic leaves: real column nullability that never shows up
// in fillable or cast metadata.
func (b *Builder) enrichNullability(model Model, ms *ModelSchema) {
	if b.opts.Nullability == nil {
		return
	}
	columns, err := b.opts.Nullability.NullableColumns(ms.Table)
	if err != nil {
		b.diags.Skipf(ms.Name, "", "nullability introspection failed: %v", err)
		return
	}
	for i := range ms.Fields {
		fd := &ms.Fields[i]
		if fd.Kind == KindScalar && columns[fd.Name] {
			fd.Nullable = true
		}
	}
}

// overrideDescriptor builds a descriptor from an override value. Values
// containing a path separator are external-module references; everything
// else is TypeScript type text carried verbatim, with a top-level null
// branch marking the field nullable.
func (b *Builder) overrideDescriptor(field, value string) FieldDescriptor {
	if isImportReference(value) {
		return FieldDescriptor{
			Name:         field,
			DeclaredType: value,
			Kind:         KindImport,
		}
	}
	return FieldDescriptor{
		Name:         field,
		DeclaredType: value,
		Kind:         KindScalar,
		Verbatim:     true,
		Nullable:     tstype.HasNullBranch(value),
	}
}

// isImportReference reports whether an override value encodes an external
// module reference: "<path>|<TypeName>" or a bare "<path>".
func isImportReference(value string) bool {
	path := value
	if idx := strings.IndexByte(value, '|'); idx >= 0 {
		path = value[:idx]
	}
	return strings.ContainsRune(path, '/')
}
