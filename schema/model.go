// Package schema extracts a normalized, ordered schema from registered
// model metadata: declared attributes, casts, relationships, and nested
// value objects. The output is a SchemaMap the generator pipeline renders
// into TypeScript interfaces.
package schema

import "reflect"

// Model is the metadata surface a model type exposes to extraction.
// Fillable returns attribute names in declaration order; that order is
// preserved all the way into the emitted interface.
type Model interface {
	ModelName() string
	PrimaryKey() string
	Fillable() []string
	// Casts maps attribute names to cast tags. A tag is either a scalar
	// column type ("integer", "datetime") or the name of a registered
	// custom cast.
	Casts() map[string]string
	// Timestamps reports whether the model tracks creation/update times.
	Timestamps() bool
}

// TableNamer overrides the default pluralized snake-case table name.
type TableNamer interface {
	TableName() string
}

// TimestampColumner overrides the default created_at/updated_at column
// names.
type TimestampColumner interface {
	TimestampColumns() (createdAt, updatedAt string)
}

// RelationKind tags the association flavor a relation declares.
type RelationKind string

// Relation kinds. The collection-shaped kinds surface as arrays of the
// related interface and, when counts are enabled, gain a synthetic
// "<field>_count" twin.
const (
	HasOne         RelationKind = "HasOne"
	HasMany        RelationKind = "HasMany"
	BelongsTo      RelationKind = "BelongsTo"
	BelongsToMany  RelationKind = "BelongsToMany"
	HasOneThrough  RelationKind = "HasOneThrough"
	HasManyThrough RelationKind = "HasManyThrough"
	MorphOne       RelationKind = "MorphOne"
	MorphMany      RelationKind = "MorphMany"
	MorphTo        RelationKind = "MorphTo"
	MorphToMany    RelationKind = "MorphToMany"
)

// IsCollection reports whether the kind yields many related records.
func (k RelationKind) IsCollection() bool {
	switch k {
	case HasMany, BelongsToMany, HasManyThrough, MorphMany, MorphToMany:
		return true
	}
	return false
}

// Valid reports whether the kind is one of the declared constants.
func (k RelationKind) Valid() bool {
	switch k {
	case HasOne, HasMany, BelongsTo, BelongsToMany, HasOneThrough,
		HasManyThrough, MorphOne, MorphMany, MorphTo, MorphToMany:
		return true
	}
	return false
}

// Relation is one statically declared association. Related may be nil for
// MorphTo, whose target varies per row; every other kind requires it.
type Relation struct {
	Name    string
	Kind    RelationKind
	Related Model
	Pivot   *PivotInfo
}

// RelationProvider is implemented by models that declare associations.
// The declaration table replaces runtime accessor invocation: entries are
// plain data, so resolving them cannot touch a database connection.
type RelationProvider interface {
	Relations() []Relation
}

// Caster converts a stored column value to a richer in-memory value.
type Caster interface {
	Cast(value any) (any, error)
}

// StructuredCaster is implemented by casts whose values are value objects
// (or slices of them). ReturnType reports the concrete type Cast produces;
// a pointer type marks the attribute nullable, a slice type marks it a
// collection.
type StructuredCaster interface {
	Caster
	ReturnType() reflect.Type
}

// ValueObject is the capability marker for nested structured types: a type
// constructible from and convertible to a plain key-value structure.
// Satisfying the interface is the declaration; extraction never probes for
// methods by name.
type ValueObject interface {
	FromMap(values map[string]any) error
	ToMap() map[string]any
}

var valueObjectType = reflect.TypeOf((*ValueObject)(nil)).Elem()
