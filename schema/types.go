package schema

import "encoding/json"

// FieldKind discriminates what a FieldDescriptor describes. Exactly one
// kind applies to a field; the emitters dispatch on it.
type FieldKind int

const (
	// KindScalar is a plain column type tag mapped through the scalar table.
	KindScalar FieldKind = iota
	// KindRelation is a declared association to another model.
	KindRelation
	// KindValueObject is a cast that surfaces as a nested structured type.
	KindValueObject
	// KindImport is an override whose type lives in an external module.
	KindImport
)

// String returns the kind's name for schema dumps and diagnostics.
func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindRelation:
		return "relation"
	case KindValueObject:
		return "value-object"
	case KindImport:
		return "import"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the kind by name in schema dumps.
func (k FieldKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// MarshalYAML serializes the kind by name in schema dumps.
func (k FieldKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// PivotInfo carries the join-table half of a many-to-many relation: the
// accessor property name, the pivot model name, and its writable columns.
type PivotInfo struct {
	Accessor string   `json:"accessor" yaml:"accessor"`
	Model    string   `json:"model" yaml:"model"`
	Columns  []string `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// ValueObjectField is one property of a value-object type. MappedType is
// already TypeScript type text; RawType keeps the originating descriptor and
// Refs the value-object names it references, so nested discovery can walk
// structured data instead of re-parsing rendered output.
type ValueObjectField struct {
	Name       string   `json:"name" yaml:"name"`
	RawType    string   `json:"rawType" yaml:"rawType"`
	MappedType string   `json:"mappedType" yaml:"mappedType"`
	Nullable   bool     `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	HasDefault bool     `json:"hasDefault,omitempty" yaml:"hasDefault,omitempty"`
	Refs       []string `json:"-" yaml:"-"`
}

// Optional reports whether the property is rendered with the optional
// marker: nullable or defaulted, either way the consumer may omit it.
func (f ValueObjectField) Optional() bool {
	return f.Nullable || f.HasDefault
}

// FieldDescriptor is one row of a model's schema. Name order within a model
// is meaningful: it is the emitted interface member order.
type FieldDescriptor struct {
	Name         string    `json:"name" yaml:"name"`
	DeclaredType string    `json:"declaredType" yaml:"declaredType"`
	Kind         FieldKind `json:"kind" yaml:"kind"`
	Nullable     bool      `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	// Verbatim marks override-sourced types that are already TypeScript
	// text and must bypass the sentinel fallback.
	Verbatim bool `json:"verbatim,omitempty" yaml:"verbatim,omitempty"`

	// Relation fields.
	RelatedModel string     `json:"relatedModel,omitempty" yaml:"relatedModel,omitempty"`
	Pivot        *PivotInfo `json:"pivot,omitempty" yaml:"pivot,omitempty"`

	// Value-object fields.
	ValueObjectName string             `json:"valueObjectName,omitempty" yaml:"valueObjectName,omitempty"`
	IsArray         bool               `json:"isArray,omitempty" yaml:"isArray,omitempty"`
	Properties      []ValueObjectField `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// ModelSchema is the normalized, ordered field list of one model.
type ModelSchema struct {
	Name   string            `json:"name" yaml:"name"`
	Table  string            `json:"table" yaml:"table"`
	Fields []FieldDescriptor `json:"fields" yaml:"fields"`
}

// HasField reports whether a field with the given name was already added.
// Assembly steps check this before appending; the first writer wins.
func (s *ModelSchema) HasField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// SchemaMap holds every extracted model schema keyed by model name, with
// insertion order preserved. Insertion order is discovery order and the
// emitters keep it, so repeated runs over the same registry produce the
// same interface order.
type SchemaMap struct {
	order []string
	items map[string]*ModelSchema
}

// NewSchemaMap returns an empty map.
func NewSchemaMap() *SchemaMap {
	return &SchemaMap{items: make(map[string]*ModelSchema)}
}

// Add inserts a schema under its model name. Re-adding an existing name
// replaces the value but keeps the original position.
func (m *SchemaMap) Add(s *ModelSchema) {
	if _, ok := m.items[s.Name]; !ok {
		m.order = append(m.order, s.Name)
	}
	m.items[s.Name] = s
}

// Get returns the schema for a model name, or nil.
func (m *SchemaMap) Get(name string) *ModelSchema {
	return m.items[name]
}

// Names returns model names in insertion order.
func (m *SchemaMap) Names() []string {
	return m.order
}

// Models returns schemas in insertion order.
func (m *SchemaMap) Models() []*ModelSchema {
	models := make([]*ModelSchema, 0, len(m.order))
	for _, name := range m.order {
		models = append(models, m.items[name])
	}
	return models
}

// Len returns the number of models.
func (m *SchemaMap) Len() int { return len(m.order) }
