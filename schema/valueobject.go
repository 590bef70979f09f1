package schema

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-openapi/inflect"

	"github.com/modelts/modelts/tstype"
)

// Analyzer extracts the property list of a value-object type by reflecting
// over its exported struct fields. Field order is declaration order; the
// "ts" struct tag, when present, carries a type expression richer than the
// native field type (unions, generics) and takes precedence over it.
type Analyzer struct {
	registry *Registry
	mapper   *tstype.Mapper
}

// NewAnalyzer returns an analyzer bound to a registry and mapper.
func NewAnalyzer(registry *Registry, mapper *tstype.Mapper) *Analyzer {
	return &Analyzer{registry: registry, mapper: mapper}
}

// IsValueObject reports whether the type satisfies the ValueObject
// capability interface and is backed by a struct.
func (a *Analyzer) IsValueObject(t reflect.Type) bool {
	if t == nil {
		return false
	}
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct {
		return false
	}
	return t.Implements(valueObjectType) || reflect.PointerTo(base).Implements(valueObjectType)
}

// Fields returns the value object's properties in declaration order.
// Unexported and json-ignored fields are skipped. A field is nullable when
// its type is a pointer or its annotation carries a null branch, and
// defaulted when it declares a "default" tag.
func (a *Analyzer) Fields(t reflect.Type) []ValueObjectField {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []ValueObjectField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := fieldName(sf)
		if name == "-" {
			continue
		}

		_, hasDefault := sf.Tag.Lookup("default")
		field := ValueObjectField{
			Name:       name,
			Nullable:   sf.Type.Kind() == reflect.Pointer,
			HasDefault: hasDefault,
		}

		if annotation, ok := sf.Tag.Lookup("ts"); ok && annotation != "" {
			field.RawType = annotation
			// Annotations are hand-written type text; identifiers the
			// scalar table does not know survive verbatim.
			field.MappedType = a.mapper.MapLenient(annotation)
			if tstype.HasNullBranch(annotation) {
				field.Nullable = true
			}
			field.Refs = a.refsIn(annotation)
		} else {
			raw, refs := a.descriptorFor(sf.Type)
			field.RawType = raw
			field.MappedType = a.mapper.Map(raw)
			field.Refs = refs
		}

		fields = append(fields, field)
	}
	return fields
}

// refsIn returns the registered value-object names a descriptor references,
// walking its union branches and generic arguments.
func (a *Analyzer) refsIn(desc string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, leaf := range tstype.LeafNames(desc) {
		if _, ok := a.registry.ValueObjectType(leaf); ok && !seen[leaf] {
			seen[leaf] = true
			refs = append(refs, leaf)
		}
	}
	return refs
}

// descriptorFor derives a type descriptor from a native Go type. The
// descriptor goes through the same mapper as annotations, so native and
// annotated fields share one mapping path.
func (a *Analyzer) descriptorFor(t reflect.Type) (string, []string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == timeType {
		return "datetime", nil
	}
	if a.IsValueObject(t) {
		return t.Name(), []string{t.Name()}
	}

	switch t.Kind() {
	case reflect.String:
		return "string", nil
	case reflect.Bool:
		return "boolean", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer", nil
	case reflect.Float32, reflect.Float64:
		return "float", nil
	case reflect.Slice, reflect.Array:
		elem, refs := a.descriptorFor(t.Elem())
		return "array<int, " + elem + ">", refs
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			elem, refs := a.descriptorFor(t.Elem())
			return "array<string, " + elem + ">", refs
		}
		return "json", nil
	case reflect.Struct:
		return "json", nil
	case reflect.Interface:
		return "mixed", nil
	default:
		return "mixed", nil
	}
}

// fieldName returns the property name for a struct field: the json tag
// name when present, else the snake-cased field name.
func fieldName(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup("json"); ok && tag != "" {
		if idx := strings.IndexByte(tag, ','); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" {
			return tag
		}
	}
	return inflect.Underscore(sf.Name)
}

var timeType = reflect.TypeOf(time.Time{})
