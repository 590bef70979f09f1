package schema

import (
	"reflect"
)

// ResolveCast turns a custom cast tag into a value-object field descriptor.
// Custom casts are the only mechanism by which a flat column surfaces as a
// nested structured type; everything that is not a StructuredCaster backed
// by a value object resolves to nil and the caller falls back to treating
// the tag as a plain scalar.
func (b *Builder) resolveCast(model Model, field, tag string) *FieldDescriptor {
	caster := b.registry.Cast(tag)
	if caster == nil {
		return nil
	}
	structured, ok := caster.(StructuredCaster)
	if !ok {
		b.diags.Skipf(model.ModelName(), field, "cast %q does not report a return type", tag)
		return nil
	}

	ret := structured.ReturnType()
	if ret == nil {
		b.diags.Skipf(model.ModelName(), field, "cast %q reports a nil return type", tag)
		return nil
	}

	nullable := ret.Kind() == reflect.Pointer
	elem := ret
	for elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}

	isArray := false
	if elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array {
		isArray = true
		elem = elem.Elem()
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
	}

	if !b.analyzer.IsValueObject(elem) {
		b.diags.Skipf(model.ModelName(), field, "cast %q returns %s, not a value object", tag, elem.String())
		return nil
	}

	name := elem.Name()
	declared := name
	if isArray {
		declared += "[]"
	}
	return &FieldDescriptor{
		Name:            field,
		DeclaredType:    declared,
		Kind:            KindValueObject,
		Nullable:        nullable,
		ValueObjectName: name,
		IsArray:         isArray,
		Properties:      b.analyzer.Fields(elem),
	}
}
