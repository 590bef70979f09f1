package schema

import (
	"fmt"
	"reflect"

	"github.com/go-openapi/inflect"
)

// Registry is the model discovery surface: models, custom casts, and value
// objects are registered explicitly, and registration order is the
// discovery order the rest of the pipeline preserves. A Registry is built
// once per run and not safe for concurrent mutation.
type Registry struct {
	order        []string
	models       map[string]Model
	casts        map[string]Caster
	valueObjects map[string]reflect.Type
	voOrder      []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		models:       make(map[string]Model),
		casts:        make(map[string]Caster),
		valueObjects: make(map[string]reflect.Type),
	}
}

// Register adds models to the registry. Registering a name twice is an
// error: duplicate model names would collide in the schema map and in the
// emitted interface names.
func (r *Registry) Register(models ...Model) error {
	for _, m := range models {
		name := m.ModelName()
		if name == "" {
			return fmt.Errorf("model %T has an empty name", m)
		}
		if _, ok := r.models[name]; ok {
			return fmt.Errorf("model %q registered twice", name)
		}
		r.models[name] = m
		r.order = append(r.order, name)
	}
	return nil
}

// MustRegister is Register that panics on error, for package init wiring.
func (r *Registry) MustRegister(models ...Model) {
	if err := r.Register(models...); err != nil {
		panic(err)
	}
}

// RegisterCast binds a cast tag to a caster. Model Casts() maps referring
// to the tag resolve through this table.
func (r *Registry) RegisterCast(tag string, c Caster) {
	r.casts[tag] = c
}

// RegisterValueObject records a value-object type under its short name so
// recursively discovered references can be resolved back to a concrete
// type. The argument may be a value or a pointer; the element type is
// stored.
func (r *Registry) RegisterValueObject(vo ValueObject) {
	t := reflect.TypeOf(vo)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if _, ok := r.valueObjects[name]; !ok {
		r.voOrder = append(r.voOrder, name)
	}
	r.valueObjects[name] = t
}

// Models returns registered models in registration order.
func (r *Registry) Models() []Model {
	models := make([]Model, 0, len(r.order))
	for _, name := range r.order {
		models = append(models, r.models[name])
	}
	return models
}

// Model returns the registered model with the given name, or nil.
func (r *Registry) Model(name string) Model {
	return r.models[name]
}

// Cast returns the caster bound to a tag, or nil.
func (r *Registry) Cast(tag string) Caster {
	return r.casts[tag]
}

// ValueObjectType resolves a value-object short name to its struct type.
func (r *Registry) ValueObjectType(name string) (reflect.Type, bool) {
	t, ok := r.valueObjects[name]
	return t, ok
}

// ValueObjectNames returns registered value-object names in registration
// order.
func (r *Registry) ValueObjectNames() []string {
	return append([]string(nil), r.voOrder...)
}

// Merge copies another registry's models, casts, and value objects into
// this one, preserving the other's internal order after the existing
// entries. Additional model sources are merged this way before a run.
func (r *Registry) Merge(other *Registry) error {
	for _, name := range other.order {
		if _, ok := r.models[name]; ok {
			return fmt.Errorf("model %q registered in both sources", name)
		}
		r.models[name] = other.models[name]
		r.order = append(r.order, name)
	}
	for tag, c := range other.casts {
		if _, ok := r.casts[tag]; !ok {
			r.casts[tag] = c
		}
	}
	for _, name := range other.voOrder {
		if _, ok := r.valueObjects[name]; !ok {
			r.valueObjects[name] = other.valueObjects[name]
			r.voOrder = append(r.voOrder, name)
		}
	}
	return nil
}

// TableFor returns the model's table name: an explicit TableName when the
// model provides one, else the pluralized snake-case of the model name.
func TableFor(m Model) string {
	if tn, ok := m.(TableNamer); ok {
		return tn.TableName()
	}
	return inflect.Pluralize(inflect.Underscore(m.ModelName()))
}

// timestampColumnsFor returns the model's timestamp column names.
func timestampColumnsFor(m Model) (string, string) {
	if tc, ok := m.(TimestampColumner); ok {
		return tc.TimestampColumns()
	}
	return "created_at", "updated_at"
}
