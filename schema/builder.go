package schema

import (
	"sort"
	"strings"

	"github.com/modelts/modelts/schema/diag"
	"github.com/modelts/modelts/tstype"
)

// GlobalOverridePrefix marks an override key that applies to every model.
const GlobalOverridePrefix = "?"

// NullabilitySource reports which columns of a table accept NULL. It is an
// optional enrichment hook backed by database introspection.
type NullabilitySource interface {
	NullableColumns(table string) (map[string]bool, error)
}

// Options configures one schema build.
type Options struct {
	// IncludeCounts adds a synthetic "<field>_count" numeric field next to
	// every collection-shaped relation.
	IncludeCounts bool
	// Overrides maps override keys to type values. A key is either
	// "?field" (added to every model) or "Model.field" (added to one).
	// Values are TypeScript type text, or an import reference of the form
	// "<path>|<TypeName>" / "<path>".
	Overrides map[string]string
	// Nullability, when set, marks scalar fields nullable from column
	// constraint metadata.
	Nullability NullabilitySource
}

// Builder runs the extraction pipeline: discover registered models, extract
// each model's ordered field list, then apply global and per-model field
// overrides. The resulting SchemaMap is immutable for the rest of the run.
type Builder struct {
	registry *Registry
	mapper   *tstype.Mapper
	analyzer *Analyzer
	opts     Options
	diags    *diag.Diagnostics

	globalOverrides []overrideEntry
	modelOverrides  map[string][]overrideEntry
}

type overrideEntry struct {
	Field string
	Value string
}

// NewBuilder returns a builder over the registry with the given options.
// Configuration is threaded through here explicitly; the builder reads no
// ambient state.
func NewBuilder(registry *Registry, opts Options) *Builder {
	mapper := tstype.NewMapper(registry.ValueObjectNames())
	b := &Builder{
		registry:       registry,
		mapper:         mapper,
		analyzer:       NewAnalyzer(registry, mapper),
		opts:           opts,
		diags:          diag.New(),
		modelOverrides: make(map[string][]overrideEntry),
	}
	b.parseOverrides()
	return b
}

// Mapper returns the type mapper bound to this build's value-object set.
func (b *Builder) Mapper() *tstype.Mapper { return b.mapper }

// Registry returns the registry this build reads from.
func (b *Builder) Registry() *Registry { return b.registry }

// Diagnostics returns the warnings collected during the build.
func (b *Builder) Diagnostics() *diag.Diagnostics { return b.diags }

// Build extracts every registered model and applies the override passes.
// The global pass runs first and skips fields already extracted; the
// per-model pass runs second and skips fields already present, including
// ones the global pass just added, so an override given both globally and
// per-model resolves to the global value.
func (b *Builder) Build() *SchemaMap {
	schemas := NewSchemaMap()
	for _, model := range b.registry.Models() {
		schemas.Add(b.extractFields(model))
	}

	for _, ms := range schemas.Models() {
		for _, entry := range b.globalOverrides {
			if !ms.HasField(entry.Field) {
				ms.Fields = append(ms.Fields, b.overrideDescriptor(entry.Field, entry.Value))
			}
		}
	}

	for _, ms := range schemas.Models() {
		for _, entry := range b.modelOverrides[ms.Name] {
			if !ms.HasField(entry.Field) {
				ms.Fields = append(ms.Fields, b.overrideDescriptor(entry.Field, entry.Value))
			}
		}
	}

	return schemas
}

// parseOverrides splits the configured override map into the global and
// per-model tables. Config maps carry no order, so entries are sorted by
// key to keep appended field order deterministic across runs.
func (b *Builder) parseOverrides() {
	keys := make([]string, 0, len(b.opts.Overrides))
	for key := range b.opts.Overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := b.opts.Overrides[key]
		switch {
		case strings.HasPrefix(key, GlobalOverridePrefix):
			field := strings.TrimPrefix(key, GlobalOverridePrefix)
			if field == "" {
				b.diags.Skipf("", key, "override key has no field name")
				continue
			}
			b.globalOverrides = append(b.globalOverrides, overrideEntry{Field: field, Value: value})
		case strings.Contains(key, "."):
			parts := strings.SplitN(key, ".", 2)
			model, field := parts[0], parts[1]
			if model == "" || field == "" {
				b.diags.Skipf("", key, "override key is not Model.field")
				continue
			}
			b.modelOverrides[model] = append(b.modelOverrides[model], overrideEntry{Field: field, Value: value})
		default:
			b.diags.Skipf("", key, "override key must be %q-prefixed or Model.field", GlobalOverridePrefix)
		}
	}
}

// hasOverride reports whether a field has a global or per-model override.
func (b *Builder) hasOverride(model, field string) bool {
	for _, entry := range b.globalOverrides {
		if entry.Field == field {
			return true
		}
	}
	for _, entry := range b.modelOverrides[model] {
		if entry.Field == field {
			return true
		}
	}
	return false
}

// overrideFor returns the per-model override value for a field, if any.
func overrideFor(entries []overrideEntry, field string) (string, bool) {
	for _, entry := range entries {
		if entry.Field == field {
			return entry.Value, true
		}
	}
	return "", false
}
