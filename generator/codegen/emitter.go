package codegen

import (
	"github.com/modelts/modelts/schema"
	"github.com/modelts/modelts/schema/diag"
	"github.com/modelts/modelts/tstype"
)

// ReservedJsonLdName is the value-object name that never gets its own
// interface: fields referencing it render as the fixed JsonLdRawNode
// auxiliary interface instead.
const ReservedJsonLdName = "JsonLdData"

// indent is the member indentation of emitted interfaces.
const indent = "    "

// Emitter holds the generation run's mutable state: the processed-name
// dedupe set, the pending queue of recursively discovered value objects,
// and the import table. One Emitter serves exactly one run and is not
// shared with extraction.
type Emitter struct {
	schemas       *schema.SchemaMap
	registry      *schema.Registry
	mapper        *tstype.Mapper
	analyzer      *schema.Analyzer
	diags         *diag.Diagnostics
	includeJsonLd bool

	processed map[string]bool
	pending   []string
	enqueued  map[string]bool
	imports   *ImportCollector
}

// NewEmitter returns an emitter over a built schema. The analyzer resolves
// queued value-object names back to struct types during the drain phase.
func NewEmitter(schemas *schema.SchemaMap, registry *schema.Registry, mapper *tstype.Mapper, diags *diag.Diagnostics, includeJsonLd bool) *Emitter {
	return &Emitter{
		schemas:       schemas,
		registry:      registry,
		mapper:        mapper,
		analyzer:      schema.NewAnalyzer(registry, mapper),
		diags:         diags,
		includeJsonLd: includeJsonLd,
		processed:     make(map[string]bool),
		enqueued:      make(map[string]bool),
		imports:       NewImportCollector(),
	}
}

// Imports returns the import table, populated by CollectImports.
func (e *Emitter) Imports() *ImportCollector { return e.imports }

// CollectImports walks every field of every model and records external
// type references. Runs before rendering so the import block can precede
// the interface declarations.
func (e *Emitter) CollectImports() {
	for _, ms := range e.schemas.Models() {
		for _, fd := range ms.Fields {
			if fd.Kind == schema.KindImport {
				e.imports.Add(fd.DeclaredType)
			}
		}
	}
}

// interfaceName applies the fixed interface naming convention.
func interfaceName(short string) string {
	return tstype.InterfacePrefix + short
}

// markProcessed records an interface name; returns false when it was
// already present.
func (e *Emitter) markProcessed(name string) bool {
	if e.processed[name] {
		return false
	}
	e.processed[name] = true
	return true
}

// enqueue adds a value-object short name to the pending work list unless
// it was already emitted or is already waiting.
func (e *Emitter) enqueue(short string) {
	if e.processed[interfaceName(short)] || e.enqueued[short] {
		return
	}
	e.enqueued[short] = true
	e.pending = append(e.pending, short)
}
