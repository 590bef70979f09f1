// Package generator renders a built schema into the generated TypeScript
// interface file: header banner, import declarations, value-object
// interfaces, model interfaces, and optionally the auxiliary JSON-LD
// interface, concatenated in that order and written in one shot.
package generator

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/modelts/modelts/generator/codegen"
	"github.com/modelts/modelts/internal/debug"
	"github.com/modelts/modelts/schema"
	"github.com/modelts/modelts/schema/diag"
	"github.com/modelts/modelts/tstype"
)

// RegenerateCommand is named in the generated header so consumers know how
// to refresh the file.
const RegenerateCommand = "modelts generate"

// Options configures one generation run. All state is explicit; the
// generator reads no ambient configuration.
type Options struct {
	// OutputPath is the destination of the generated interface file.
	OutputPath string
	// IncludeJsonLd appends the auxiliary JsonLdRawNode interface and
	// special-cases fields referencing the reserved JsonLdData name.
	IncludeJsonLd bool
	// SchemaDumpPath, when set, persists the normalized schema next to
	// the generated file for debugging. ".yaml"/".yml" extensions dump
	// YAML, everything else JSON.
	SchemaDumpPath string
	// Now stamps the header; defaults to time.Now. Injectable so tests
	// can pin the only non-deterministic byte of the output.
	Now func() time.Time
}

// Generator sequences the emitters over a built schema and writes the
// result to the output sink.
type Generator struct {
	schemas  *schema.SchemaMap
	registry *schema.Registry
	mapper   *tstype.Mapper
	diags    *diag.Diagnostics
	fs       afero.Fs
	opts     Options
}

// New returns a generator over a built schema. The filesystem is injected
// so tests run against an in-memory one.
func New(fs afero.Fs, schemas *schema.SchemaMap, registry *schema.Registry, mapper *tstype.Mapper, diags *diag.Diagnostics, opts Options) *Generator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{
		schemas:  schemas,
		registry: registry,
		mapper:   mapper,
		diags:    diags,
		fs:       fs,
		opts:     opts,
	}
}

// Generate renders the full file and writes it once. Output write failures
// are the only terminal errors of the generation pipeline.
func (g *Generator) Generate() error {
	debug.Debug("Starting generation", "models", g.schemas.Len(), "output", g.opts.OutputPath)

	content := g.Render()
	if err := codegen.WriteFile(g.fs, g.opts.OutputPath, []byte(content)); err != nil {
		return err
	}
	debug.Debug("Wrote generated interfaces", "bytes", len(content))

	if g.opts.SchemaDumpPath != "" {
		if err := g.dumpSchema(); err != nil {
			return err
		}
		debug.Debug("Wrote schema dump", "path", g.opts.SchemaDumpPath)
	}
	return nil
}

// Render produces the complete file text. Apart from the embedded
// timestamp, rendering the same schema twice yields identical bytes.
func (g *Generator) Render() string {
	emitter := codegen.NewEmitter(g.schemas, g.registry, g.mapper, g.diags, g.opts.IncludeJsonLd)
	emitter.CollectImports()

	var sb strings.Builder
	g.writeHeader(&sb)
	emitter.Imports().Render(&sb)
	emitter.EmitValueObjects(&sb)
	emitter.EmitModels(&sb)
	emitter.EmitAuxiliary(&sb)
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// writeHeader emits the static banner plus the generation timestamp.
func (g *Generator) writeHeader(sb *strings.Builder) {
	sb.WriteString("/**\n")
	sb.WriteString(" * Generated TypeScript interfaces\n")
	sb.WriteString(" *\n")
	sb.WriteString(" * This file is auto-generated. Do not edit directly.\n")
	fmt.Fprintf(sb, " * Run `%s` to regenerate it.\n", RegenerateCommand)
	sb.WriteString(" *\n")
	fmt.Fprintf(sb, " * @generated %s\n", g.opts.Now().Format("2006-01-02 15:04:05"))
	sb.WriteString("*/\n\n")
}

// dumpSchema persists the normalized schema as structured data, unrelated
// to the generated interfaces.
func (g *Generator) dumpSchema() error {
	models := g.schemas.Models()

	var data []byte
	var err error
	if strings.HasSuffix(g.opts.SchemaDumpPath, ".yaml") || strings.HasSuffix(g.opts.SchemaDumpPath, ".yml") {
		data, err = yaml.Marshal(models)
	} else {
		data, err = json.MarshalIndent(models, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("failed to marshal schema dump: %w", err)
	}
	return codegen.WriteFile(g.fs, g.opts.SchemaDumpPath, data)
}
