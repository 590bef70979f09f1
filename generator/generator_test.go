package generator_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelts/modelts/generator"
	"github.com/modelts/modelts/schema"
)

type Address struct {
	Street string    `json:"street"`
	Geo    *GeoPoint `json:"geo"`
}

func (a *Address) FromMap(values map[string]any) error { return nil }
func (a *Address) ToMap() map[string]any               { return nil }

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (g *GeoPoint) FromMap(values map[string]any) error { return nil }
func (g *GeoPoint) ToMap() map[string]any               { return nil }

type JsonLdData struct {
	Raw map[string]any `json:"raw"`
}

func (j *JsonLdData) FromMap(values map[string]any) error { return nil }
func (j *JsonLdData) ToMap() map[string]any               { return nil }

type testModel struct {
	name       string
	pk         string
	fillable   []string
	casts      map[string]string
	timestamps bool
	relations  []schema.Relation
}

func (m testModel) ModelName() string            { return m.name }
func (m testModel) PrimaryKey() string           { return m.pk }
func (m testModel) Fillable() []string           { return m.fillable }
func (m testModel) Casts() map[string]string     { return m.casts }
func (m testModel) Timestamps() bool             { return m.timestamps }
func (m testModel) Relations() []schema.Relation { return m.relations }

type typedCast struct{ ret reflect.Type }

func (c typedCast) Cast(value any) (any, error) { return value, nil }
func (c typedCast) ReturnType() reflect.Type    { return c.ret }

var fixedNow = func() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func newBlogRegistry(t *testing.T) *schema.Registry {
	t.Helper()

	post := testModel{
		name:     "Post",
		pk:       "id",
		fillable: []string{"title", "published_at"},
		casts:    map[string]string{"published_at": "datetime"},
	}
	user := testModel{
		name:       "User",
		pk:         "id",
		fillable:   []string{"name", "email", "address"},
		casts:      map[string]string{"address": "addr"},
		timestamps: true,
		relations: []schema.Relation{
			{Name: "Posts", Kind: schema.HasMany, Related: post},
		},
	}
	post.relations = []schema.Relation{
		{Name: "Author", Kind: schema.BelongsTo, Related: user},
	}

	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(user, post))
	reg.RegisterCast("addr", typedCast{ret: reflect.TypeOf(&Address{})})
	reg.RegisterValueObject(&Address{})
	reg.RegisterValueObject(&GeoPoint{})
	return reg
}

func renderBlog(t *testing.T, reg *schema.Registry, buildOpts schema.Options, genOpts generator.Options, fs afero.Fs) string {
	t.Helper()

	builder := schema.NewBuilder(reg, buildOpts)
	schemas := builder.Build()
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	genOpts.Now = fixedNow
	return generator.New(fs, schemas, reg, builder.Mapper(), builder.Diagnostics(), genOpts).Render()
}

func TestRenderFullOutput(t *testing.T) {
	reg := newBlogRegistry(t)
	got := renderBlog(t, reg,
		schema.Options{
			IncludeCounts: true,
			Overrides: map[string]string{
				"User.avatar": "@app/types|Avatar",
			},
		},
		generator.Options{OutputPath: "out/models.d.ts"},
		nil,
	)

	want := `/**
 * Generated TypeScript interfaces
 *
 * This file is auto-generated. Do not edit directly.
 * Run ` + "`modelts generate`" + ` to regenerate it.
 *
 * @generated 2024-05-01 12:00:00
*/

import { Avatar } from '@app/types';

export interface IAddress {
    street: string;
    geo?: IGeoPoint;
}

export interface IGeoPoint {
    lat: number;
    lng: number;
}

export interface IUser {
    id: number;
    name: string;
    email: string;
    address?: IAddress | null;
    created_at: string;
    updated_at: string;
    posts?: IPost[];
    posts_count?: number;
    avatar: Avatar;
}

export interface IPost {
    id: number;
    title: string;
    published_at: string;
    author?: IUser;
}
`
	assert.Equal(t, want, got)
}

func TestRenderIsStableAcrossRuns(t *testing.T) {
	reg := newBlogRegistry(t)
	opts := schema.Options{IncludeCounts: true}

	first := renderBlog(t, reg, opts, generator.Options{}, nil)
	second := renderBlog(t, reg, opts, generator.Options{}, nil)
	assert.Equal(t, first, second)
}

func TestRenderDeduplicatesSharedValueObjects(t *testing.T) {
	reg := schema.NewRegistry()
	home := testModel{
		name:     "Home",
		pk:       "id",
		fillable: []string{"address"},
		casts:    map[string]string{"address": "addr"},
	}
	office := testModel{
		name:     "Office",
		pk:       "id",
		fillable: []string{"address"},
		casts:    map[string]string{"address": "addr"},
	}
	require.NoError(t, reg.Register(home, office))
	reg.RegisterCast("addr", typedCast{ret: reflect.TypeOf(&Address{})})
	reg.RegisterValueObject(&Address{})
	reg.RegisterValueObject(&GeoPoint{})

	got := renderBlog(t, reg, schema.Options{}, generator.Options{}, nil)
	assert.Equal(t, 1, strings.Count(got, "export interface IAddress {"))
	assert.Equal(t, 1, strings.Count(got, "export interface IGeoPoint {"))
}

func TestRenderJsonLdReservedName(t *testing.T) {
	reg := schema.NewRegistry()
	doc := testModel{
		name:     "Document",
		pk:       "id",
		fillable: []string{"linked_data"},
		casts:    map[string]string{"linked_data": "jsonld"},
	}
	require.NoError(t, reg.Register(doc))
	reg.RegisterCast("jsonld", typedCast{ret: reflect.TypeOf(&JsonLdData{})})
	reg.RegisterValueObject(&JsonLdData{})

	got := renderBlog(t, reg, schema.Options{}, generator.Options{IncludeJsonLd: true}, nil)

	assert.NotContains(t, got, "export interface IJsonLdData")
	assert.Contains(t, got, "linked_data?: JsonLdRawNode | null;")
	assert.Contains(t, got, "export interface JsonLdRawNode {")
	assert.Contains(t, got, "[key: string]: unknown;")
}

func TestRenderJsonLdDisabledEmitsPlainInterface(t *testing.T) {
	reg := schema.NewRegistry()
	doc := testModel{
		name:     "Document",
		pk:       "id",
		fillable: []string{"linked_data"},
		casts:    map[string]string{"linked_data": "jsonld"},
	}
	require.NoError(t, reg.Register(doc))
	reg.RegisterCast("jsonld", typedCast{ret: reflect.TypeOf(&JsonLdData{})})
	reg.RegisterValueObject(&JsonLdData{})

	got := renderBlog(t, reg, schema.Options{}, generator.Options{}, nil)

	assert.Contains(t, got, "export interface IJsonLdData {")
	assert.Contains(t, got, "linked_data?: IJsonLdData | null;")
	assert.NotContains(t, got, "JsonLdRawNode")
}

func TestRenderKnownNullableFieldsAreOptional(t *testing.T) {
	reg := schema.NewRegistry()
	user := testModel{
		name:     "User",
		pk:       "id",
		fillable: []string{"email", "email_verified_at", "remember_token", "deleted_at"},
	}
	require.NoError(t, reg.Register(user))

	got := renderBlog(t, reg, schema.Options{}, generator.Options{}, nil)
	assert.Contains(t, got, "email: string;")
	assert.Contains(t, got, "email_verified_at?: string;")
	assert.Contains(t, got, "remember_token?: string;")
	assert.Contains(t, got, "deleted_at?: string;")
}

func TestGenerateWritesOutputAndSchemaDump(t *testing.T) {
	reg := newBlogRegistry(t)
	builder := schema.NewBuilder(reg, schema.Options{})
	schemas := builder.Build()

	fs := afero.NewMemMapFs()
	gen := generator.New(fs, schemas, reg, builder.Mapper(), builder.Diagnostics(), generator.Options{
		OutputPath:     "resources/types/models.d.ts",
		SchemaDumpPath: "resources/types/schema.yaml",
		Now:            fixedNow,
	})
	require.NoError(t, gen.Generate())

	content, err := afero.ReadFile(fs, "resources/types/models.d.ts")
	require.NoError(t, err)
	assert.Contains(t, string(content), "export interface IUser {")

	dump, err := afero.ReadFile(fs, "resources/types/schema.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(dump), "name: User")
	assert.Contains(t, string(dump), "kind: relation")
}

func TestGenerateJSONSchemaDump(t *testing.T) {
	reg := newBlogRegistry(t)
	builder := schema.NewBuilder(reg, schema.Options{})
	schemas := builder.Build()

	fs := afero.NewMemMapFs()
	gen := generator.New(fs, schemas, reg, builder.Mapper(), builder.Diagnostics(), generator.Options{
		OutputPath:     "models.d.ts",
		SchemaDumpPath: "schema.json",
		Now:            fixedNow,
	})
	require.NoError(t, gen.Generate())

	dump, err := afero.ReadFile(fs, "schema.json")
	require.NoError(t, err)
	assert.Contains(t, string(dump), `"name": "User"`)
	assert.Contains(t, string(dump), `"kind": "relation"`)
}
