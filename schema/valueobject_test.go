package schema_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelts/modelts/schema"
	"github.com/modelts/modelts/tstype"
)

type testGeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (g *testGeoPoint) FromMap(values map[string]any) error { return nil }
func (g *testGeoPoint) ToMap() map[string]any               { return nil }

type testAddress struct {
	Street   string         `json:"street"`
	CityName string         // no tag, snake-cased
	Geo      *testGeoPoint  `json:"geo"`
	Tags     []string       `json:"tags"`
	Kind     string         `json:"kind" ts:"'home'|'work'|null"`
	Country  string         `json:"country" default:"US"`
	MovedAt  time.Time      `json:"moved_at"`
	Meta     map[string]any `json:"meta"`
	hidden   string
	Ignored  string `json:"-"`
}

func (a *testAddress) FromMap(values map[string]any) error { return nil }
func (a *testAddress) ToMap() map[string]any               { return nil }

type notAValueObject struct {
	Name string
}

func newTestAnalyzer(t *testing.T) (*schema.Registry, *schema.Analyzer) {
	t.Helper()
	reg := schema.NewRegistry()
	reg.RegisterValueObject(&testAddress{})
	reg.RegisterValueObject(&testGeoPoint{})
	mapper := tstype.NewMapper(reg.ValueObjectNames())
	return reg, schema.NewAnalyzer(reg, mapper)
}

func TestAnalyzerIsValueObject(t *testing.T) {
	_, analyzer := newTestAnalyzer(t)

	assert.True(t, analyzer.IsValueObject(reflect.TypeOf(testAddress{})))
	assert.True(t, analyzer.IsValueObject(reflect.TypeOf(&testAddress{})))
	assert.False(t, analyzer.IsValueObject(reflect.TypeOf(notAValueObject{})))
	assert.False(t, analyzer.IsValueObject(reflect.TypeOf("")))
	assert.False(t, analyzer.IsValueObject(nil))
}

func TestAnalyzerFields(t *testing.T) {
	_, analyzer := newTestAnalyzer(t)

	fields := analyzer.Fields(reflect.TypeOf(&testAddress{}))
	require.Len(t, fields, 8)

	byName := make(map[string]schema.ValueObjectField)
	var order []string
	for _, f := range fields {
		byName[f.Name] = f
		order = append(order, f.Name)
	}

	// Declaration order, unexported and json-ignored fields skipped.
	assert.Equal(t, []string{
		"street", "city_name", "geo", "tags", "kind", "country", "moved_at", "meta",
	}, order)

	assert.Equal(t, "string", byName["street"].MappedType)
	assert.Equal(t, "string", byName["city_name"].MappedType)

	geo := byName["geo"]
	assert.Equal(t, "testGeoPoint", geo.RawType)
	assert.Equal(t, "ItestGeoPoint", geo.MappedType)
	assert.True(t, geo.Nullable)
	assert.Equal(t, []string{"testGeoPoint"}, geo.Refs)
	assert.True(t, geo.Optional())

	assert.Equal(t, "array<int, string>", byName["tags"].RawType)
	assert.Equal(t, "string[]", byName["tags"].MappedType)

	kind := byName["kind"]
	assert.Equal(t, "'home' | 'work'", kind.MappedType)
	assert.True(t, kind.Nullable)
	assert.Empty(t, kind.Refs)

	country := byName["country"]
	assert.Equal(t, "string", country.MappedType)
	assert.True(t, country.HasDefault)
	assert.True(t, country.Optional())

	assert.Equal(t, "datetime", byName["moved_at"].RawType)
	assert.Equal(t, "string", byName["moved_at"].MappedType)

	assert.Equal(t, "Record<string, unknown>", byName["meta"].MappedType)
}

func TestAnalyzerFieldsOnNonStruct(t *testing.T) {
	_, analyzer := newTestAnalyzer(t)
	assert.Nil(t, analyzer.Fields(reflect.TypeOf("")))
}
