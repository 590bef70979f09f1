package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelts/modelts/schema"
)

type fakeModel struct {
	name       string
	pk         string
	fillable   []string
	casts      map[string]string
	timestamps bool
	relations  []schema.Relation
}

func (m fakeModel) ModelName() string            { return m.name }
func (m fakeModel) PrimaryKey() string           { return m.pk }
func (m fakeModel) Fillable() []string           { return m.fillable }
func (m fakeModel) Casts() map[string]string     { return m.casts }
func (m fakeModel) Timestamps() bool             { return m.timestamps }
func (m fakeModel) Relations() []schema.Relation { return m.relations }

type tableNamedModel struct {
	fakeModel
	table string
}

func (m tableNamedModel) TableName() string { return m.table }

func TestRegistryRegisterPreservesOrder(t *testing.T) {
	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(
		fakeModel{name: "User"},
		fakeModel{name: "Post"},
		fakeModel{name: "Tag"},
	))

	var names []string
	for _, m := range reg.Models() {
		names = append(names, m.ModelName())
	}
	assert.Equal(t, []string{"User", "Post", "Tag"}, names)
	assert.Equal(t, "Post", reg.Model("Post").ModelName())
	assert.Nil(t, reg.Model("Missing"))
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := schema.NewRegistry()
	require.NoError(t, reg.Register(fakeModel{name: "User"}))

	err := reg.Register(fakeModel{name: "User"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	reg := schema.NewRegistry()
	require.Error(t, reg.Register(fakeModel{}))
}

func TestRegistryMergeConflicts(t *testing.T) {
	a := schema.NewRegistry()
	require.NoError(t, a.Register(fakeModel{name: "User"}))

	b := schema.NewRegistry()
	require.NoError(t, b.Register(fakeModel{name: "Post"}, fakeModel{name: "Tag"}))

	require.NoError(t, a.Merge(b))
	assert.Len(t, a.Models(), 3)

	c := schema.NewRegistry()
	require.NoError(t, c.Register(fakeModel{name: "Post"}))
	require.Error(t, a.Merge(c))
}

func TestRegistryValueObjectNamesKeepOrder(t *testing.T) {
	reg := schema.NewRegistry()
	reg.RegisterValueObject(&testAddress{})
	reg.RegisterValueObject(&testGeoPoint{})
	reg.RegisterValueObject(&testAddress{}) // re-registering does not reorder

	assert.Equal(t, []string{"testAddress", "testGeoPoint"}, reg.ValueObjectNames())

	typ, ok := reg.ValueObjectType("testAddress")
	require.True(t, ok)
	assert.Equal(t, "testAddress", typ.Name())

	_, ok = reg.ValueObjectType("Missing")
	assert.False(t, ok)
}

func TestTableFor(t *testing.T) {
	assert.Equal(t, "users", schema.TableFor(fakeModel{name: "User"}))
	assert.Equal(t, "blog_posts", schema.TableFor(fakeModel{name: "BlogPost"}))
	assert.Equal(t, "categories", schema.TableFor(fakeModel{name: "Category"}))
	assert.Equal(t, "members", schema.TableFor(tableNamedModel{
		fakeModel: fakeModel{name: "User"},
		table:     "members",
	}))
}
