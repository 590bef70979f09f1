package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarningString(t *testing.T) {
	assert.Equal(t, "User.address: bad cast",
		Warning{Model: "User", Field: "address", Message: "bad cast"}.String())
	assert.Equal(t, "User: no primary key",
		Warning{Model: "User", Message: "no primary key"}.String())
	assert.Equal(t, "orphaned reference",
		Warning{Message: "orphaned reference"}.String())
}

func TestDiagnosticsCollect(t *testing.T) {
	d := New()
	assert.False(t, d.HasWarnings())

	d.Skipf("User", "posts", "relation kind %q is unknown", "Sideways")
	d.Skipf("Post", "", "missing table")

	assert.True(t, d.HasWarnings())
	warnings := d.Warnings()
	assert.Len(t, warnings, 2)
	assert.Equal(t, `relation kind "Sideways" is unknown`, warnings[0].Message)
	assert.Equal(t, "Post", warnings[1].Model)
}

func TestToPrettyStringListsEveryWarning(t *testing.T) {
	d := New()
	d.Skipf("User", "a", "first")
	d.Skipf("User", "b", "second")

	out := d.ToPrettyString()
	assert.Contains(t, out, "User.a: first")
	assert.Contains(t, out, "User.b: second")
}
