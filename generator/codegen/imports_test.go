package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitImportRef(t *testing.T) {
	path, name := SplitImportRef("@app/types|Meta")
	assert.Equal(t, "@app/types", path)
	assert.Equal(t, "Meta", name)

	path, name = SplitImportRef("@app/types/Avatar")
	assert.Equal(t, "@app/types/Avatar", path)
	assert.Equal(t, "Avatar", name)
}

func TestImportCollectorRender(t *testing.T) {
	c := NewImportCollector()
	assert.True(t, c.Empty())

	c.Add("@app/types|Meta")
	c.Add("@app/types|Avatar")
	c.Add("@app/types|Meta") // duplicate type under the same path
	c.Add("@lib/json-ld/Node")

	var sb strings.Builder
	c.Render(&sb)
	assert.Equal(t,
		"import { Meta, Avatar } from '@app/types';\n"+
			"import { Node } from '@lib/json-ld/Node';\n\n",
		sb.String())
}

func TestImportCollectorRendersNothingWhenEmpty(t *testing.T) {
	var sb strings.Builder
	NewImportCollector().Render(&sb)
	assert.Empty(t, sb.String())
}
