package schema

import (
	"github.com/go-openapi/inflect"
)

// RelationField is one resolved association: the schema field name it will
// occupy, the relation kind, the related model name, and pivot metadata for
// many-to-many kinds.
type RelationField struct {
	FieldName    string
	Kind         RelationKind
	RelatedModel string
	Pivot        *PivotInfo
}

// resolveRelations walks a model's relation declaration table. Declarations
// that cannot be resolved (an invalid kind, or a missing related model on
// a kind that requires one) are skipped with a diagnostic; partial
// relationship information never aborts extraction for the rest of the
// model.
func (b *Builder) resolveRelations(model Model) []RelationField {
	provider, ok := model.(RelationProvider)
	if !ok {
		return nil
	}

	var resolved []RelationField
	for _, rel := range provider.Relations() {
		if rel.Name == "" {
			b.diags.Skipf(model.ModelName(), "", "relation with empty name")
			continue
		}
		fieldName := inflect.Underscore(rel.Name)
		if !rel.Kind.Valid() {
			b.diags.Skipf(model.ModelName(), fieldName, "unknown relation kind %q", rel.Kind)
			continue
		}

		related := ""
		if rel.Related != nil {
			related = rel.Related.ModelName()
		}
		if related == "" && rel.Kind != MorphTo {
			b.diags.Skipf(model.ModelName(), fieldName, "%s relation has no related model", rel.Kind)
			continue
		}

		var pivot *PivotInfo
		if rel.Kind == BelongsToMany || rel.Kind == MorphToMany {
			pivot = rel.Pivot
		}

		resolved = append(resolved, RelationField{
			FieldName:    fieldName,
			Kind:         rel.Kind,
			RelatedModel: related,
			Pivot:        pivot,
		})
	}
	return resolved
}
