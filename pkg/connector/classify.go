// Copyright 2025-2026 Contentloop

package connector

import "strings"

// scalarFieldTypes is the fixed 1:1 mapping from scalar-kind source
// attribute tags to normalized field types.
var scalarFieldTypes = map[SourceAttributeType]FieldType{
	AttrBoolean:     FieldBoolean,
	AttrInteger:     FieldNumber,
	AttrFloat:       FieldNumber,
	AttrString:      FieldString,
	AttrDatetime:    FieldDatetime,
	AttrJSON:        FieldJSON,
	AttrText:        FieldText,
	AttrRichText:    FieldText,
	AttrEnumeration: FieldEnum,
}

// NormalizeModelName converts a namespaced identifier (content-type uid,
// component uid, or bare apiID) into a normalized model name: the namespace
// prefix is stripped and hyphens become underscores. The same function is
// used everywhere a model name is derived, forwards and backwards; deriving a
// name any other way breaks joins silently.
func NormalizeModelName(ref string) string {
	if i := strings.LastIndex(ref, "."); i >= 0 {
		ref = ref[i+1:]
	}
	return strings.ReplaceAll(ref, "-", "_")
}

// classifyAttribute decides which normalized field shape one source attribute
// becomes. Unknown tags and unknown relation cardinalities are dropped with a
// diagnostic rather than failing schema loading; new Strapi attribute types
// must not take the whole project down.
func (m *Mapper) classifyAttribute(modelUID string, attr SourceAttribute) (FieldSpec, bool) {
	if ft, ok := scalarFieldTypes[attr.Type]; ok {
		return FieldSpec{
			Type:     ft,
			Required: attr.Required,
			Default:  attr.Default,
		}, true
	}

	switch attr.Type {
	case AttrRelation:
		target := NormalizeModelName(attr.Target)
		switch attr.Relation {
		case RelationOneToMany, RelationManyToMany:
			return FieldSpec{
				Type:  FieldList,
				Items: &FieldSpec{Type: FieldReference, Models: []string{target}},
			}, true
		case RelationOneToOne, RelationManyToOne:
			return FieldSpec{Type: FieldReference, Models: []string{target}}, true
		default:
			m.log.Warn().
				Str("model", modelUID).
				Str("attribute", attr.Name).
				Str("relation", string(attr.Relation)).
				Msg("Dropping relation attribute with unknown cardinality")
			return FieldSpec{}, false
		}

	case AttrComponent:
		component := NormalizeModelName(attr.Component)
		if attr.Repeatable {
			return FieldSpec{
				Type:  FieldList,
				Items: &FieldSpec{Type: FieldModel, Models: []string{component}},
			}, true
		}
		return FieldSpec{Type: FieldModel, Models: []string{component}}, true

	case AttrMedia:
		return FieldSpec{Type: FieldFile}, true

	default:
		m.log.Warn().
			Str("model", modelUID).
			Str("attribute", attr.Name).
			Str("type", string(attr.Type)).
			Msg("Dropping attribute with unknown type")
		return FieldSpec{}, false
	}
}
