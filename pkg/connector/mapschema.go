// Copyright 2025-2026 Contentloop

package connector

import "strings"

// contentTypeUIDPrefix marks top-level content types. Everything else
// (component uids like "sections.hero-banner") maps to an object model.
const contentTypeUIDPrefix = "api::"

// MapSchema converts the full set of source content-type and component
// definitions, plus per-type settings, into the normalized model list. It is
// pure over its inputs; the caller installs the result into the store before
// any document mapping starts.
func (m *Mapper) MapSchema(models []SourceModel, settings []TypeSettings) []Model {
	mainFields := make(map[string]string, len(settings))
	for _, s := range settings {
		mainFields[s.UID] = s.MainField
	}

	out := make([]Model, 0, len(models))
	for _, sm := range models {
		modelType := ModelTypeObject
		if strings.HasPrefix(sm.UID, contentTypeUIDPrefix) {
			modelType = ModelTypeData
		}

		model := Model{
			Type:       modelType,
			Name:       NormalizeModelName(sm.APIID),
			LabelField: mainFields[sm.UID],
			Context: ModelContext{
				DraftAndPublish: sm.DraftAndPublish,
				APIEndpoint:     sm.PluralName,
			},
			Fields: m.mapAttributes(sm),
		}
		out = append(out, model)
	}
	return out
}

// mapAttributes classifies every attribute of one source model, preserving
// declaration order as field order. If two attributes normalize to the same
// field name the later one overwrites the earlier in place; this is a known
// limitation, not hardened.
func (m *Mapper) mapAttributes(sm SourceModel) []Field {
	fields := make([]Field, 0, len(sm.Attributes))
	index := make(map[string]int, len(sm.Attributes))

	for _, attr := range sm.Attributes {
		spec, ok := m.classifyAttribute(sm.UID, attr)
		if !ok {
			continue
		}
		field := Field{Name: attr.Name, FieldSpec: spec}
		if i, dup := index[field.Name]; dup {
			fields[i] = field
			continue
		}
		index[field.Name] = len(fields)
		fields = append(fields, field)
	}
	return fields
}
