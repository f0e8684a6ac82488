// Copyright 2025-2026 Contentloop

package connector

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/multierr"
)

// publishedAtAttribute is the source attribute carrying the publish
// timestamp. It never appears in the model's declared fields.
const publishedAtAttribute = "publishedAt"

// MapDocuments converts a batch of source documents into normalized
// documents. Documents are independent: a document whose model is missing or
// whose fields cannot be converted is reported and skipped, never aborting
// the batch. The returned error aggregates the per-document failures.
func (m *Mapper) MapDocuments(docs []SourceDocument) ([]Document, error) {
	out := make([]Document, 0, len(docs))
	var errs error
	for _, doc := range docs {
		mapped, err := m.MapDocument(doc)
		if err != nil {
			m.log.Error().Err(err).
				Str("source_id", doc.ID).
				Str("type", doc.Type).
				Msg("Failed to map document")
			errs = multierr.Append(errs, fmt.Errorf("document %s: %w", doc.ID, err))
			continue
		}
		out = append(out, mapped)
	}
	return out, errs
}

// MapDocument converts one source document into its normalized form.
func (m *Mapper) MapDocument(doc SourceDocument) (Document, error) {
	name := NormalizeModelName(doc.Type)
	model, ok := m.models.ModelByName(name)
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}

	status := StatusPublished
	if model.Context.DraftAndPublish && doc.Attributes[publishedAtAttribute] == nil {
		status = StatusAdded
	}

	fields, err := m.mapFields(model, doc.Attributes)
	if err != nil {
		return Document{}, err
	}

	return Document{
		ID:        MakeDocumentID(name, doc.ID),
		ModelName: name,
		Status:    status,
		Fields:    fields,
	}, nil
}

// mapFields joins document attributes against the model's declared fields.
// Attributes with a null value, or with no matching model field, are dropped
// silently; an attribute whose field shape cannot be converted fails the
// whole document.
func (m *Mapper) mapFields(model Model, attrs map[string]any) (map[string]FieldValue, error) {
	byName := make(map[string]Field, len(model.Fields))
	for _, f := range model.Fields {
		byName[f.Name] = f
	}

	fields := make(map[string]FieldValue)
	for name, raw := range attrs {
		if raw == nil {
			continue
		}
		field, ok := byName[name]
		if !ok {
			continue
		}
		value, ok, err := m.mapFieldValue(field, raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		if !ok {
			continue
		}
		fields[name] = value
	}
	return fields, nil
}

// mapFieldValue converts one raw attribute value per the field's declared
// shape. ok is false when the value is legitimately empty (an unwrapped or
// absent relation) and the field should be omitted.
func (m *Mapper) mapFieldValue(field Field, raw any) (FieldValue, bool, error) {
	switch field.Type {
	case FieldString, FieldText, FieldEnum, FieldNumber, FieldBoolean, FieldDatetime, FieldJSON:
		return FieldValue{Type: field.Type, Value: raw}, true, nil

	case FieldFile:
		// Assets are referenced by bare source id; they are not documents in
		// the cache, so the id is not composite-encoded.
		id, ok := unwrapRelation(raw)
		if !ok {
			return FieldValue{}, false, nil
		}
		return FieldValue{Type: FieldFile, RefType: RefAsset, RefID: id}, true, nil

	case FieldReference:
		id, ok := unwrapRelation(raw)
		if !ok {
			return FieldValue{}, false, nil
		}
		// Singular references encode the field's declared name, not the
		// target model's name. List references below use the target model
		// name. The asymmetry is load-bearing: downstream id splitting
		// depends on which side produced the id. Do not unify.
		return FieldValue{
			Type:    FieldReference,
			RefType: RefDocument,
			RefID:   MakeDocumentID(field.Name, id),
		}, true, nil

	case FieldList:
		return m.mapListValue(field, raw)

	case FieldModel:
		nested, err := m.mapComponentValue(field.Models, raw)
		if err != nil {
			return FieldValue{}, false, err
		}
		return FieldValue{Type: FieldModel, Fields: nested}, true, nil

	default:
		return FieldValue{}, false, fmt.Errorf("%w: %s", ErrUnsupportedFieldType, field.Type)
	}
}

// mapListValue converts a repeatable relation or component value.
func (m *Mapper) mapListValue(field Field, raw any) (FieldValue, bool, error) {
	if field.Items == nil {
		return FieldValue{}, false, fmt.Errorf("%w: list without item shape", ErrUnsupportedFieldType)
	}

	switch field.Items.Type {
	case FieldReference:
		entries, ok := unwrapRelationList(raw)
		if !ok {
			return FieldValue{}, false, nil
		}
		target := field.Items.Models[0]
		items := make([]FieldValue, 0, len(entries))
		for _, entry := range entries {
			id, ok := entryID(entry)
			if !ok {
				continue
			}
			items = append(items, FieldValue{
				Type:    FieldReference,
				RefType: RefDocument,
				RefID:   MakeDocumentID(target, id),
			})
		}
		return FieldValue{Type: FieldList, Items: items}, true, nil

	case FieldModel:
		entries, ok := raw.([]any)
		if !ok {
			return FieldValue{}, false, nil
		}
		items := make([]FieldValue, 0, len(entries))
		for _, entry := range entries {
			nested, err := m.mapComponentValue(field.Items.Models, entry)
			if err != nil {
				return FieldValue{}, false, err
			}
			items = append(items, FieldValue{Type: FieldModel, Fields: nested})
		}
		return FieldValue{Type: FieldList, Items: items}, true, nil

	default:
		return FieldValue{}, false, fmt.Errorf("%w: list of %s", ErrUnsupportedFieldType, field.Items.Type)
	}
}

// mapComponentValue recurses into a nested component object, running the same
// field-joining rule against the component's model. Recursion depth is
// bounded by actual document nesting; component graphs are acyclic at the
// schema level.
func (m *Mapper) mapComponentValue(models []string, raw any) (map[string]FieldValue, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("%w: component without target model", ErrUnsupportedFieldType)
	}
	component, ok := m.models.ModelByName(models[0])
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, models[0])
	}
	attrs, ok := raw.(map[string]any)
	if !ok {
		return map[string]FieldValue{}, nil
	}
	return m.mapFields(component, attrs)
}

// unwrapRelation extracts the source id from the wrapped {data: {id}} form.
// ok is false for unwrapped or absent data.
func unwrapRelation(raw any) (string, bool) {
	wrapper, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}
	return entryID(wrapper["data"])
}

// unwrapRelationList extracts the entries of a wrapped {data: [...]} form.
func unwrapRelationList(raw any) ([]any, bool) {
	wrapper, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	entries, ok := wrapper["data"].([]any)
	return entries, ok
}

// entryID pulls the id out of one relation data entry and renders it as a
// string. Strapi ids decode as numbers from JSON.
func entryID(entry any) (string, bool) {
	data, ok := entry.(map[string]any)
	if !ok {
		return "", false
	}
	return sourceIDString(data["id"])
}

// sourceIDString renders a raw id value as its canonical string form.
func sourceIDString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case json.Number:
		return id.String(), true
	default:
		return "", false
	}
}
