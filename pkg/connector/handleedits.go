// Copyright 2025-2026 Contentloop

package connector

import "fmt"

// WritePayload is the field map sent to the Strapi write endpoints as the
// body's data member.
type WritePayload map[string]any

// FromInitialFields converts host-provided initial field values into a write
// payload for document creation. Scalar values pass through; references are
// reduced to their source id. Composite shapes (file, model, list) are not
// writable and fail loudly.
func FromInitialFields(fields map[string]FieldValue) (WritePayload, error) {
	payload := make(WritePayload, len(fields))
	for name, value := range fields {
		v, err := extractFieldValue(value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		payload[name] = v
	}
	return payload, nil
}

// FromEditOperations converts host-issued edit operations into a write
// payload. Set operations extract the new value by its declared type; unset
// operations write the key with a null value (the key stays present, Strapi
// clears the field). Any other operation type fails the whole request; the
// failing operation contributes no payload fragment and later operations are
// not processed.
//
// Only fieldPath[0] is consulted. Deeper segments (nested edits inside a
// model or list field) are silently ignored; this is a known gap.
func FromEditOperations(ops []EditOperation) (WritePayload, error) {
	payload := make(WritePayload, len(ops))
	for _, op := range ops {
		if len(op.FieldPath) == 0 {
			return nil, fmt.Errorf("%w: edit operation without field path", ErrUnsupportedOperation)
		}
		name := op.FieldPath[0]

		switch op.Op {
		case OpSet:
			if op.Value == nil {
				return nil, fmt.Errorf("field %s: %w: set without value", name, ErrUnsupportedOperation)
			}
			v, err := extractFieldValue(*op.Value)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			payload[name] = v

		case OpUnset:
			if !isWritableFieldType(op.FieldType) {
				return nil, fmt.Errorf("field %s: %w: %s", name, ErrUnsupportedFieldType, op.FieldType)
			}
			payload[name] = nil

		default:
			return nil, fmt.Errorf("field %s: %w: %q", name, ErrUnsupportedOperation, op.Op)
		}
	}
	return payload, nil
}

// extractFieldValue pulls the writable value out of one normalized field
// value by its declared type.
func extractFieldValue(value FieldValue) (any, error) {
	switch value.Type {
	case FieldString, FieldText, FieldEnum, FieldNumber, FieldBoolean, FieldDatetime, FieldJSON:
		return value.Value, nil
	case FieldReference:
		if _, sourceID, ok := ParseDocumentID(value.RefID); ok {
			return sourceID, nil
		}
		return value.RefID, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFieldType, value.Type)
	}
}

// isWritableFieldType reports whether the write path supports clearing a
// field of the given type.
func isWritableFieldType(ft FieldType) bool {
	switch ft {
	case FieldString, FieldText, FieldEnum, FieldNumber, FieldBoolean, FieldDatetime, FieldJSON, FieldReference:
		return true
	default:
		return false
	}
}
