// Copyright 2025-2026 Contentloop

package connector

import (
	"errors"
	"fmt"
)

// Mapping failures come in two tiers: silent drops (unknown attribute tags,
// null values, attributes with no matching field) and loud errors (the
// sentinels below). The distinction is deliberate; callers rely on being able
// to tell "present but unmappable" from "absent".
var (
	// ErrModelNotFound means a document references a model absent from the
	// installed model set. Per-document, never fatal to a batch.
	ErrModelNotFound = errors.New("model not found")

	// ErrUnsupportedFieldType means a field shape this mapper cannot convert.
	// Fatal to the single document or write request being processed.
	ErrUnsupportedFieldType = errors.New("unsupported field type")

	// ErrUnsupportedOperation means an edit operation outside {set, unset}.
	// Fatal to that write request.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrBadDocumentID means a composite document id could not be split into
	// model name and source id.
	ErrBadDocumentID = errors.New("malformed document id")
)

// APIError is a non-2xx response from the Strapi API.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("strapi api: %s returned %d: %s", e.Path, e.Status, e.Body)
}
