// Copyright 2025-2026 Contentloop

package connector

import "strings"

// DocumentIDSeparator joins a normalized model name and a source id into the
// composite document id the host platform understands. It must never occur in
// a normalized model name; Strapi api ids are slugs, so that holds in
// practice. Source ids are assumed not to contain it.
const DocumentIDSeparator = "#"

// MakeDocumentID creates the composite document id for a source entry.
func MakeDocumentID(modelName, sourceID string) string {
	return modelName + DocumentIDSeparator + sourceID
}

// ParseDocumentID splits a composite document id back into its model name and
// source id. The split happens on the first separator, so a separator inside
// the source id round-trips. ok is false when the separator is absent.
func ParseDocumentID(id string) (modelName, sourceID string, ok bool) {
	return strings.Cut(id, DocumentIDSeparator)
}
