// Copyright 2025-2026 Contentloop

package connector

import "github.com/rs/zerolog"

// ModelLookup resolves normalized models by name. Every document and field
// mapping call depends on it; the full model set must be installed before the
// first document is mapped.
type ModelLookup interface {
	ModelByName(name string) (Model, bool)
}

// Mapper converts between the Strapi schema/document shapes and the
// normalized representation. All of its methods are pure over their inputs
// and the installed model set; it holds no mutable state of its own.
type Mapper struct {
	models ModelLookup
	log    zerolog.Logger
}

// NewMapper creates a Mapper resolving models through the given lookup.
func NewMapper(models ModelLookup, log zerolog.Logger) *Mapper {
	return &Mapper{
		models: models,
		log:    log.With().Str("component", "mapper").Logger(),
	}
}
