// Copyright 2025-2026 Contentloop

// Package connector adapts a Strapi headless CMS to a site builder's
// content-source contract: it pulls the CMS schema and documents, converts
// them into a normalized model/document representation, and pushes
// host-issued field edits back as Strapi write requests.
//
// # Core Types
//
// [StrapiConnector] owns the lifecycle: full sync at start (schema first,
// then documents), serialized refreshes, write-back entry points, and the
// admin HTTP API at POST /api/refresh.
//
// [Mapper] is the mapping engine. MapSchema converts content-type and
// component definitions into normalized models; MapDocuments converts raw
// entries into normalized documents, recursing through nested components;
// FromInitialFields and FromEditOperations mirror the document mapping for
// the write path.
//
// [Store] is the process-lifetime cache of normalized models and documents,
// written wholesale on refresh and read by every mapping call.
//
// [Client] wraps the Strapi v4 REST surface: schema listings, per-type
// settings, paginated collections, and the content write endpoints.
//
// # Composite IDs
//
// Documents are identified as {modelName}#{sourceID} (see [MakeDocumentID]).
// Every reference resolution and every write-back depends on splitting this
// string unambiguously, so the separator must never appear in a normalized
// model name.
//
// # Error Policy
//
// Schema drift (unknown attribute tags) degrades to dropped fields with a
// logged diagnostic. Per-document failures are isolated; the batch
// continues. Unsupported field shapes and edit operations fail loudly. The
// two tiers are deliberate and must not be unified.
package connector
