// Copyright 2025-2026 Contentloop

package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// StrapiConnector wires the Strapi client, the mapping engine, and the
// shared model/document store into the content-source lifecycle: full sync at
// start, serialized refreshes, and write-back of host-issued edits.
type StrapiConnector struct {
	Config Config

	client *Client
	store  *Store
	mapper *Mapper

	refreshMu sync.Mutex
	log       zerolog.Logger
}

// NewConnector creates a connector. Start must be called before any lookup
// or write-back method.
func NewConnector(cfg Config, log zerolog.Logger) *StrapiConnector {
	return &StrapiConnector{
		Config: cfg,
		log:    log.With().Str("component", "connector").Logger(),
	}
}

// Start validates the config, runs the initial full sync, and starts the
// admin API if configured. A schema fetch failure here is fatal; the mapping
// engine cannot run without the model set installed first.
func (sc *StrapiConnector) Start(ctx context.Context) error {
	if err := sc.Config.PostProcess(); err != nil {
		return fmt.Errorf("failed to post-process config: %w", err)
	}
	sc.client = NewClient(&sc.Config, sc.log)
	sc.store = NewStore()
	sc.mapper = NewMapper(sc.store, sc.log)

	if err := sc.Refresh(ctx); err != nil {
		return fmt.Errorf("initial sync: %w", err)
	}

	if sc.Config.AdminAPIAddr != "" {
		sc.startAdminAPI()
	}
	return nil
}

// Refresh re-runs the full schema and document sync. Refreshes are
// serialized; the store is only replaced with fully mapped sets. Per-document
// mapping failures degrade to skipped documents, never a global abort.
func (sc *StrapiConnector) Refresh(ctx context.Context) error {
	sc.refreshMu.Lock()
	defer sc.refreshMu.Unlock()

	models, err := sc.syncSchema(ctx)
	if err != nil {
		return err
	}
	// Document mapping looks up models by name, so the model set must be
	// installed before the first document is mapped.
	sc.store.ReplaceModels(models)

	docs, err := sc.syncDocuments(ctx, models)
	if err != nil {
		return err
	}
	sc.store.ReplaceDocuments(docs)

	sc.log.Info().
		Int("models", len(models)).
		Int("documents", len(docs)).
		Msg("Sync complete")
	return nil
}

// syncSchema fetches the three schema surfaces concurrently and maps them
// into the normalized model list.
func (sc *StrapiConnector) syncSchema(ctx context.Context) ([]Model, error) {
	var (
		contentTypes []SourceModel
		components   []SourceModel
		settings     []TypeSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		contentTypes, err = sc.client.FetchContentTypes(gctx)
		return err
	})
	g.Go(func() (err error) {
		components, err = sc.client.FetchComponents(gctx)
		return err
	})
	g.Go(func() (err error) {
		settings, err = sc.client.FetchTypeSettings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("schema fetch: %w", err)
	}

	source := make([]SourceModel, 0, len(contentTypes)+len(components))
	for _, ct := range contentTypes {
		if sc.Config.IsExcluded(ct.UID) {
			sc.log.Debug().Str("uid", ct.UID).Msg("Skipping excluded content type")
			continue
		}
		source = append(source, ct)
	}
	source = append(source, components...)

	return sc.mapper.MapSchema(source, settings), nil
}

// syncDocuments fetches and maps the document sets of all data models.
// Fetches run concurrently across content types; pages within one type are
// sequential inside the client.
func (sc *StrapiConnector) syncDocuments(ctx context.Context, models []Model) ([]Document, error) {
	var (
		mu  sync.Mutex
		all []Document
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, model := range models {
		if model.Type != ModelTypeData {
			continue
		}
		model := model
		g.Go(func() error {
			raw, err := sc.client.FetchDocuments(gctx, model)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", model.Name, err)
			}
			mapped, err := sc.mapper.MapDocuments(raw)
			if err != nil {
				sc.log.Warn().Err(err).
					Str("model", model.Name).
					Msg("Some documents failed to map")
			}
			mu.Lock()
			all = append(all, mapped...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

// GetModelByName resolves a normalized model from the installed set.
func (sc *StrapiConnector) GetModelByName(name string) (Model, bool) {
	return sc.store.ModelByName(name)
}

// GetModels returns the installed normalized model list.
func (sc *StrapiConnector) GetModels() []Model {
	return sc.store.Models()
}

// GetDocuments returns the cached documents of one normalized model.
func (sc *StrapiConnector) GetDocuments(modelName string) []Document {
	return sc.store.DocumentsByModel(modelName)
}

// CreateDocument converts host-provided initial fields into a create request
// and returns the new document's composite id. The created entry enters the
// cache on the next refresh or webhook ingestion.
func (sc *StrapiConnector) CreateDocument(ctx context.Context, modelName string, fields map[string]FieldValue) (string, error) {
	model, ok := sc.store.ModelByName(modelName)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrModelNotFound, modelName)
	}
	payload, err := FromInitialFields(fields)
	if err != nil {
		return "", err
	}
	sourceID, err := sc.client.CreateEntry(ctx, model.Context.APIEndpoint, payload)
	if err != nil {
		return "", err
	}
	return MakeDocumentID(modelName, sourceID), nil
}

// UpdateDocument converts host-issued edit operations into a single update
// request against the document's source entry. Operations are translated
// once and discarded; there is no operation log or retry queue.
func (sc *StrapiConnector) UpdateDocument(ctx context.Context, documentID string, ops []EditOperation) error {
	modelName, sourceID, ok := ParseDocumentID(documentID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrBadDocumentID, documentID)
	}
	model, found := sc.store.ModelByName(modelName)
	if !found {
		return fmt.Errorf("%w: %s", ErrModelNotFound, modelName)
	}
	payload, err := FromEditOperations(ops)
	if err != nil {
		return err
	}
	return sc.client.UpdateEntry(ctx, model.Context.APIEndpoint, sourceID, payload)
}

// DeleteDocument removes the document's source entry and evicts it from the
// cache.
func (sc *StrapiConnector) DeleteDocument(ctx context.Context, documentID string) error {
	modelName, sourceID, ok := ParseDocumentID(documentID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrBadDocumentID, documentID)
	}
	model, found := sc.store.ModelByName(modelName)
	if !found {
		return fmt.Errorf("%w: %s", ErrModelNotFound, modelName)
	}
	if err := sc.client.DeleteEntry(ctx, model.Context.APIEndpoint, sourceID); err != nil {
		return err
	}
	sc.store.RemoveDocument(documentID)
	return nil
}

// IngestDocument installs one already-mapped document into the cache. This
// is the local webhook ingestion path; the caller maps the document first.
func (sc *StrapiConnector) IngestDocument(doc Document) {
	sc.store.UpsertDocument(doc)
}

// startAdminAPI serves the refresh endpoint in the background.
func (sc *StrapiConnector) startAdminAPI() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/refresh", sc.HandleRefresh)
	server := &http.Server{
		Addr:         sc.Config.AdminAPIAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		sc.log.Info().Str("addr", sc.Config.AdminAPIAddr).Msg("Starting admin API")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sc.log.Error().Err(err).Msg("Admin API error")
		}
	}()
}

// HandleRefresh is an HTTP handler for POST /api/refresh. It re-runs the
// full sync and reports the resulting cache sizes.
func (sc *StrapiConnector) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sc.log.Info().Str("remote_addr", r.RemoteAddr).Msg("Refresh requested")
	if err := sc.Refresh(r.Context()); err != nil {
		sc.log.Error().Err(err).Msg("Refresh failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	resp := map[string]int{
		"models":    len(sc.store.Models()),
		"documents": sc.store.DocumentCount(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		sc.log.Warn().Err(err).Msg("Failed to write refresh response")
	}
}
