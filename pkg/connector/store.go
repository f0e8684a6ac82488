// Copyright 2025-2026 Contentloop

package connector

import "sync"

// Store is the process-lifetime cache of normalized models and documents.
// Both sets are replaced wholesale on refresh and read by every mapping
// call; the only field-level mutation is UpsertDocument, which installs an
// already-fully-mapped document from the webhook ingestion path. Concurrent
// refreshes are serialized by the connector.
type Store struct {
	mu        sync.RWMutex
	models    []Model
	byName    map[string]Model
	documents map[string]map[string]Document
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byName:    make(map[string]Model),
		documents: make(map[string]map[string]Document),
	}
}

// ReplaceModels installs a freshly mapped model set, discarding the previous
// one.
func (s *Store) ReplaceModels(models []Model) {
	byName := make(map[string]Model, len(models))
	for _, m := range models {
		byName[m.Name] = m
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = models
	s.byName = byName
}

// ModelByName implements ModelLookup.
func (s *Store) ModelByName(name string) (Model, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byName[name]
	return m, ok
}

// Models returns the installed model set in mapping order.
func (s *Store) Models() []Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Model, len(s.models))
	copy(out, s.models)
	return out
}

// ReplaceDocuments installs a freshly mapped document set, discarding the
// previous one.
func (s *Store) ReplaceDocuments(docs []Document) {
	byModel := make(map[string]map[string]Document)
	for _, d := range docs {
		m, ok := byModel[d.ModelName]
		if !ok {
			m = make(map[string]Document)
			byModel[d.ModelName] = m
		}
		m[d.ID] = d
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = byModel
}

// DocumentsByModel returns all cached documents of one normalized model.
func (s *Store) DocumentsByModel(name string) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.documents[name]
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, d)
	}
	return out
}

// Document looks up one cached document by its composite id.
func (s *Store) Document(id string) (Document, bool) {
	modelName, _, ok := ParseDocumentID(id)
	if !ok {
		return Document{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[modelName][id]
	return d, ok
}

// UpsertDocument installs or replaces one already-mapped document. This is
// the webhook ingestion path; the document must carry its final composite id
// and normalized model name.
func (s *Store) UpsertDocument(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.documents[doc.ModelName]
	if !ok {
		m = make(map[string]Document)
		s.documents[doc.ModelName] = m
	}
	m[doc.ID] = doc
}

// RemoveDocument deletes one cached document by composite id, reporting
// whether it was present.
func (s *Store) RemoveDocument(id string) bool {
	modelName, _, ok := ParseDocumentID(id)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, present := s.documents[modelName][id]; !present {
		return false
	}
	delete(s.documents[modelName], id)
	return true
}

// DocumentCount returns the total number of cached documents.
func (s *Store) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, docs := range s.documents {
		total += len(docs)
	}
	return total
}
