// Copyright 2025-2026 Contentloop

package connector

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/rs/zerolog"
)

// requestRecord captures one request hitting the fake Strapi server.
type requestRecord struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeStrapi wraps an httptest.Server simulating the Strapi API. Responses
// are queued per method+path and served in order, which makes sequential
// pagination observable in tests.
type fakeStrapi struct {
	Server *httptest.Server

	mu        sync.Mutex
	requests  []requestRecord
	responses map[string][]string
}

func newFakeStrapi() *fakeStrapi {
	f := &fakeStrapi{
		responses: make(map[string][]string),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeStrapi) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, requestRecord{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(body),
	})
	key := r.Method + " " + r.URL.Path
	queue := f.responses[key]
	f.mu.Unlock()

	if len(queue) == 0 {
		http.Error(w, `{"error":{"status":404}}`, http.StatusNotFound)
		return
	}

	f.mu.Lock()
	resp := queue[0]
	f.responses[key] = queue[1:]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(resp))
}

// Respond queues one response body for a method+path pair. Queued responses
// are consumed in order; repeated calls model successive pages.
func (f *fakeStrapi) Respond(method, path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + " " + path
	f.responses[key] = append(f.responses[key], body)
}

// Requests returns a copy of all recorded requests.
func (f *fakeStrapi) Requests() []requestRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]requestRecord, len(f.requests))
	copy(cp, f.requests)
	return cp
}

// RequestsTo returns recorded requests matching a method+path pair.
func (f *fakeStrapi) RequestsTo(method, path string) []requestRecord {
	var out []requestRecord
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeStrapi) Close() {
	f.Server.Close()
}

// newTestMapper builds a mapper over a store preloaded with the given
// models.
func newTestMapper(models ...Model) (*Mapper, *Store) {
	store := NewStore()
	store.ReplaceModels(models)
	return NewMapper(store, zerolog.Nop()), store
}
