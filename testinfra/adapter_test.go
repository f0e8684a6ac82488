// Package testinfra runs end-to-end integration tests against a real Strapi
// instance plus a running strapi-content-source adapter.
//
// The full sync pipeline is tested: Strapi schema/document endpoints, the
// adapter's admin refresh API, and an entry write round-trip.
//
// Run:  STRAPI_URL=http://localhost:1337 STRAPI_TOKEN=... go test ./testinfra
package testinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

// ────────────────────────────────────────────────────────────────────
// Constants & shared state
// ────────────────────────────────────────────────────────────────────

var (
	strapiURL    string
	strapiToken  string
	adminURL     string // adapter admin API (port 29340)
	testEndpoint string // plural apiID of a writable content type, e.g. "blog-posts"
	testField    string // writable string attribute on that type
)

func TestMain(m *testing.M) {
	strapiURL = os.Getenv("STRAPI_URL")
	strapiToken = os.Getenv("STRAPI_TOKEN")
	adminURL = envOr("ADAPTER_ADMIN_URL", "http://localhost:29340")
	testEndpoint = envOr("STRAPI_TEST_ENDPOINT", "blog-posts")
	testField = envOr("STRAPI_TEST_FIELD", "title")

	if strapiURL == "" {
		fmt.Println("SKIP: STRAPI_URL required (point it at a running Strapi instance)")
		os.Exit(0)
	}

	os.Exit(m.Run())
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ────────────────────────────────────────────────────────────────────
// HTTP helpers
// ────────────────────────────────────────────────────────────────────

func doJSON(t testing.TB, method, url string, body any, token string) (int, map[string]any) {
	t.Helper()
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		bodyReader = bytes.NewReader(data)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("HTTP %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	var result map[string]any
	json.NewDecoder(resp.Body).Decode(&result) //nolint:errcheck
	return resp.StatusCode, result
}

func dataList(t *testing.T, resp map[string]any) []any {
	t.Helper()
	list, ok := resp["data"].([]any)
	if !ok {
		t.Fatalf("response has no data array: %v", resp)
	}
	return list
}

func entryID(t *testing.T, resp map[string]any) float64 {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	id, ok := data["id"].(float64)
	if !ok {
		t.Fatalf("entry has no numeric id: %v", data)
	}
	return id
}

// ────────────────────────────────────────────────────────────────────
// Strapi health
// ────────────────────────────────────────────────────────────────────

func TestStrapiContentTypesReachable(t *testing.T) {
	code, resp := doJSON(t, "GET", strapiURL+"/api/content-type-builder/content-types", nil, strapiToken)
	if code != 200 {
		t.Fatalf("content-types: %d %v", code, resp)
	}
	if len(dataList(t, resp)) == 0 {
		t.Fatal("Strapi reports no content types; seed the instance first")
	}
}

func TestStrapiComponentsReachable(t *testing.T) {
	code, resp := doJSON(t, "GET", strapiURL+"/api/content-type-builder/components", nil, strapiToken)
	if code != 200 {
		t.Fatalf("components: %d %v", code, resp)
	}
}

func TestStrapiSettingsReachable(t *testing.T) {
	code, resp := doJSON(t, "GET", strapiURL+"/api/content-manager/content-types", nil, strapiToken)
	if code != 200 {
		t.Fatalf("content-manager settings: %d %v", code, resp)
	}
}

func TestStrapiCollectionPaginates(t *testing.T) {
	url := strapiURL + "/api/" + testEndpoint + "?populate=%2A&pagination%5Bpage%5D=1&pagination%5BpageSize%5D=2"
	code, resp := doJSON(t, "GET", url, nil, strapiToken)
	if code != 200 {
		t.Fatalf("collection %s: %d %v", testEndpoint, code, resp)
	}
	meta, ok := resp["meta"].(map[string]any)
	if !ok {
		t.Fatalf("collection response has no meta: %v", resp)
	}
	if _, ok := meta["pagination"]; !ok {
		t.Fatalf("collection response has no pagination meta: %v", meta)
	}
}

// ────────────────────────────────────────────────────────────────────
// Adapter admin API
// ────────────────────────────────────────────────────────────────────

func TestAdapterRefresh(t *testing.T) {
	code, resp := doJSON(t, "POST", adminURL+"/api/refresh", nil, "")
	if code != 200 {
		t.Fatalf("refresh: %d %v", code, resp)
	}
	models, ok := resp["models"].(float64)
	if !ok || models == 0 {
		t.Fatalf("refresh reported no models: %v", resp)
	}
	t.Logf("refresh: %v models, %v documents", resp["models"], resp["documents"])
}

func TestAdapterRefreshRejectsGet(t *testing.T) {
	code, _ := doJSON(t, "GET", adminURL+"/api/refresh", nil, "")
	if code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /api/refresh: want 405, got %d", code)
	}
}

// ────────────────────────────────────────────────────────────────────
// Entry write round-trip
// ────────────────────────────────────────────────────────────────────

func TestEntryLifecycle(t *testing.T) {
	if strapiToken == "" {
		t.Skip("STRAPI_TOKEN required for write access")
	}
	collectionURL := strapiURL + "/api/" + testEndpoint

	marker := fmt.Sprintf("testinfra-%d", time.Now().UnixNano())
	code, resp := doJSON(t, "POST", collectionURL,
		map[string]any{"data": map[string]any{testField: marker}}, strapiToken)
	if code != 200 && code != 201 {
		t.Fatalf("create: %d %v", code, resp)
	}
	id := entryID(t, resp)
	entryURL := fmt.Sprintf("%s/%v", collectionURL, id)

	// Always clean up, even when the intermediate steps fail.
	defer doJSON(t, "DELETE", entryURL, nil, strapiToken)

	updated := marker + "-updated"
	code, resp = doJSON(t, "PUT", entryURL,
		map[string]any{"data": map[string]any{testField: updated}}, strapiToken)
	if code != 200 {
		t.Fatalf("update: %d %v", code, resp)
	}

	code, resp = doJSON(t, "GET", entryURL, nil, strapiToken)
	if code != 200 {
		t.Fatalf("read back: %d %v", code, resp)
	}
	data := resp["data"].(map[string]any)
	attrs, _ := data["attributes"].(map[string]any)
	if attrs[testField] != updated {
		t.Fatalf("read back %s: want %q, got %v", testField, updated, attrs[testField])
	}

	code, resp = doJSON(t, "DELETE", entryURL, nil, strapiToken)
	if code != 200 {
		t.Fatalf("delete: %d %v", code, resp)
	}
}
