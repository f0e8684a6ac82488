// Copyright 2025-2026 Contentloop

package connector

import "testing"

func TestMakeDocumentID(t *testing.T) {
	t.Parallel()
	got := MakeDocumentID("blog_post", "42")
	if got != "blog_post#42" {
		t.Errorf("MakeDocumentID: got %q, want %q", got, "blog_post#42")
	}
}

func TestParseDocumentID(t *testing.T) {
	t.Parallel()
	modelName, sourceID, ok := ParseDocumentID("tag#7")
	if !ok {
		t.Fatal("ParseDocumentID: not ok")
	}
	if modelName != "tag" {
		t.Errorf("modelName: got %q, want %q", modelName, "tag")
	}
	if sourceID != "7" {
		t.Errorf("sourceID: got %q, want %q", sourceID, "7")
	}
}

func TestParseDocumentIDNoSeparator(t *testing.T) {
	t.Parallel()
	_, _, ok := ParseDocumentID("plain-string")
	if ok {
		t.Error("ParseDocumentID should fail without separator")
	}
}

func TestParseDocumentIDSplitsOnFirstSeparator(t *testing.T) {
	t.Parallel()
	modelName, sourceID, ok := ParseDocumentID("tag#id#with#hashes")
	if !ok {
		t.Fatal("ParseDocumentID: not ok")
	}
	if modelName != "tag" {
		t.Errorf("modelName: got %q, want %q", modelName, "tag")
	}
	if sourceID != "id#with#hashes" {
		t.Errorf("sourceID: got %q, want %q", sourceID, "id#with#hashes")
	}
}

func TestDocumentIDRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		model string
		id    string
	}{
		{"tag", "3"},
		{"blog_post", "abc-123"},
		{"hero_banner", "0"},
	}
	for _, tt := range tests {
		modelName, sourceID, ok := ParseDocumentID(MakeDocumentID(tt.model, tt.id))
		if !ok || modelName != tt.model || sourceID != tt.id {
			t.Errorf("round trip (%q, %q): got (%q, %q, %v)", tt.model, tt.id, modelName, sourceID, ok)
		}
	}
}
