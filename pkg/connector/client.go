// Copyright 2025-2026 Contentloop

package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Client is a thin wrapper over the Strapi v4 REST surface: schema listings,
// per-type settings, paginated document collections, and the content write
// endpoints. It holds no cache and performs no mapping.
type Client struct {
	baseURL  string
	token    string
	pageSize int
	hc       *http.Client
	log      zerolog.Logger
}

// NewClient creates a client from a post-processed config.
func NewClient(cfg *Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.ServerURL, "/"),
		token:    cfg.APIToken,
		pageSize: cfg.PageSize,
		hc: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		log: log.With().Str("component", "strapi_client").Logger(),
	}
}

// FetchContentTypes lists all content-type definitions.
func (c *Client) FetchContentTypes(ctx context.Context) ([]SourceModel, error) {
	return c.fetchSchema(ctx, "/api/content-type-builder/content-types")
}

// FetchComponents lists all component definitions.
func (c *Client) FetchComponents(ctx context.Context) ([]SourceModel, error) {
	return c.fetchSchema(ctx, "/api/content-type-builder/components")
}

func (c *Client) fetchSchema(ctx context.Context, path string) ([]SourceModel, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	var models []SourceModel
	gjson.GetBytes(body, "data").ForEach(func(_, item gjson.Result) bool {
		models = append(models, parseSourceModel(item))
		return true
	})
	return models, nil
}

// parseSourceModel decodes one content-type-builder entry. gjson is used
// instead of struct decoding because attribute declaration order must be
// preserved; it becomes field order in the normalized model.
func parseSourceModel(item gjson.Result) SourceModel {
	draft := item.Get("schema.draftAndPublish")
	if !draft.Exists() {
		draft = item.Get("schema.options.draftAndPublish")
	}

	model := SourceModel{
		APIID:           item.Get("apiID").String(),
		UID:             item.Get("uid").String(),
		SingularName:    item.Get("schema.singularName").String(),
		PluralName:      item.Get("schema.pluralName").String(),
		DraftAndPublish: draft.Bool(),
	}

	item.Get("schema.attributes").ForEach(func(name, attr gjson.Result) bool {
		model.Attributes = append(model.Attributes, SourceAttribute{
			Name:       name.String(),
			Type:       SourceAttributeType(attr.Get("type").String()),
			Required:   attr.Get("required").Bool(),
			Default:    attr.Get("default").Value(),
			Component:  attr.Get("component").String(),
			Repeatable: attr.Get("repeatable").Bool(),
			Relation:   RelationKind(attr.Get("relation").String()),
			Target:     attr.Get("target").String(),
		})
		return true
	})
	return model
}

// FetchTypeSettings lists the per-type content-manager settings used to fill
// label fields.
func (c *Client) FetchTypeSettings(ctx context.Context) ([]TypeSettings, error) {
	body, err := c.get(ctx, "/api/content-manager/content-types")
	if err != nil {
		return nil, err
	}
	var settings []TypeSettings
	gjson.GetBytes(body, "data").ForEach(func(_, item gjson.Result) bool {
		settings = append(settings, TypeSettings{
			UID:       item.Get("uid").String(),
			MainField: item.Get("settings.mainField").String(),
		})
		return true
	})
	return settings, nil
}

// FetchDocuments fetches every entry of one content type. Pages are fetched
// strictly in sequence: each response declares the total page count, so the
// next request cannot be issued until the previous response is parsed.
// Fetches for different content types may run concurrently.
func (c *Client) FetchDocuments(ctx context.Context, model Model) ([]SourceDocument, error) {
	var docs []SourceDocument
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("populate", "*")
		query.Set("pagination[page]", strconv.Itoa(page))
		query.Set("pagination[pageSize]", strconv.Itoa(c.pageSize))
		body, err := c.get(ctx, "/api/"+model.Context.APIEndpoint+"?"+query.Encode())
		if err != nil {
			return nil, err
		}

		gjson.GetBytes(body, "data").ForEach(func(_, item gjson.Result) bool {
			attrs, _ := item.Get("attributes").Value().(map[string]any)
			docs = append(docs, SourceDocument{
				ID:         item.Get("id").String(),
				Type:       model.Name,
				Attributes: attrs,
			})
			return true
		})

		pageCount := gjson.GetBytes(body, "meta.pagination.pageCount").Int()
		if int64(page) >= pageCount {
			break
		}
	}
	c.log.Debug().Str("model", model.Name).Int("count", len(docs)).Msg("Fetched documents")
	return docs, nil
}

// CreateEntry creates one entry and returns its source id.
func (c *Client) CreateEntry(ctx context.Context, endpoint string, payload WritePayload) (string, error) {
	body, err := c.write(ctx, http.MethodPost, "/api/"+endpoint, payload)
	if err != nil {
		return "", err
	}
	id := gjson.GetBytes(body, "data.id")
	if !id.Exists() {
		return "", fmt.Errorf("create %s: response has no entry id", endpoint)
	}
	return id.String(), nil
}

// UpdateEntry replaces the given fields of one entry.
func (c *Client) UpdateEntry(ctx context.Context, endpoint, sourceID string, payload WritePayload) error {
	_, err := c.write(ctx, http.MethodPut, fmt.Sprintf("/api/%s/%s", endpoint, sourceID), payload)
	return err
}

// DeleteEntry removes one entry.
func (c *Client) DeleteEntry(ctx context.Context, endpoint, sourceID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/%s/%s", endpoint, sourceID), nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) write(ctx context.Context, method, path string, payload WritePayload) ([]byte, error) {
	body, err := json.Marshal(map[string]any{"data": payload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode write payload: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	requestID := uuid.NewString()
	c.log.Trace().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("Strapi request")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("strapi request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Str("path", req.URL.Path).
			Msg("Strapi request rejected")
		return nil, &APIError{
			Status: resp.StatusCode,
			Path:   req.URL.Path,
			Body:   truncate(string(body), 200),
		}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
