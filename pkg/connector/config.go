// Copyright 2025-2026 Contentloop

package connector

import (
	_ "embed"
	"fmt"

	up "go.mau.fi/util/configupgrade"
	"gopkg.in/yaml.v3"
)

//go:embed example-config.yaml
var ExampleConfig string

// Config holds the Strapi connection settings.
type Config struct {
	ServerURL string `yaml:"server_url"`
	// APIToken is a Strapi API token sent as a bearer header. Leave empty
	// for unauthenticated read access.
	APIToken string `yaml:"api_token"`
	PageSize int    `yaml:"page_size"`
	// RequestTimeout is the per-request timeout in seconds.
	RequestTimeout int `yaml:"request_timeout_seconds"`
	// AdminAPIAddr is the listen address for the admin HTTP API that serves
	// the /api/refresh endpoint. Leave empty to disable it.
	AdminAPIAddr string `yaml:"admin_api_addr"`
	// ExcludedTypes lists content-type uids to skip entirely during schema
	// and document sync.
	ExcludedTypes []string `yaml:"excluded_types"`

	excludedTypes map[string]struct{} `yaml:"-"`
}

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type rawConfig Config
	return node.Decode((*rawConfig)(c))
}

// PostProcess validates the config and fills defaults.
func (c *Config) PostProcess() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if c.PageSize <= 0 {
		c.PageSize = 100
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30
	}
	c.excludedTypes = make(map[string]struct{}, len(c.ExcludedTypes))
	for _, uid := range c.ExcludedTypes {
		c.excludedTypes[uid] = struct{}{}
	}
	return nil
}

// IsExcluded reports whether a content-type uid is configured to be skipped.
func (c *Config) IsExcluded(uid string) bool {
	_, ok := c.excludedTypes[uid]
	return ok
}

func upgradeConfig(helper up.Helper) {
	helper.Copy(up.Str, "server_url")
	helper.Copy(up.Str, "api_token")
	helper.Copy(up.Int, "page_size")
	helper.Copy(up.Int, "request_timeout_seconds")
	helper.Copy(up.Str, "admin_api_addr")
	helper.Copy(up.List, "excluded_types")
}

// ConfigUpgrader migrates existing config files onto the current example
// config layout.
func ConfigUpgrader() up.Upgrader {
	return &up.StructUpgrader{
		SimpleUpgrader: up.SimpleUpgrader(upgradeConfig),
		Blocks:         nil,
		Base:           ExampleConfig,
	}
}
