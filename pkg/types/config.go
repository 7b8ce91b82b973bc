// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format selects json (production) or console (development) encoding.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout bounds each request, including retries.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "health-report/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// RegistryConfig selects the content registry backend. URL takes
// precedence over File; with neither set the registry is empty and every
// item is routed by the fallback rules.
type RegistryConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// File is a YAML file of registry entries.
	File string `json:"file" yaml:"file" mapstructure:"file"`

	// URL is the base URL of a networked registry.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ExtractConfig holds settings for the extraction stage.
type ExtractConfig struct {
	// TablesFile optionally replaces the built-in chapter/dimension tables.
	TablesFile string `json:"tables_file" yaml:"tables_file" mapstructure:"tables_file"`

	// Workers bounds parallel document extraction in batch mode (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// IndexStride is the ordinal range reserved per document in batch mode
	// (default 1000).
	IndexStride int `json:"index_stride" yaml:"index_stride" mapstructure:"index_stride"`
}

// StoreConfig holds settings for the item store.
type StoreConfig struct {
	// Dir is the directory holding the SQLite database and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of list results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups the configuration of every stage.
type Config struct {
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
	Registry RegistryConfig `json:"registry" yaml:"registry" mapstructure:"registry"`
	Extract  ExtractConfig  `json:"extract" yaml:"extract" mapstructure:"extract"`
	Store    StoreConfig    `json:"store" yaml:"store" mapstructure:"store"`
}
