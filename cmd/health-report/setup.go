// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/health-report/internal/extract"
	"github.com/pdiddy/health-report/internal/registry"
	"github.com/pdiddy/health-report/internal/secrets"
	"github.com/pdiddy/health-report/internal/store"
)

// newEngine builds the extraction engine from cfg: tables from the
// configured file or the built-in vocabulary, and the registry from the
// configured URL, file, or neither.
func newEngine() (*extract.Engine, error) {
	var tables *registry.Tables
	if cfg.Extract.TablesFile != "" {
		t, err := registry.LoadTables(cfg.Extract.TablesFile)
		if err != nil {
			return nil, err
		}
		tables = t
	}

	reg, err := newRegistry()
	if err != nil {
		return nil, err
	}

	return extract.NewEngine(tables, reg,
		extract.WithLogger(logger),
		extract.WithLookupTimeout(cfg.Registry.Timeout),
	), nil
}

func newRegistry() (registry.Registry, error) {
	switch {
	case cfg.Registry.URL != "":
		logger.Debug("using networked registry", zap.String("url", cfg.Registry.URL))
		return registry.NewHTTPRegistry(http.DefaultClient, cfg.Registry, loadedSecrets.Get(secrets.RegistryToken), logger)
	case cfg.Registry.File != "":
		logger.Debug("using registry file", zap.String("path", cfg.Registry.File))
		return registry.LoadFile(cfg.Registry.File)
	}
	logger.Debug("no registry configured, using fallback routing")
	return nil, nil
}

func openStore() (*store.Store, error) {
	return store.Open(cfg.Store, logger)
}
