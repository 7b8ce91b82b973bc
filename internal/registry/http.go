// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/health-report/internal/logging"
	"github.com/pdiddy/health-report/internal/httputil"
	"github.com/pdiddy/health-report/pkg/types"
)

// HTTPRegistry reads entries from a networked registry at
// GET <base>/entries/<source-file-type>. A 404 means no entry. Answers,
// including misses, are cached for the lifetime of the registry.
type HTTPRegistry struct {
	base   string
	token  string
	client *httputil.Client
	log    *zap.Logger

	mu    sync.RWMutex
	cache map[types.SourceFileType]*Entry
}

// NewHTTPRegistry builds a registry client for cfg.URL. token, when set,
// is sent as a bearer token.
func NewHTTPRegistry(hc *http.Client, cfg types.RegistryConfig, token string, logger *zap.Logger) (*HTTPRegistry, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid registry url %q", cfg.URL)
	}
	logger = logging.OrNop(logger)
	return &HTTPRegistry{
		base:   strings.TrimRight(cfg.URL, "/"),
		token:  token,
		client: httputil.NewClient(hc, cfg.HTTPConfig, cfg.MaxRetries, logger),
		log:    logger,
		cache:  make(map[types.SourceFileType]*Entry),
	}, nil
}

// Entry implements Registry.
func (r *HTTPRegistry) Entry(ctx context.Context, src types.SourceFileType) (*Entry, error) {
	r.mu.RLock()
	e, hit := r.cache[src]
	r.mu.RUnlock()
	if hit {
		if e == nil {
			return nil, nil
		}
		return e.clone(), nil
	}

	var header http.Header
	if r.token != "" {
		header = http.Header{"Authorization": []string{"Bearer " + r.token}}
	}

	var fetched Entry
	target := r.base + "/entries/" + url.PathEscape(string(src))
	status, err := r.client.GetJSON(ctx, target, header, &fetched)
	if err != nil {
		return nil, fmt.Errorf("fetching registry entry %s: %w", src, err)
	}

	switch status {
	case http.StatusOK:
		if fetched.SourceFileType == "" {
			fetched.SourceFileType = src
		}
		e = fetched.clone()
	case http.StatusNotFound:
		e = nil
	default:
		return nil, fmt.Errorf("fetching registry entry %s: unexpected status %d", src, status)
	}

	r.mu.Lock()
	r.cache[src] = e
	r.mu.Unlock()
	r.log.Debug("registry entry fetched", zap.String("source_file", string(src)), zap.Bool("found", e != nil))

	if e == nil {
		return nil, nil
	}
	return e.clone(), nil
}
