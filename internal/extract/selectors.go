// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/health-report/pkg/types"
)

// Content types produced by the default selectors.
const (
	ContentDimensionAnalysis = "dimension-analysis"
	ContentFinding           = "finding"
	ContentRecommendation    = "recommendation"
	ContentRisk              = "risk"
	ContentOpportunity       = "opportunity"
)

const (
	defaultTitlePattern = ".card-title, .dimension-title, h2, h3, h4"
	defaultBodyPattern  = ".card-body, .dimension-summary"
)

// deepDiveSelectors returns one selector per chapter dimension followed by
// the finding and recommendation cards deep dives share.
func deepDiveSelectors(dims []string) []types.Selector {
	out := make([]types.Selector, 0, len(dims)+2)
	for _, d := range dims {
		out = append(out, types.Selector{
			Pattern:      fmt.Sprintf("[data-dimension=%s]", d),
			TitlePattern: defaultTitlePattern,
			BodyPattern:  defaultBodyPattern,
			ContentType:  ContentDimensionAnalysis,
		})
	}
	return append(out,
		types.Selector{Pattern: ".finding-card", TitlePattern: defaultTitlePattern, BodyPattern: defaultBodyPattern, ContentType: ContentFinding},
		types.Selector{Pattern: ".recommendation", TitlePattern: defaultTitlePattern, BodyPattern: defaultBodyPattern, ContentType: ContentRecommendation},
	)
}

func summarySelectors() []types.Selector {
	return []types.Selector{
		{Pattern: ".key-finding", TitlePattern: defaultTitlePattern, BodyPattern: defaultBodyPattern, ContentType: ContentFinding},
		{Pattern: ".risk-item", TitlePattern: defaultTitlePattern, BodyPattern: defaultBodyPattern, ContentType: ContentRisk},
		{Pattern: ".opportunity-item", TitlePattern: defaultTitlePattern, BodyPattern: defaultBodyPattern, ContentType: ContentOpportunity},
		{Pattern: ".recommendation", TitlePattern: defaultTitlePattern, BodyPattern: defaultBodyPattern, ContentType: ContentRecommendation},
	}
}

// selectorFile is the YAML layout of a selectors file.
type selectorFile struct {
	Selectors []types.Selector `yaml:"selectors"`
}

// LoadSelectors reads a YAML selectors file. Every selector needs a
// pattern; a missing content type defaults to "content".
func LoadSelectors(path string) ([]types.Selector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading selectors %s: %w", path, err)
	}
	var f selectorFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing selectors %s: %w", path, err)
	}
	for i := range f.Selectors {
		s := &f.Selectors[i]
		if strings.TrimSpace(s.Pattern) == "" {
			return nil, fmt.Errorf("selectors %s: selector %d: missing pattern", path, i)
		}
		if s.ContentType == "" {
			s.ContentType = "content"
		}
	}
	return f.Selectors, nil
}
