// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceFileType identifies the analysis stage that produced a document.
type SourceFileType string

const (
	SourceDeepDiveGrowthEngine        SourceFileType = "deep-dive-growth-engine"
	SourceDeepDivePerformanceHealth   SourceFileType = "deep-dive-performance-health"
	SourceDeepDivePeopleLeadership    SourceFileType = "deep-dive-people-leadership"
	SourceDeepDiveResilienceSafeguard SourceFileType = "deep-dive-resilience-safeguards"
	SourceExecutiveSummary            SourceFileType = "executive-summary"
	SourceScorecard                   SourceFileType = "scorecard"
	SourceRiskRegister                SourceFileType = "risk-register"
)

// SourceFileTypes lists the known source types in report order.
var SourceFileTypes = []SourceFileType{
	SourceDeepDiveGrowthEngine,
	SourceDeepDivePerformanceHealth,
	SourceDeepDivePeopleLeadership,
	SourceDeepDiveResilienceSafeguard,
	SourceExecutiveSummary,
	SourceScorecard,
	SourceRiskRegister,
}

// Known reports whether t is one of the enumerated source types.
func (t SourceFileType) Known() bool {
	for _, k := range SourceFileTypes {
		if k == t {
			return true
		}
	}
	return false
}

// SourceDocument is a block of semi-structured markup produced by one
// analysis stage. The pipeline only reads it.
type SourceDocument struct {
	// SourceFileType tags the producing stage.
	SourceFileType SourceFileType `json:"source_file_type" yaml:"source_file_type"`

	// Markup is the raw document text.
	Markup string `json:"markup" yaml:"markup"`
}

// Selector describes how to find fragments in a document.
type Selector struct {
	// Pattern is one or more comma-separated fragment patterns
	// ("[data-dimension=OPS]", "#dimension-TIN", ".finding-card").
	Pattern string `json:"pattern" yaml:"pattern"`

	// TitlePattern optionally locates the title inside each fragment.
	TitlePattern string `json:"title_pattern,omitempty" yaml:"title_pattern,omitempty"`

	// BodyPattern optionally locates the body inside each fragment.
	BodyPattern string `json:"body_pattern,omitempty" yaml:"body_pattern,omitempty"`

	// ContentType tags the items produced by this selector (e.g. "finding").
	ContentType string `json:"content_type" yaml:"content_type"`
}
