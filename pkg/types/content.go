// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Well-known visualization data keys set by the pipeline itself.
const (
	VizScore         = "score"
	VizDimensionCode = "dimensionCode"
	VizChapterCode   = "chapterCode"
)

// DeliverableComprehensive receives every item that cannot be routed anywhere else.
const DeliverableComprehensive = "comprehensive"

// ContentItem is a scored, routed unit of extracted report content.
type ContentItem struct {
	// SourceFile is the source type of the document the item came from.
	SourceFile SourceFileType `json:"source_file" yaml:"source_file"`

	// ContentType is copied from the selector that produced the item.
	ContentType string `json:"content_type" yaml:"content_type"`

	// OrdinalIndex is the position within the extraction run, starting at the
	// caller-supplied offset.
	OrdinalIndex int `json:"ordinal_index" yaml:"ordinal_index"`

	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`

	// SelectorUsed is the pattern alternative that matched the fragment.
	SelectorUsed string `json:"selector_used" yaml:"selector_used"`

	// ConfidenceScore is a heuristic extraction-quality estimate in [0,1].
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`

	// ImpactAreas holds display names of the dimensions the item concerns.
	// Empty when no dimension could be resolved.
	ImpactAreas []string `json:"impact_areas" yaml:"impact_areas"`

	// VisualizationData carries data markers found on the fragment plus the
	// resolved dimension and chapter codes.
	VisualizationData map[string]any `json:"visualization_data" yaml:"visualization_data"`

	// TargetDeliverables lists the deliverables that should include the item.
	// Never empty for an assembled item.
	TargetDeliverables []string `json:"target_deliverables" yaml:"target_deliverables"`

	// TargetSections maps a deliverable to the section that receives the item.
	TargetSections map[string]string `json:"target_sections" yaml:"target_sections"`
}

// DimensionCode returns the resolved dimension code, or "" when unresolved.
func (c ContentItem) DimensionCode() string {
	s, _ := c.VisualizationData[VizDimensionCode].(string)
	return s
}

// Score returns the numeric score marker and whether it was present.
func (c ContentItem) Score() (int, bool) {
	switch v := c.VisualizationData[VizScore].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// ExtractionResult holds the items extracted from one source document.
type ExtractionResult struct {
	SourceFile SourceFileType `json:"source_file" yaml:"source_file"`
	Items      []ContentItem  `json:"items" yaml:"items"`

	// Error records an extraction failure message. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
