// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"
	"strings"
)

// Confidence weights. The score starts at baseConfidence and only ever
// increases, so the lowest possible score is 0.5.
const (
	baseConfidence  = 0.5
	titleBonus      = 0.15
	bodyBonus       = 0.10
	longBodyBonus   = 0.10
	markerBonus     = 0.10
	signalBonus     = 0.05
	minTitleLength  = 3
	bodyWordsMedium = 20
	bodyWordsLong   = 100
)

// signalKeywords mark bodies that read like analysis output.
var signalKeywords = []string{
	"finding",
	"recommendation",
	"insight",
	"strength",
	"gap",
	"risk",
	"opportunity",
}

// Confidence scores an extracted item from structural and lexical signals.
// The result is rounded to two decimals and clamped to [0,1].
func Confidence(title, body string, hasDimensionMarker bool) float64 {
	score := baseConfidence

	if len([]rune(strings.TrimSpace(title))) > minTitleLength {
		score += titleBonus
	}

	words := len(strings.Fields(body))
	if words > bodyWordsMedium {
		score += bodyBonus
	}
	if words > bodyWordsLong {
		score += longBodyBonus
	}

	if hasDimensionMarker {
		score += markerBonus
	}

	if hasSignal(body) {
		score += signalBonus
	}

	return clamp(math.Round(score*100) / 100)
}

func hasSignal(body string) bool {
	lower := strings.ToLower(body)
	for _, kw := range signalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
