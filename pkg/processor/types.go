package processor

import (
	"time"
)

type Config struct {
	Preprocessor Preprocessor
	// Extractors are tried in order until one returns a candidate.
	Extractors []Extractor
	Matcher    AccountMatcher
	// ExtractorTimeout bounds each extractor call. Zero disables the bound.
	ExtractorTimeout time.Duration
	Clock            func() time.Time
}

type ProcessingStatus struct {
	CloudAvailable           bool            `json:"cloudAvailable"`
	PatternFallbackAvailable bool            `json:"patternFallbackAvailable"`
	Extractors               map[string]bool `json:"extractors"`
}
