package parser

import (
	"strings"
	"time"
)

var dateSeparators = strings.NewReplacer("/", "-", ".", "-", ",", " ")

// ExtractDate returns nil when no candidate parses; the date never blocks extraction.
func (p *Parser) ExtractDate(body string) *time.Time {
	for _, r := range p.patterns.Dates {
		for _, m := range r.FindAllStringSubmatch(body, -1) {
			if parsed, ok := p.parseDate(m[1]); ok {
				return &parsed
			}
		}
	}

	return nil
}

func (p *Parser) parseDate(raw string) (time.Time, bool) {
	normalized := strings.Join(strings.Fields(dateSeparators.Replace(raw)), "-")

	for _, layout := range p.patterns.DateLayouts {
		parsed, err := time.ParseInLocation(layout, normalized, time.UTC)
		if err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}
