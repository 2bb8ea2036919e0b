package parser

import (
	"fmt"
	"regexp"

	"barber-prices/models"
)

// Aggregator sites publish a single summary sentence with the price range and average.
var defaultSentencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)od\s+` + numberPattern + `\s*RSD\s+do\s+` + numberPattern +
		`\s*RSD.{0,300}?prose[čc]n(?:om|a)\s+cen(?:om|a)\s+(?:od\s+|je\s+)?` + numberPattern + `\s*RSD`),
	regexp.MustCompile(`(?is)price range from\s+` + numberPattern + `\s*RSD\s+to\s+` + numberPattern +
		`\s*RSD.{0,300}?average price of\s+` + numberPattern + `\s*RSD`),
}

// SentenceExtractor reads the min, max and average from a statistical summary sentence
type SentenceExtractor struct {
	service  models.Service
	patterns []*regexp.Regexp
}

// NewSentenceExtractor creates an extractor for the given category.
// With no patterns the built-in Serbian and English sentences are used.
func NewSentenceExtractor(service models.Service, patterns ...*regexp.Regexp) (*SentenceExtractor, error) {
	if len(patterns) == 0 {
		patterns = defaultSentencePatterns
	}
	for _, re := range patterns {
		if re.NumSubexp() != 3 {
			return nil, fmt.Errorf("sentence pattern %q must have 3 capture groups, got %d", re.String(), re.NumSubexp())
		}
	}
	return &SentenceExtractor{service: service, patterns: patterns}, nil
}

// Extract implements Extractor. A page without the sentence yields no observations.
func (e *SentenceExtractor) Extract(source, text string) ([]models.PriceObservation, error) {
	var matches []string
	for _, re := range e.patterns {
		if matches = re.FindStringSubmatch(text); matches != nil {
			break
		}
	}
	if matches == nil {
		return nil, nil
	}

	// Groups are min, max, avg; observations keep that order.
	observations := make([]models.PriceObservation, 0, 3)
	for _, raw := range matches[1:4] {
		price, err := ParseAmount(raw)
		if err != nil {
			return nil, &ParseError{Source: source, Service: e.service, Text: raw, Err: err}
		}
		observations = append(observations, models.PriceObservation{
			Source:   source,
			Service:  e.service,
			PriceRSD: price,
		})
	}
	return observations, nil
}
