package parser

import (
	"fmt"
	"regexp"

	"barber-prices/config"
	"barber-prices/models"
)

// Extractor turns the text of one source page into price observations.
// A page that does not match the source's grammar yields no observations and no error.
type Extractor interface {
	Extract(source, text string) ([]models.PriceObservation, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface
type ExtractorFunc func(source, text string) ([]models.PriceObservation, error)

// Extract calls f(source, text)
func (f ExtractorFunc) Extract(source, text string) ([]models.PriceObservation, error) {
	return f(source, text)
}

// NewExtractor builds the extractor described by a source configuration
func NewExtractor(src config.SourceConfig) (Extractor, error) {
	switch src.Grammar {
	case config.GrammarSentence:
		var patterns []*regexp.Regexp
		if src.Pattern != "" {
			re, err := regexp.Compile(src.Pattern)
			if err != nil {
				return nil, fmt.Errorf("failed to compile sentence pattern: %w", err)
			}
			patterns = append(patterns, re)
		}
		return NewSentenceExtractor(models.Service(src.Service), patterns...)

	case config.GrammarLineItem:
		rules := make([]ItemRule, 0, len(src.Items))
		for _, item := range src.Items {
			re, err := compileItem(item.Label, item.Layout, item.Pattern)
			if err != nil {
				return nil, fmt.Errorf("failed to compile item %q: %w", item.Label, err)
			}
			rules = append(rules, ItemRule{Service: models.Service(item.Service), Pattern: re})
		}

		inferences := make([]Inference, 0, len(src.Inference))
		for _, inf := range src.Inference {
			re, err := compileItem(inf.Label, inf.Layout, inf.Pattern)
			if err != nil {
				return nil, fmt.Errorf("failed to compile combo %q: %w", inf.Label, err)
			}
			inferences = append(inferences, Inference{
				Combo:   re,
				Known:   models.Service(inf.Known),
				Missing: models.Service(inf.Missing),
			})
		}
		return NewLineItemExtractor(rules, inferences)

	default:
		return nil, fmt.Errorf("unknown grammar %q", src.Grammar)
	}
}

func compileItem(label, layout, pattern string) (*regexp.Regexp, error) {
	if pattern != "" {
		return regexp.Compile(pattern)
	}
	return ItemPattern(label, layout)
}
