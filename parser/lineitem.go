package parser

import (
	"fmt"
	"regexp"

	"barber-prices/models"
)

// Line item layouts seen on salon pages
const (
	// LayoutBooking matches "Name 30 min Cena: 900 RSD" as rendered by booking widgets
	LayoutBooking = "booking"
	// LayoutStatic matches "Name, 900 din" or "Name, 30 min, 900 din" price lists on static salon sites
	LayoutStatic = "static"
)

const (
	durationPattern = `(?:\d+\s*(?:min|minuta|h)\.?\s*[,:\-–|]?\s*)?`
	// A label starts a line or follows a list separator, so "Brada" does not
	// match inside "Šišanje i brada".
	labelStartPattern = `(?im)(?:^|[|•·;])[^\S\n]*(?:[-*–]\s*)?`
)

// ItemPattern builds the price pattern for a service label in the given layout
func ItemPattern(label, layout string) (*regexp.Regexp, error) {
	quoted := labelStartPattern + regexp.QuoteMeta(label)
	switch layout {
	case LayoutBooking, "":
		return regexp.Compile(quoted + `\s*[,:\-–|]?\s*` + durationPattern + `Cena:\s*` + numberPattern + `\s*(?:RSD|din)`)
	case LayoutStatic:
		return regexp.Compile(quoted + `\s*[,:\-–]?\s*` + durationPattern + numberPattern + `\s*(?:din|RSD)`)
	default:
		return nil, fmt.Errorf("unknown line item layout %q", layout)
	}
}

// ItemRule maps one service label on the page to a category
type ItemRule struct {
	Service models.Service
	Pattern *regexp.Regexp // exactly one capture group holding the price
}

// Inference derives a missing category price from a combined service price.
// Missing = Combo - Known, only when both were read directly from the page.
type Inference struct {
	Combo   *regexp.Regexp
	Known   models.Service
	Missing models.Service
}

// LineItemExtractor reads one price per recognized service name
type LineItemExtractor struct {
	rules      []ItemRule
	inferences []Inference
}

// NewLineItemExtractor creates a line item extractor from its rules
func NewLineItemExtractor(rules []ItemRule, inferences []Inference) (*LineItemExtractor, error) {
	for _, rule := range rules {
		if rule.Pattern == nil || rule.Pattern.NumSubexp() != 1 {
			return nil, fmt.Errorf("item pattern for %s must have exactly 1 capture group", rule.Service)
		}
	}
	for _, inf := range inferences {
		if inf.Combo == nil || inf.Combo.NumSubexp() != 1 {
			return nil, fmt.Errorf("combo pattern for %s must have exactly 1 capture group", inf.Missing)
		}
		if inf.Known == inf.Missing {
			return nil, fmt.Errorf("inference of %s cannot depend on itself", inf.Missing)
		}
	}
	return &LineItemExtractor{rules: rules, inferences: inferences}, nil
}

// Extract implements Extractor. Services without a matching line are skipped.
func (e *LineItemExtractor) Extract(source, text string) ([]models.PriceObservation, error) {
	var observations []models.PriceObservation
	observed := make(map[models.Service]int)

	for _, rule := range e.rules {
		matches := rule.Pattern.FindStringSubmatch(text)
		if matches == nil {
			continue
		}
		price, err := ParseAmount(matches[1])
		if err != nil {
			return nil, &ParseError{Source: source, Service: rule.Service, Text: matches[1], Err: err}
		}
		observations = append(observations, models.PriceObservation{
			Source:   source,
			Service:  rule.Service,
			PriceRSD: price,
		})
		if _, seen := observed[rule.Service]; !seen {
			observed[rule.Service] = price
		}
	}

	// Inferred prices are not added to observed, so one inference never feeds another.
	for _, inf := range e.inferences {
		if _, present := observed[inf.Missing]; present {
			continue
		}
		known, ok := observed[inf.Known]
		if !ok {
			continue
		}
		matches := inf.Combo.FindStringSubmatch(text)
		if matches == nil {
			continue
		}
		combo, err := ParseAmount(matches[1])
		if err != nil {
			return nil, &ParseError{Source: source, Service: inf.Missing, Text: matches[1], Err: err}
		}
		if diff := combo - known; diff > 0 {
			observations = append(observations, models.PriceObservation{
				Source:   source + models.InferredSuffix,
				Service:  inf.Missing,
				PriceRSD: diff,
				Inferred: true,
			})
		}
	}

	return observations, nil
}
