package filter

import (
	"barber-prices/config"
	"barber-prices/models"
)

// Filter drops implausible prices before aggregation
type Filter struct {
	cfg config.FilterConfig
}

// NewFilter creates a new Filter instance
func NewFilter(cfg config.FilterConfig) *Filter {
	return &Filter{
		cfg: cfg,
	}
}

// Enabled reports whether any bound is configured
func (f *Filter) Enabled() bool {
	return f.cfg.MinPrice > 0 || f.cfg.MaxPrice > 0
}

// ApplyFilters returns the observations within the configured bounds, in their original order
func (f *Filter) ApplyFilters(observations []models.PriceObservation) []models.PriceObservation {
	if !f.Enabled() {
		return observations
	}

	filtered := make([]models.PriceObservation, 0, len(observations))
	for _, o := range observations {
		if f.matchesFilters(o) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// matchesFilters checks an observation against the bounds; a zero bound is not applied
func (f *Filter) matchesFilters(o models.PriceObservation) bool {
	if f.cfg.MinPrice > 0 && o.PriceRSD < f.cfg.MinPrice {
		return false
	}
	if f.cfg.MaxPrice > 0 && o.PriceRSD > f.cfg.MaxPrice {
		return false
	}
	return true
}
