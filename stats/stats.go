// Package stats reduces price observations to per-category summaries.
package stats

import "barber-prices/models"

// Compute returns min, truncated average and max of the prices for one category.
// A category without observations has all three statistics unknown.
func Compute(observations []models.PriceObservation, service models.Service) models.CategoryStats {
	result := models.CategoryStats{Service: service}

	var sum int64
	for _, o := range observations {
		if o.Service != service {
			continue
		}
		if result.Count == 0 || o.PriceRSD < result.Min.Value {
			result.Min = models.Stat{Value: o.PriceRSD, Known: true}
		}
		if result.Count == 0 || o.PriceRSD > result.Max.Value {
			result.Max = models.Stat{Value: o.PriceRSD, Known: true}
		}
		sum += int64(o.PriceRSD)
		result.Count++
	}

	if result.Count > 0 {
		// integer division truncates, it never rounds up
		result.Avg = models.Stat{Value: int(sum / int64(result.Count)), Known: true}
	}
	return result
}

// Summarize computes stats for every known category in display order, followed
// by any other categories present in the observations in first-seen order.
func Summarize(observations []models.PriceObservation) []models.CategoryStats {
	services := models.KnownServices()
	seen := make(map[models.Service]bool, len(services))
	for _, s := range services {
		seen[s] = true
	}
	for _, o := range observations {
		if !seen[o.Service] {
			seen[o.Service] = true
			services = append(services, o.Service)
		}
	}

	summary := make([]models.CategoryStats, 0, len(services))
	for _, s := range services {
		summary = append(summary, Compute(observations, s))
	}
	return summary
}
