package stats

import (
	"testing"

	"barber-prices/models"

	"github.com/stretchr/testify/assert"
)

func obs(service models.Service, prices ...int) []models.PriceObservation {
	var out []models.PriceObservation
	for _, p := range prices {
		out = append(out, models.PriceObservation{Source: "s", Service: service, PriceRSD: p})
	}
	return out
}

func known(v int) models.Stat {
	return models.Stat{Value: v, Known: true}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		input    []models.PriceObservation
		service  models.Service
		expected models.CategoryStats
	}{
		{
			name:     "no observations",
			input:    nil,
			service:  models.Haircut,
			expected: models.CategoryStats{Service: models.Haircut},
		},
		{
			name:     "only other categories",
			input:    obs(models.Beard, 500, 700),
			service:  models.Wash,
			expected: models.CategoryStats{Service: models.Wash},
		},
		{
			name:     "average truncates",
			input:    obs(models.Haircut, 100, 100, 101),
			service:  models.Haircut,
			expected: models.CategoryStats{Service: models.Haircut, Min: known(100), Avg: known(100), Max: known(101), Count: 3},
		},
		{
			name:     "average never rounds up",
			input:    obs(models.Haircut, 100, 101),
			service:  models.Haircut,
			expected: models.CategoryStats{Service: models.Haircut, Min: known(100), Avg: known(100), Max: known(101), Count: 2},
		},
		{
			name:     "single price",
			input:    obs(models.Beard, 0),
			service:  models.Beard,
			expected: models.CategoryStats{Service: models.Beard, Min: known(0), Avg: known(0), Max: known(0), Count: 1},
		},
		{
			name:     "filters by category",
			input:    append(obs(models.Haircut, 600, 1200, 760, 900), obs(models.Beard, 50, 5000)...),
			service:  models.Haircut,
			expected: models.CategoryStats{Service: models.Haircut, Min: known(600), Avg: known(865), Max: known(1200), Count: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compute(tt.input, tt.service))
		})
	}
}

func TestCompute_UnknownRendering(t *testing.T) {
	s := Compute(nil, models.Wash)
	assert.Equal(t, "unknown", s.Min.String())
	assert.Equal(t, "unknown", s.Avg.String())
	assert.Equal(t, "unknown", s.Max.String())
}

func TestSummarize(t *testing.T) {
	input := append(obs("styling", 2000), obs(models.Beard, 400, 600)...)

	summary := Summarize(input)

	services := make([]models.Service, 0, len(summary))
	for _, s := range summary {
		services = append(services, s.Service)
	}
	assert.Equal(t, []models.Service{models.Haircut, models.Beard, models.Wash, "styling"}, services)
	assert.False(t, summary[0].Avg.Known)
	assert.Equal(t, known(500), summary[1].Avg)
	assert.Equal(t, known(2000), summary[3].Max)
}
