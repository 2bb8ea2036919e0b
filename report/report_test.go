package report

import (
	"bytes"
	"testing"
	"time"

	"barber-prices/models"
	"barber-prices/pipeline"
	"barber-prices/refresher"

	"github.com/stretchr/testify/assert"
)

func sampleSnapshot() *refresher.Snapshot {
	return &refresher.Snapshot{
		Result: &pipeline.Result{
			RunID: "run-1",
			Runs: []models.SourceRun{
				{Source: "Salon <Zemun>", Observations: []models.PriceObservation{
					{Source: "Salon <Zemun>", Service: models.Haircut, PriceRSD: 1200},
				}},
				{Source: "Barber & Co", Err: "fetch https://example.rs: status 503"},
			},
		},
		Stats: []models.CategoryStats{
			{
				Service: models.Haircut,
				Min:     models.Stat{Value: 1200, Known: true},
				Avg:     models.Stat{Value: 1200, Known: true},
				Max:     models.Stat{Value: 12500, Known: true},
				Count:   1,
			},
			{Service: models.Beard},
		},
		Finished: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Duration: 1500 * time.Millisecond,
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1200, "1.200"},
		{12500, "12.500"},
		{1234567, "1.234.567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupThousands(tt.in))
	}
}

func TestStatsTable(t *testing.T) {
	out := StatsTable(sampleSnapshot().Stats)
	assert.Contains(t, out, "Šišanje")
	assert.Contains(t, out, "1.200 RSD")
	assert.Contains(t, out, "12.500 RSD")
	assert.Contains(t, out, "Brada")
	assert.Contains(t, out, "—")
	assert.Contains(t, out, "Broj")
}

func TestSourceLines(t *testing.T) {
	lines := SourceLines(sampleSnapshot().Result.Runs)
	assert.Equal(t, []string{
		"✓ Salon <Zemun>: 1",
		"✗ Barber & Co: fetch https://example.rs: status 503",
	}, lines)
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	WriteConsole(&buf, sampleSnapshot())

	out := buf.String()
	assert.Contains(t, out, "✓ Salon <Zemun>: 1")
	assert.Contains(t, out, "14.03.2026 09:30")
	assert.Contains(t, out, "run-1")
}

func TestTelegramHTML(t *testing.T) {
	out := TelegramHTML(sampleSnapshot())
	assert.Contains(t, out, "<pre>")
	assert.Contains(t, out, "Barber &amp; Co")
	assert.NotContains(t, out, "Barber & Co")
	assert.Contains(t, out, "14.03.2026 09:30")
}
