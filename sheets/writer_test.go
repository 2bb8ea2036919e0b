package sheets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"barber-prices/models"
	"barber-prices/pipeline"
	"barber-prices/refresher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSpreadsheetID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://docs.google.com/spreadsheets/d/abc123/edit", "abc123"},
		{"https://docs.google.com/spreadsheets/d/abc123/edit?usp=sharing", "abc123"},
		{"https://docs.google.com/spreadsheets/d/abc123?usp=sharing", "abc123"},
		{"abc123", "abc123"},
		{"https://example.com/sheet", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractSpreadsheetID(tt.url), tt.url)
	}
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "Cene_2026_03", sanitizeSheetName("Cene/2026?03"))
	assert.Equal(t, "Sheet1", sanitizeSheetName("   "))
	assert.Len(t, sanitizeSheetName(string(make([]byte, 150))+"x"), 100)

	long := sanitizeSheetName(strings.Repeat("š", 150))
	assert.True(t, utf8.ValidString(long))
	assert.Equal(t, 100, utf8.RuneCountInString(long))
}

func TestSnapshotValues(t *testing.T) {
	snap := &refresher.Snapshot{
		Result: &pipeline.Result{
			RunID: "run-7",
			Runs: []models.SourceRun{
				{Source: "A", Observations: []models.PriceObservation{{Source: "A", Service: models.Haircut, PriceRSD: 900}}},
				{Source: "B", Err: "timeout"},
			},
		},
		Stats: []models.CategoryStats{
			{Service: models.Haircut, Min: models.Stat{Value: 900, Known: true}, Avg: models.Stat{Value: 900, Known: true}, Max: models.Stat{Value: 900, Known: true}, Count: 1},
			{Service: models.Wash},
		},
		Finished: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	values := SnapshotValues(snap)
	require.Len(t, values, 9)
	assert.Equal(t, []interface{}{"Osveženo", "2026-03-14 09:30:00", "Run", "run-7"}, values[0])
	assert.Equal(t, []interface{}{"Šišanje", 900, 900, 900, 1}, values[3])
	assert.Equal(t, []interface{}{"Pranje kose", "unknown", "unknown", "unknown", 0}, values[4])
	assert.Equal(t, []interface{}{"A", 1, ""}, values[7])
	assert.Equal(t, []interface{}{"B", 0, "timeout"}, values[8])
}

func TestReadCredentials(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "sa.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"type":"service_account"}`), 0o600))
	data, err := readCredentials(valid)
	require.NoError(t, err)
	assert.Contains(t, string(data), "service_account")

	user := filepath.Join(dir, "user.json")
	require.NoError(t, os.WriteFile(user, []byte(`{"type":"authorized_user"}`), 0o600))
	_, err = readCredentials(user)
	assert.ErrorContains(t, err, "service account")

	t.Setenv(CredentialsEnv, "")
	_, err = readCredentials("")
	assert.ErrorContains(t, err, CredentialsEnv)

	t.Setenv(CredentialsEnv, "  {\"type\":\"service_account\"}\n")
	_, err = readCredentials("")
	assert.NoError(t, err)
}
