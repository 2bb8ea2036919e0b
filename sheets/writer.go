package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"barber-prices/logger"
	"barber-prices/models"
	"barber-prices/refresher"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// CredentialsEnv holds the service account JSON when no credentials file is configured
const CredentialsEnv = "GOOGLE_SHEETS_CREDENTIALS"

// Writer exports refresh snapshots to one sheet of a Google spreadsheet
type Writer struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	log           *logger.Logger
}

// NewWriter creates a new Google Sheets writer
func NewWriter(ctx context.Context, spreadsheetID, sheetName, credentialsPath string, log *logger.Logger) (*Writer, error) {
	credsJSON, err := readCredentials(credentialsPath)
	if err != nil {
		return nil, err
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sanitizeSheetName(sheetName),
		log:           log,
	}, nil
}

func readCredentials(credentialsPath string) ([]byte, error) {
	var credsJSON []byte
	if credentialsPath != "" {
		data, err := os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		credsJSON = data
	} else {
		credsEnv := strings.TrimSpace(os.Getenv(CredentialsEnv))
		if credsEnv == "" {
			return nil, fmt.Errorf("credentials not found: %s is empty or not set", CredentialsEnv)
		}
		credsJSON = []byte(credsEnv)
	}

	var creds map[string]interface{}
	if err := json.Unmarshal(credsJSON, &creds); err != nil {
		return nil, fmt.Errorf("invalid credentials JSON: %w", err)
	}
	if creds["type"] != "service_account" {
		return nil, fmt.Errorf("credentials must be a service account JSON file, got type: %v", creds["type"])
	}
	return credsJSON, nil
}

// WriteSnapshot replaces the contents of the configured sheet with the snapshot
func (w *Writer) WriteSnapshot(ctx context.Context, snap *refresher.Snapshot) error {
	if err := w.ensureSheet(ctx); err != nil {
		return err
	}

	quoted := "'" + strings.ReplaceAll(w.sheetName, "'", "''") + "'"
	if _, err := w.service.Spreadsheets.Values.Clear(w.spreadsheetID, quoted+"!A:Z", &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		w.log.Warn("failed to clear sheet", "sheet", w.sheetName, "error", err)
	}

	values := SnapshotValues(snap)
	_, err := w.service.Spreadsheets.Values.Update(w.spreadsheetID, quoted+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write to sheets: %w", err)
	}

	w.log.Info("snapshot exported", "sheet", w.sheetName, "rows", len(values))
	return nil
}

// ensureSheet adds the target sheet at the front of the spreadsheet when it is missing
func (w *Writer) ensureSheet(ctx context.Context) error {
	spreadsheet, err := w.service.Spreadsheets.Get(w.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == w.sheetName {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: w.sheetName, Index: 0},
			},
		}},
	}
	if _, err := w.service.Spreadsheets.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	w.log.Info("created sheet", "sheet", w.sheetName)
	return nil
}

// SnapshotValues lays out a snapshot as sheet rows: a metadata row, the
// category summary, then one row per source
func SnapshotValues(snap *refresher.Snapshot) [][]interface{} {
	values := [][]interface{}{
		{"Osveženo", snap.Finished.Format("2006-01-02 15:04:05"), "Run", snap.Result.RunID},
		{},
		{"Usluga", "Min (RSD)", "Prosek (RSD)", "Max (RSD)", "Broj cena"},
	}
	for _, s := range snap.Stats {
		values = append(values, []interface{}{s.Service.Label(), cell(s.Min), cell(s.Avg), cell(s.Max), s.Count})
	}

	values = append(values, []interface{}{}, []interface{}{"Izvor", "Broj cena", "Greška"})
	for _, run := range snap.Result.Runs {
		values = append(values, []interface{}{run.Source, len(run.Observations), run.Err})
	}
	return values
}

func cell(s models.Stat) interface{} {
	if !s.Known {
		return s.String()
	}
	return s.Value
}

// sanitizeSheetName removes invalid characters from sheet name
func sanitizeSheetName(name string) string {
	// Google Sheets sheet names cannot contain: / \ ? * [ ]
	invalidChars := []string{"/", "\\", "?", "*", "[", "]"}
	result := name
	for _, char := range invalidChars {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	if runes := []rune(result); len(runes) > 100 {
		result = string(runes[:100])
	}
	if result == "" {
		result = "Sheet1"
	}
	return result
}

// ExtractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL.
// A bare ID is returned unchanged.
func ExtractSpreadsheetID(url string) string {
	url = strings.TrimSpace(url)
	if !strings.Contains(url, "/") {
		return url
	}

	parts := strings.Split(url, "/d/")
	if len(parts) < 2 {
		return ""
	}

	idPart := parts[1]
	if idx := strings.Index(idPart, "/"); idx != -1 {
		idPart = idPart[:idx]
	}
	if idx := strings.Index(idPart, "?"); idx != -1 {
		idPart = idPart[:idx]
	}

	return strings.TrimSpace(idPart)
}
