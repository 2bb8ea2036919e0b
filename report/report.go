package report

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"time"

	"barber-prices/models"
	"barber-prices/refresher"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// StatsTable renders the per-category summary as a bordered text table
func StatsTable(summary []models.CategoryStats) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Usluga", "Min", "Prosek", "Max", "Broj")

	for _, s := range summary {
		t.Row(s.Service.Label(), formatRSD(s.Min), formatRSD(s.Avg), formatRSD(s.Max), strconv.Itoa(s.Count))
	}
	return t.String()
}

// SourceLines lists every source with its price count or recorded error
func SourceLines(runs []models.SourceRun) []string {
	lines := make([]string, 0, len(runs))
	for _, run := range runs {
		if run.Failed() {
			lines = append(lines, fmt.Sprintf("✗ %s: %s", run.Source, run.Err))
			continue
		}
		lines = append(lines, fmt.Sprintf("✓ %s: %d", run.Source, len(run.Observations)))
	}
	return lines
}

// WriteConsole prints the snapshot for the CLI
func WriteConsole(w io.Writer, snap *refresher.Snapshot) {
	fmt.Fprintln(w, "Izvori:")
	for _, line := range SourceLines(snap.Result.Runs) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, StatsTable(snap.Stats))
	fmt.Fprintf(w, "Osveženo %s (%s), run %s\n",
		snap.Finished.Format("02.01.2006 15:04"), snap.Duration.Round(100*time.Millisecond), snap.Result.RunID)
}

// TelegramHTML formats the snapshot as a Telegram HTML message
func TelegramHTML(snap *refresher.Snapshot) string {
	var b strings.Builder
	b.WriteString("💈 <b>Cene berberskih usluga</b>\n\n")
	b.WriteString("<pre>")
	b.WriteString(html.EscapeString(StatsTable(snap.Stats)))
	b.WriteString("</pre>\n")

	var failed []string
	for _, run := range snap.Result.Runs {
		if run.Failed() {
			failed = append(failed, html.EscapeString(run.Source))
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(&b, "\n⚠️ Nedostupni izvori: %s\n", strings.Join(failed, ", "))
	}
	fmt.Fprintf(&b, "\n🕒 %s", snap.Finished.Format("02.01.2006 15:04"))
	return b.String()
}

func formatRSD(s models.Stat) string {
	if !s.Known {
		return "—"
	}
	return groupThousands(s.Value) + " RSD"
}

// groupThousands writes 12500 as "12.500"
func groupThousands(v int) string {
	digits := strconv.Itoa(v)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
