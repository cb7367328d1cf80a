package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/cravelog/internal/db"
)

// ExportFileName is the download name the history export is served under.
const ExportFileName = "craving-history.csv"

// exportHeader matches the column order the SPA download always used.
const exportHeader = "Timestamp,Intensity,Label,Outcome,Trigger,Notes"

// ExportCSV renders the user's full history in the export format. Rows
// are comma joined without quoting; embedded commas in free text fields
// are a known fidelity gap kept as is pending a product decision.
func ExportCSV(logs []db.CravingLog) string {
	lines := make([]string, 0, len(logs)+1)
	lines = append(lines, exportHeader)

	for _, entry := range logs {
		lines = append(lines, strings.Join([]string{
			entry.Timestamp.UTC().Format(time.RFC3339),
			strconv.Itoa(entry.Intensity),
			entry.IntensityLabel,
			entry.Outcome,
			entry.Trigger,
			entry.Notes,
		}, ","))
	}

	return strings.Join(lines, "\n")
}
