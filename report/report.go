// Package report renders resolved rows as text, JSON, or CSV.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"unity-handler-report/models"
)

// CSVHeader is the first line of the CSV report.
const CSVHeader = "CallHandlerName,Schedule"

// FormatText returns one human-readable line per resolved row.
func FormatText(rows []models.ResolvedRow) string {
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("Call Handler: %s, Schedule: %s\n", row.CallHandlerName, row.Schedule))
	}
	return sb.String()
}

// FormatJSON returns the JSON representation of the resolved rows.
func FormatJSON(rows []models.ResolvedRow) string {
	jsonBytes, _ := json.MarshalIndent(rows, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the resolved rows. Fields are
// comma-joined without quoting, so an embedded comma in a schedule name is
// not escaped and will shift that row's columns.
func FormatCSV(rows []models.ResolvedRow) string {
	var sb strings.Builder
	sb.WriteString(CSVHeader)
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(row.CallHandlerName)
		sb.WriteString(",")
		sb.WriteString(row.Schedule)
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteCSVFile writes the CSV report to path.
func WriteCSVFile(path string, rows []models.ResolvedRow) error {
	return os.WriteFile(path, []byte(FormatCSV(rows)), 0644)
}
