package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unity-handler-report/models"
	"unity-handler-report/report"
)

var sampleRows = []models.ResolvedRow{
	{CallHandlerName: "Operator", Schedule: "Business Hours"},
	{CallHandlerName: "Auto Attendant", Schedule: "No Schedule"},
}

func TestFormatCSV(t *testing.T) {
	tests := map[string]struct {
		rows     []models.ResolvedRow
		expected string
	}{
		"RowsAfterHeader": {
			rows: sampleRows,
			expected: "CallHandlerName,Schedule\n" +
				"Operator,Business Hours\n" +
				"Auto Attendant,No Schedule\n",
		},
		"EmptyRows_HeaderOnly": {
			rows:     nil,
			expected: "CallHandlerName,Schedule\n",
		},
		"EmbeddedCommasNotQuoted": {
			rows: []models.ResolvedRow{
				{CallHandlerName: "Operator", Schedule: "Weekdays, Weekends"},
			},
			expected: "CallHandlerName,Schedule\n" +
				"Operator,Weekdays, Weekends\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, report.FormatCSV(tc.rows))
		})
	}
}

func TestFormatText(t *testing.T) {
	expected := "Call Handler: Operator, Schedule: Business Hours\n" +
		"Call Handler: Auto Attendant, Schedule: No Schedule\n"
	assert.Equal(t, expected, report.FormatText(sampleRows))
}

func TestFormatJSON(t *testing.T) {
	out := report.FormatJSON(sampleRows)

	var decoded []models.ResolvedRow
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, sampleRows, decoded)
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, report.WriteCSVFile(path, sampleRows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, report.FormatCSV(sampleRows), string(data))
}
