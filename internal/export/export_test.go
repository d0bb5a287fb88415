package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"chickhealth-client-go/internal/api"
)

func openSheet(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestDiagnosisLogWorkbook(t *testing.T) {
	data, err := DiagnosisLogWorkbook([]api.HistoryEntry{
		{ID: 1, CreatedAt: "2026-08-30T10:00:00", Type: "classify", Result: "Cầu trùng", Confidence: 0.925, Status: "Sick", ImageURL: "/media/1.jpg"},
		{ID: 2, CreatedAt: "2026-08-30T11:00:00", Type: "classify", Result: "Khỏe mạnh", Confidence: 0.99, Status: "Healthy", ImageURL: "/media/2.jpg"},
	})
	require.NoError(t, err)

	rows := openSheet(t, data, "Diagnosis Logs")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Created At", "Type", "Result", "Confidence (%)", "Status", "Image URL"}, rows[0])
	assert.Equal(t, "93", rows[1][4])
	assert.Equal(t, "Healthy", rows[2][5])
}

func TestUsageWorkbookHasTotalsRow(t *testing.T) {
	data, err := UsageWorkbook(api.UsageStats{
		TotalTokens:   300,
		TotalRequests: 4,
		Daily: []api.UsageDay{
			{Date: "2026-08-29", Tokens: 120},
			{Date: "2026-08-30", Tokens: 180},
		},
	})
	require.NoError(t, err)

	rows := openSheet(t, data, "AI Usage")
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Date", "Tokens"}, rows[0])
	assert.Equal(t, []string{"2026-08-29", "120"}, rows[1])
	assert.Equal(t, []string{"TOTAL", "300"}, rows[3])
}

func TestDiagnosisLogWorkbookEmpty(t *testing.T) {
	data, err := DiagnosisLogWorkbook(nil)
	require.NoError(t, err)
	rows := openSheet(t, data, "Diagnosis Logs")
	require.Len(t, rows, 1)
}
