// Package export renders admin data as Excel workbooks for download.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"chickhealth-client-go/internal/api"
)

var diagnosisHeader = []any{
	"ID", "Created At", "Type", "Result", "Confidence (%)", "Status", "Image URL",
}

var usageHeader = []any{"Date", "Tokens"}

// DiagnosisLogWorkbook builds an xlsx of the diagnosis log, one row per
// entry, confidence already converted to the displayed percentage.
func DiagnosisLogWorkbook(entries []api.HistoryEntry) ([]byte, error) {
	rows := make([][]any, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []any{
			entry.ID,
			entry.CreatedAt,
			entry.Type,
			entry.Result,
			api.ConfidencePercent(entry.Confidence),
			entry.Status,
			entry.ImageURL,
		})
	}
	return buildWorkbook("Diagnosis Logs", diagnosisHeader, rows)
}

// UsageWorkbook builds an xlsx of daily AI token usage with a totals row.
func UsageWorkbook(usage api.UsageStats) ([]byte, error) {
	rows := make([][]any, 0, len(usage.Daily)+1)
	for _, day := range usage.Daily {
		rows = append(rows, []any{day.Date, day.Tokens})
	}
	rows = append(rows, []any{"TOTAL", usage.TotalTokens})
	return buildWorkbook("AI Usage", usageHeader, rows)
}

func buildWorkbook(sheetName string, header []any, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("export: create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: write header: %w", err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("export: write row %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
