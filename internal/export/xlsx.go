package export

import (
	"fmt"
	"io"
	"time"

	"github.com/example/studynotes/pkg/models"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxNotesSheet   = "Notes"
	xlsxSummarySheet = "Summary"
)

// WriteXLSX writes a workbook with the CSV columns on a "Notes" sheet
// (completion flags as booleans) and the stats on a "Summary" sheet.
func WriteXLSX(w io.Writer, notes []models.Note, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close() // nolint: errcheck

	if err := f.SetSheetName("Sheet1", xlsxNotesSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %v", err)
	}

	header := CSVHeader()
	if err := f.SetSheetRow(xlsxNotesSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"6A11CB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %v", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxNotesSheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %v", err)
	}

	for i, n := range notes {
		row := []interface{}{n.SubjectName, n.NoteCode, n.CompletionDate.String()}
		n.Revisions.Each(func(_ models.Label, cp models.Checkpoint) {
			row = append(row, cp.Date.String(), cp.Completed)
		})
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxNotesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write note %d: %v", n.ID, err)
		}
	}
	if err := f.SetColWidth(xlsxNotesSheet, "A", "A", 50); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxNotesSheet, "B", "K", 16); err != nil {
		return err
	}

	if _, err := f.NewSheet(xlsxSummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %v", err)
	}
	s := models.StatsOf(notes)
	summary := [][]interface{}{
		{"Generated", generatedAt.Format("2006-01-02 15:04:05")},
		{"Total notes", s.Total},
		{"Pending revisions", s.Pending},
		{"Completed revisions", s.Completed},
	}
	for i, row := range summary {
		row := row
		if err := f.SetSheetRow(xlsxSummarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("failed to write summary: %v", err)
		}
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}
