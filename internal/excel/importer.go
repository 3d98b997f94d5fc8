// Package excel reads notes to create from CSV or XLSX files. The first
// three columns of a CSV or XLSX export can be imported back.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/studynotes/internal/store"
	"github.com/example/studynotes/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath      string // Path to the Excel or CSV file
	SubjectColumn string // Column with the subject code or name
	CodeColumn    string // Column with the note code
	DateColumn    string // Column with the completion date
	SheetName     string // Sheet to import, the first sheet when empty
	StartRow      int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SubjectColumn: "A",
		CodeColumn:    "B",
		DateColumn:    "C",
		StartRow:      2, // By default, start from the second row (skip header)
	}
}

// Import reads the file described by config and adds its rows to s.
func Import(s *store.Store, config ImportConfig) (*store.ImportResult, error) {
	rows, err := ReadRows(config)
	if err != nil {
		return nil, err
	}
	return s.Import(rows)
}

// ReadRows reads the rows of an Excel or CSV file, chosen by extension.
func ReadRows(config ImportConfig) ([]store.ImportRow, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		file, err := os.Open(config.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %v", err)
		}
		defer file.Close()
		return readCSV(file, config)
	}
	return readExcel(config)
}

func readExcel(config ImportConfig) ([]store.ImportRow, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	// Raw values keep date cells as serial numbers instead of a
	// locale-dependent display format.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	var out []store.ImportRow
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		if r, ok := extract(row, config, i+1); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func readCSV(r io.Reader, config ImportConfig) ([]store.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var out []store.ImportRow
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		if r, ok := extract(row, config, rowNum); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// extract picks the configured columns. Blank rows are dropped.
func extract(row []string, config ImportConfig, rowNum int) (store.ImportRow, bool) {
	r := store.ImportRow{
		Line:           rowNum,
		Subject:        cell(row, config.SubjectColumn),
		NoteCode:       cell(row, config.CodeColumn),
		CompletionDate: normalizeDate(cell(row, config.DateColumn)),
	}
	if r.Subject == "" && r.NoteCode == "" && r.CompletionDate == "" {
		return r, false
	}
	return r, true
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// normalizeDate turns an Excel date serial into YYYY-MM-DD and leaves
// anything else for the store to validate.
func normalizeDate(s string) string {
	if _, err := models.ParseDate(s); err == nil || s == "" {
		return s
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return s
	}
	return models.DateOf(t).String()
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
