package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/examdesk/pkg/models"
)

// ResultsSheet is the sheet written by ExportResults
const ResultsSheet = "Sheet1"

var resultHeader = []string{
	"Result ID", "Student ID", "Exam ID", "Score", "Total Marks", "Percentage", "Status", "Submitted At",
}

// ExportResults writes one header row and one row per result to path. The
// format is CSV for a .csv extension and xlsx otherwise.
func ExportResults(path string, results []models.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %v", err)
		}
	}
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return exportCSV(path, results)
	}
	return exportExcel(path, results)
}

func resultRow(r models.Result) []string {
	return []string{
		r.ID,
		r.StudentID,
		r.ExamID,
		formatNumber(r.Score),
		formatNumber(r.TotalMarks),
		formatNumber(r.Percentage),
		r.Status,
		r.SubmittedAt,
	}
}

func exportExcel(path string, results []models.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(resultHeader))
	for i, h := range resultHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}

	for i, r := range results {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.ID, r.StudentID, r.ExamID, r.Score, r.TotalMarks, r.Percentage, r.Status, r.SubmittedAt}
		if err := f.SetSheetRow(ResultsSheet, cellName, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %v", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %v", err)
	}
	return nil
}

func exportCSV(path string, results []models.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(resultHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write(resultRow(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
