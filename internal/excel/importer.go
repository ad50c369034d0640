package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/examdesk/pkg/models"
)

// OptionSeparator splits the options cell of a question row
const OptionSeparator = "|"

// QuestionAdder stores imported questions
type QuestionAdder interface {
	AddQuestion(q *models.Question) string
}

// UserAdder stores imported accounts
type UserAdder interface {
	AddUser(u *models.User, role models.Role) bool
}

// QuestionImportConfig defines the question import layout
type QuestionImportConfig struct {
	FilePath      string  // Path to the Excel or CSV file
	TextColumn    string  // Column with the question text
	OptionsColumn string  // Column with the "|" separated options
	CorrectColumn string  // Column with the correct answer
	MarksColumn   string  // Column with the marks
	TypeColumn    string  // Column with the question type
	SubjectColumn string  // Column with the subject
	SheetName     string  // Name of the sheet to import
	StartRow      int     // The row to start importing from (1-based index)
	DefaultMarks  float64 // Marks used when the cell is empty
	CreatedBy     string  // Stamped on every imported question
}

// DefaultQuestionImportConfig returns the default question layout
func DefaultQuestionImportConfig() QuestionImportConfig {
	return QuestionImportConfig{
		TextColumn:    "A",
		OptionsColumn: "B",
		CorrectColumn: "C",
		MarksColumn:   "D",
		TypeColumn:    "E",
		SubjectColumn: "F",
		SheetName:     "Sheet1",
		StartRow:      2, // skip header
		DefaultMarks:  1,
	}
}

// UserImportConfig defines the account import layout
type UserImportConfig struct {
	FilePath         string
	IDColumn         string
	PasswordColumn   string
	NameColumn       string
	EmailColumn      string
	DepartmentColumn string
	SheetName        string
	StartRow         int
	Role             models.Role
}

// DefaultUserImportConfig returns the default account layout for role
func DefaultUserImportConfig(role models.Role) UserImportConfig {
	return UserImportConfig{
		IDColumn:         "A",
		PasswordColumn:   "B",
		NameColumn:       "C",
		EmailColumn:      "D",
		DepartmentColumn: "E",
		SheetName:        "Sheet1",
		StartRow:         2,
		Role:             role,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

func (r *ImportResult) fail(rowNum int, err error) {
	r.Skipped++
	r.Errors = append(r.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
}

// ImportQuestions imports questions from an Excel or CSV file into the bank
func ImportQuestions(config QuestionImportConfig, repo QuestionAdder) (*ImportResult, error) {
	rows, err := readRows(config.FilePath, config.SheetName, config.StartRow)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for _, r := range rows {
		if isBlank(r.cells) {
			continue
		}
		result.TotalProcessed++

		q, err := parseQuestion(r.cells, config)
		if err != nil {
			result.fail(r.num, err)
			continue
		}
		if repo.AddQuestion(q) == "" {
			result.fail(r.num, fmt.Errorf("question was not stored"))
			continue
		}
		result.Created++
	}
	return result, nil
}

// ImportUsers imports accounts from an Excel or CSV file into config.Role
func ImportUsers(config UserImportConfig, repo UserAdder) (*ImportResult, error) {
	role, ok := models.ParseRole(string(config.Role))
	if !ok {
		return nil, fmt.Errorf("unknown role %q", config.Role)
	}
	rows, err := readRows(config.FilePath, config.SheetName, config.StartRow)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for _, r := range rows {
		if isBlank(r.cells) {
			continue
		}
		result.TotalProcessed++

		u := &models.User{
			ID:         cell(r.cells, config.IDColumn),
			Password:   cell(r.cells, config.PasswordColumn),
			Name:       cell(r.cells, config.NameColumn),
			Email:      cell(r.cells, config.EmailColumn),
			Department: cell(r.cells, config.DepartmentColumn),
		}
		if u.ID == "" || u.Password == "" {
			result.fail(r.num, fmt.Errorf("id and password are required"))
			continue
		}
		if !repo.AddUser(u, role) {
			result.fail(r.num, fmt.Errorf("user %s already exists", u.ID))
			continue
		}
		result.Created++
	}
	return result, nil
}

func parseQuestion(row []string, config QuestionImportConfig) (*models.Question, error) {
	q := &models.Question{
		Text:          cell(row, config.TextColumn),
		CorrectAnswer: cell(row, config.CorrectColumn),
		Type:          cell(row, config.TypeColumn),
		Subject:       cell(row, config.SubjectColumn),
		CreatedBy:     config.CreatedBy,
		Marks:         config.DefaultMarks,
	}
	if q.Text == "" {
		return nil, fmt.Errorf("question text cannot be empty")
	}
	if q.CorrectAnswer == "" {
		return nil, fmt.Errorf("correct answer cannot be empty")
	}
	if raw := cell(row, config.MarksColumn); raw != "" {
		marks, err := strconv.ParseFloat(raw, 64)
		if err != nil || marks < 0 {
			return nil, fmt.Errorf("invalid marks %q", raw)
		}
		q.Marks = marks
	}
	if raw := cell(row, config.OptionsColumn); raw != "" {
		for _, opt := range strings.Split(raw, OptionSeparator) {
			if opt = strings.TrimSpace(opt); opt != "" {
				q.Options = append(q.Options, opt)
			}
		}
	}
	return q, nil
}

type sourceRow struct {
	num   int
	cells []string
}

// readRows returns the rows from startRow on, picking CSV or Excel by extension
func readRows(path, sheet string, startRow int) ([]sourceRow, error) {
	var (
		all [][]string
		err error
	)
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		all, err = readCSV(path)
	} else {
		all, err = readExcel(path, sheet)
	}
	if err != nil {
		return nil, err
	}

	rows := make([]sourceRow, 0, len(all))
	for i, cells := range all {
		if i < startRow-1 {
			continue
		}
		rows = append(rows, sourceRow{num: i + 1, cells: cells})
	}
	return rows, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cell returns the trimmed value of column in row, "" when out of range
func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
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
