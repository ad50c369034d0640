package excel

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/example/examdesk/internal/kvstore"
	"github.com/example/examdesk/internal/repository"
	"github.com/example/examdesk/pkg/models"
)

func newTestRepo(t *testing.T) *repository.Repository {
	t.Helper()
	l := logrus.New()
	l.Out = io.Discard
	repo, err := repository.New(kvstore.NewMemoryStore(0), repository.WithLogger(l))
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	return repo
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.xlsx")
	f := excelize.NewFile()
	defer f.Close()
	for i := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cellName, &rows[i]); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportQuestionsFromExcel(t *testing.T) {
	repo := newTestRepo(t)
	path := writeWorkbook(t, [][]interface{}{
		{"Text", "Options", "Correct", "Marks", "Type", "Subject"},
		{"2+2", "3|4| 5 ", "4", 2, "mcq", "Maths"},
		{"Capital of France", "", "Paris", "", "short", "Geography"},
		{"", "a|b", "a", 1},
		{"Bad marks", "", "x", "lots"},
	})

	config := DefaultQuestionImportConfig()
	config.FilePath = path
	config.CreatedBy = "ex1"

	result, err := ImportQuestions(config, repo)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.TotalProcessed != 4 || result.Created != 2 || result.Skipped != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}

	questions := repo.Questions()
	if len(questions) != 2 {
		t.Fatalf("expected 2 stored questions, got %d", len(questions))
	}
	first := questions[0]
	if first.ID != "Q001" || first.Text != "2+2" || first.CorrectAnswer != "4" || first.Marks != 2 {
		t.Errorf("unexpected first question: %+v", first)
	}
	if !reflect.DeepEqual([]string{"3", "4", "5"}, first.Options) {
		t.Errorf("unexpected options: %v", first.Options)
	}
	if first.CreatedBy != "ex1" || first.Subject != "Maths" || first.Type != "mcq" {
		t.Errorf("unexpected metadata: %+v", first)
	}
	if questions[1].Marks != 1 {
		t.Errorf("expected default marks, got %v", questions[1].Marks)
	}
}

func TestImportQuestionsFromCSV(t *testing.T) {
	repo := newTestRepo(t)
	path := writeFile(t, "questions.csv", "text,options,correct,marks\n\"Pick one\",\"A|B\",B,5\n,,,\n")

	config := DefaultQuestionImportConfig()
	config.FilePath = path

	result, err := ImportQuestions(config, repo)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Created != 1 || result.TotalProcessed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if q := repo.Questions()[0]; q.Marks != 5 || q.CorrectAnswer != "B" {
		t.Errorf("unexpected question: %+v", q)
	}
}

func TestImportUsers(t *testing.T) {
	repo := newTestRepo(t)
	path := writeFile(t, "users.csv", "id,password,name,email,department\n"+
		"s1,pw,Sam,sam@example.com,\n"+
		"s2,,Kim,,\n"+
		"s1,pw2,Again,,\n")

	config := DefaultUserImportConfig(models.RoleStudent)
	config.FilePath = path

	result, err := ImportUsers(config, repo)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.TotalProcessed != 3 || result.Created != 1 || result.Skipped != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}

	u := repo.GetUserByID("s1")
	if u == nil || u.Name != "Sam" || u.Email != "sam@example.com" || u.Password != "pw" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if repo.GetUserType("s1") != models.RoleStudent {
		t.Errorf("expected student role")
	}
}

func TestImportUsersUnknownRole(t *testing.T) {
	config := DefaultUserImportConfig(models.Role("guest"))
	config.FilePath = writeFile(t, "users.csv", "id,password\n")

	if _, err := ImportUsers(config, newTestRepo(t)); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestImportMissingFile(t *testing.T) {
	config := DefaultQuestionImportConfig()
	config.FilePath = filepath.Join(t.TempDir(), "missing.xlsx")

	if _, err := ImportQuestions(config, newTestRepo(t)); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func sampleResults() []models.Result {
	return []models.Result{
		{ID: "RES001", StudentID: "s1", ExamID: "EXAM001", Score: 40, TotalMarks: 100, Percentage: 40, Status: models.ResultFailed, SubmittedAt: "2024-03-01T09:30:00.000Z"},
		{ID: "RES002", StudentID: "s2", ExamID: "EXAM001", Score: 1, TotalMarks: 3, Percentage: 33.3, Status: models.ResultFailed, SubmittedAt: "2024-03-01T09:31:00.000Z"},
	}
}

func TestExportResultsExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.xlsx")
	if err := ExportResults(path, sampleResults()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open export: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ResultsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if !reflect.DeepEqual(resultHeader, rows[0]) {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "RES001" || rows[2][1] != "s2" || rows[2][6] != models.ResultFailed {
		t.Errorf("unexpected rows: %v", rows[1:])
	}
}

func TestExportResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := ExportResults(path, sampleResults()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Result ID,Student ID,Exam ID,Score,Total Marks,Percentage,Status,Submitted At\n" +
		"RES001,s1,EXAM001,40,100,40,failed,2024-03-01T09:30:00.000Z\n" +
		"RES002,s2,EXAM001,1,3,33.3,failed,2024-03-01T09:31:00.000Z\n"
	if string(data) != want {
		t.Errorf("unexpected CSV:\n%s", data)
	}
}

func TestColumnToIndex(t *testing.T) {
	tests := map[string]int{"A": 0, "b": 1, "Z": 25, "AA": 26, "AB": 27}
	for col, want := range tests {
		if got := columnToIndex(col); got != want {
			t.Errorf("columnToIndex(%q) = %d, want %d", col, got, want)
		}
	}
}
