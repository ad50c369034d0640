package models

// Result statuses
const (
	ResultPassed = "passed"
	ResultFailed = "failed"
)

// Result is derived from a Submission when it is recorded
type Result struct {
	ID          string  `json:"id" yaml:"id"`
	StudentID   string  `json:"studentId" yaml:"studentId"`
	ExamID      string  `json:"examId" yaml:"examId"`
	Score       float64 `json:"score" yaml:"score"`
	TotalMarks  float64 `json:"totalMarks" yaml:"totalMarks"`
	Percentage  float64 `json:"percentage" yaml:"percentage"` // Rounded to one decimal
	Status      string  `json:"status" yaml:"status"`
	SubmittedAt string  `json:"submittedAt" yaml:"submittedAt"`
}
