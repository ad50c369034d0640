package models

// ExamStatusActive is the default status given to new exams
const ExamStatusActive = "active"

// Exam is a set of questions created by an examiner
type Exam struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Subject     string     `json:"subject,omitempty" yaml:"subject,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Duration    int        `json:"duration,omitempty" yaml:"duration,omitempty"` // Minutes
	Questions   []Question `json:"questions" yaml:"questions"`
	Status      string     `json:"status" yaml:"status"`
	// Pass threshold as a percentage; nil when the exam sets none
	PassMarks   *float64   `json:"passMarks,omitempty" yaml:"passMarks,omitempty"`
	CreatedBy   string     `json:"createdBy" yaml:"createdBy"` // Examiner ID
	CreatedAt   string     `json:"createdAt" yaml:"createdAt"`
}

// PassMark returns a pass threshold for Exam.PassMarks
func PassMark(percentage float64) *float64 {
	return &percentage
}
