package models

// SubmissionStatusSubmitted is the only status a submission ever gets
const SubmissionStatusSubmitted = "submitted"

// Submission holds a student's answers for an exam.
// Answers[i] is the answer to the exam's Questions[i].
type Submission struct {
	ID          string   `json:"id" yaml:"id"`
	ExamID      string   `json:"examId" yaml:"examId"`
	StudentID   string   `json:"studentId" yaml:"studentId"`
	Answers     []string `json:"answers" yaml:"answers"`
	Status      string   `json:"status" yaml:"status"`
	SubmittedAt string   `json:"submittedAt" yaml:"submittedAt"`
}
