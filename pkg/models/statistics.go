package models

// SystemStats aggregates counts over the whole document
type SystemStats struct {
	TotalStudents    int     `json:"totalStudents"`
	TotalExaminers   int     `json:"totalExaminers"`
	TotalAdmins      int     `json:"totalAdmins"`
	TotalExams       int     `json:"totalExams"`
	TotalSubmissions int     `json:"totalSubmissions"`
	TotalQuestions   int     `json:"totalQuestions"`
	TotalSubjects    int     `json:"totalSubjects"`
	ActiveExams      int     `json:"activeExams"`
	PassedExams      int     `json:"passedExams"`
	TotalResults     int     `json:"totalResults"`
	PassRate         float64 `json:"passRate"`
}

// ExaminerStats summarizes one examiner's dashboard
type ExaminerStats struct {
	ActiveExams        int `json:"activeExams"`
	TotalSubmissions   int `json:"totalSubmissions"`
	PendingEvaluations int `json:"pendingEvaluations"` // Submissions still in "submitted" status
	TotalQuestions     int `json:"totalQuestions"`
}
