package repository

import (
	"github.com/example/examdesk/internal/grading"
	"github.com/example/examdesk/pkg/models"
)

// GetSystemStats aggregates counts over the whole document. It returns nil
// when there is no document.
func (r *Repository) GetSystemStats() *models.SystemStats {
	doc := r.document("getSystemStats")
	if doc == nil {
		return nil
	}

	stats := &models.SystemStats{
		TotalStudents:    len(doc.Users.Students),
		TotalExaminers:   len(doc.Users.Examiners),
		TotalAdmins:      len(doc.Users.Admins),
		TotalExams:       len(doc.Exams),
		TotalSubmissions: len(doc.Submissions),
		TotalQuestions:   len(doc.Questions),
		TotalSubjects:    len(doc.Subjects),
		TotalResults:     len(doc.Results),
	}
	for _, e := range doc.Exams {
		if e.Status == models.ExamStatusActive {
			stats.ActiveExams++
		}
	}
	for _, res := range doc.Results {
		if res.Status == models.ResultPassed {
			stats.PassedExams++
		}
	}
	stats.PassRate = grading.Percentage(float64(stats.PassedExams), float64(stats.TotalResults))
	return stats
}

// GetExaminerStats summarizes the dashboard of examiner id. TotalQuestions
// counts the whole question bank.
func (r *Repository) GetExaminerStats(id string) models.ExaminerStats {
	var stats models.ExaminerStats

	doc := r.document("getExaminerStats")
	if doc == nil {
		return stats
	}

	for _, e := range examsByExaminer(doc, id) {
		if e.Status == models.ExamStatusActive {
			stats.ActiveExams++
		}
	}
	subs := submissionsForExaminer(doc, id)
	stats.TotalSubmissions = len(subs)
	for _, s := range subs {
		if s.Status == models.SubmissionStatusSubmitted {
			stats.PendingEvaluations++
		}
	}
	stats.TotalQuestions = len(doc.Questions)
	return stats
}
