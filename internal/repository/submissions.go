package repository

import (
	"github.com/example/examdesk/internal/grading"
	"github.com/example/examdesk/pkg/models"
)

// AddSubmission records a submission and grades it. The submission gets the
// next SUBnnn id, a submittedAt stamp and the submitted status; its answers
// are scored against the referenced exam and the derived Result (RESnnn) is
// stored in the same transaction. It returns the result, or nil when nothing
// was stored.
func (r *Repository) AddSubmission(submission *models.Submission) *models.Result {
	s := *submission
	var result models.Result

	err := r.update(func(t *txn) error {
		s.ID = nextID(t.doc, prefixSubmission, len(t.doc.Submissions))
		s.SubmittedAt = r.timestamp()
		s.Status = models.SubmissionStatusSubmitted
		if s.Answers == nil {
			s.Answers = []string{}
		}
		t.doc.Submissions = append(t.doc.Submissions, s)

		outcome := grading.Grade(findExam(t.doc, s.ExamID), s.Answers, r.defaultPass)
		result = models.Result{
			ID:          nextID(t.doc, prefixResult, len(t.doc.Results)),
			StudentID:   s.StudentID,
			ExamID:      s.ExamID,
			Score:       outcome.Score,
			TotalMarks:  outcome.TotalMarks,
			Percentage:  outcome.Percentage,
			Status:      outcome.Status,
			SubmittedAt: s.SubmittedAt,
		}
		t.doc.Results = append(t.doc.Results, result)
		return nil
	})
	if err != nil {
		r.logFailure("addSubmission", err)
		return nil
	}

	r.log.WithField("op", "addSubmission").Debugf("Graded %s for %s: %v/%v (%s)",
		s.ID, s.StudentID, result.Score, result.TotalMarks, result.Status)
	*submission = s
	return &result
}

// Submissions returns every submission
func (r *Repository) Submissions() []models.Submission {
	doc := r.document("submissions")
	if doc == nil {
		return []models.Submission{}
	}
	return doc.Submissions
}

// GetSubmissionsForExaminer returns submissions to exams created by examiner id
func (r *Repository) GetSubmissionsForExaminer(id string) []models.Submission {
	doc := r.document("getSubmissionsForExaminer")
	if doc == nil {
		return []models.Submission{}
	}
	return submissionsForExaminer(doc, id)
}

// GetStudentResults returns the results of student id
func (r *Repository) GetStudentResults(id string) []models.Result {
	doc := r.document("getStudentResults")
	if doc == nil {
		return []models.Result{}
	}
	results := []models.Result{}
	for _, res := range doc.Results {
		if res.StudentID == id {
			results = append(results, res)
		}
	}
	return results
}

// AllResults returns every result, for reporting
func (r *Repository) AllResults() []models.Result {
	doc := r.document("allResults")
	if doc == nil {
		return []models.Result{}
	}
	return doc.Results
}

func submissionsForExaminer(doc *models.AppData, id string) []models.Submission {
	examIDs := make(map[string]bool)
	for _, e := range examsByExaminer(doc, id) {
		examIDs[e.ID] = true
	}

	subs := []models.Submission{}
	for _, s := range doc.Submissions {
		if examIDs[s.ExamID] {
			subs = append(subs, s)
		}
	}
	return subs
}
