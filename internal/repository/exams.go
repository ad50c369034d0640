package repository

import (
	"github.com/example/examdesk/pkg/models"
)

// AddExam assigns the next EXAMnnn id, defaults questions to empty and status
// to active, stamps createdAt and stores the exam. It returns the id, or ""
// when nothing was stored.
func (r *Repository) AddExam(exam *models.Exam) string {
	e := *exam
	err := r.update(func(t *txn) error {
		e.ID = nextID(t.doc, prefixExam, len(t.doc.Exams))
		if e.Questions == nil {
			e.Questions = []models.Question{}
		}
		if e.Status == "" {
			e.Status = models.ExamStatusActive
		}
		e.CreatedAt = r.timestamp()
		t.doc.Exams = append(t.doc.Exams, e)
		return nil
	})
	if err != nil {
		r.logFailure("addExam", err)
		return ""
	}
	*exam = e
	return e.ID
}

// Exams returns every exam
func (r *Repository) Exams() []models.Exam {
	doc := r.document("exams")
	if doc == nil {
		return []models.Exam{}
	}
	return doc.Exams
}

// GetExamByID returns the exam with id, or nil
func (r *Repository) GetExamByID(id string) *models.Exam {
	doc := r.document("getExamById")
	if doc == nil {
		return nil
	}
	return findExam(doc, id)
}

// GetExamsByExaminer returns the exams created by examiner id
func (r *Repository) GetExamsByExaminer(id string) []models.Exam {
	doc := r.document("getExamsByExaminer")
	if doc == nil {
		return []models.Exam{}
	}
	return examsByExaminer(doc, id)
}

// AddQuestion assigns the next Qnnn id, stamps createdAt and stores the
// question. It returns the id, or "" when nothing was stored.
func (r *Repository) AddQuestion(question *models.Question) string {
	q := *question
	err := r.update(func(t *txn) error {
		q.ID = nextID(t.doc, prefixQuestion, len(t.doc.Questions))
		q.CreatedAt = r.timestamp()
		t.doc.Questions = append(t.doc.Questions, q)
		return nil
	})
	if err != nil {
		r.logFailure("addQuestion", err)
		return ""
	}
	*question = q
	return q.ID
}

// Questions returns the question bank
func (r *Repository) Questions() []models.Question {
	doc := r.document("questions")
	if doc == nil {
		return []models.Question{}
	}
	return doc.Questions
}

func findExam(doc *models.AppData, id string) *models.Exam {
	for i := range doc.Exams {
		if doc.Exams[i].ID == id {
			return &doc.Exams[i]
		}
	}
	return nil
}

func examsByExaminer(doc *models.AppData, id string) []models.Exam {
	exams := []models.Exam{}
	for _, e := range doc.Exams {
		if e.CreatedBy == id {
			exams = append(exams, e)
		}
	}
	return exams
}
