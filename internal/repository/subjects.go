package repository

import (
	"github.com/example/examdesk/pkg/models"
)

// AddSubject stamps createdAt and stores the subject. Once the document has
// been loaded it reports true even if the final write fails; that failure is
// only logged.
func (r *Repository) AddSubject(subject *models.Subject) bool {
	s := *subject
	err := r.update(func(t *txn) error {
		s.CreatedAt = r.timestamp()
		t.doc.Subjects = append(t.doc.Subjects, s)
		return nil
	})
	if err != nil {
		r.logFailure("addSubject", err)
		if !reachedStore(err) {
			return false
		}
	}
	*subject = s
	return true
}

// Subjects returns every subject
func (r *Repository) Subjects() []models.Subject {
	doc := r.document("subjects")
	if doc == nil {
		return []models.Subject{}
	}
	return doc.Subjects
}
