package repository

import (
	"github.com/pkg/errors"

	"github.com/example/examdesk/internal/kvstore"
	"github.com/example/examdesk/pkg/models"
)

// Snapshot returns a copy of the whole document, or nil when there is none
func (r *Repository) Snapshot() *models.AppData {
	return r.document("snapshot")
}

// Restore replaces the document with doc and ends the current session
func (r *Repository) Restore(doc *models.AppData) bool {
	if doc == nil {
		r.logFailure("restore", errors.New("nil document"))
		return false
	}
	doc.Normalize()

	err := r.store.Update(func(tx kvstore.Tx) error {
		if err := writeJSON(tx, models.KeyAppData, doc); err != nil {
			return err
		}
		return writeJSON(tx, models.KeyCurrentUser, nil)
	})
	if err != nil {
		r.logFailure("restore", err)
		return false
	}
	return true
}
