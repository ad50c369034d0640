package repository

import (
	"github.com/example/examdesk/pkg/models"
)

// CurrentUser returns the logged in user, or nil
func (r *Repository) CurrentUser() *models.User {
	return r.sessionUser(r.store)
}

// Login checks the credentials and stores the matching user as the session.
// It returns nil when the credentials match no user or the session cannot be stored.
func (r *Repository) Login(id, password string) *models.User {
	u := r.FindUser(id, password)
	if u == nil {
		r.log.WithField("id", id).Info("Login rejected")
		return nil
	}
	if !r.Set(models.KeyCurrentUser, u) {
		return nil
	}
	return u
}

// Logout clears the session
func (r *Repository) Logout() bool {
	return r.Set(models.KeyCurrentUser, nil)
}

// Authorize reports whether someone is logged in and, when required is not
// empty, whether their account belongs to that role
func (r *Repository) Authorize(required models.Role) bool {
	cur := r.CurrentUser()
	if cur == nil {
		return false
	}
	if required == "" {
		return true
	}
	return r.GetUserType(cur.ID) == required
}
