package repository

import (
	"github.com/pkg/errors"

	"github.com/example/examdesk/pkg/models"
)

// AddUser appends user to the collection of role. It fails for an unknown
// role or when the id is already taken within that role. RegistrationDate is
// stamped when empty.
func (r *Repository) AddUser(user *models.User, role models.Role) bool {
	u := *user
	err := r.update(func(t *txn) error {
		users := t.doc.UsersByRole(role)
		if users == nil {
			return errors.Wrapf(errUnknownRole, "%q", role)
		}
		if indexOfUser(*users, u.ID) >= 0 {
			return errors.Wrapf(errDuplicateUser, "%s %q", role, u.ID)
		}
		if u.RegistrationDate == "" {
			u.RegistrationDate = r.timestamp()
		}
		*users = append(*users, u)
		return nil
	})
	if err != nil {
		r.logFailure("addUser", err)
		return false
	}
	*user = u
	return true
}

// FindUser returns the first user in any role matching id and password
func (r *Repository) FindUser(id, password string) *models.User {
	doc := r.document("findUser")
	if doc == nil {
		return nil
	}
	for _, role := range models.Roles {
		for _, u := range *doc.UsersByRole(role) {
			if u.ID == id && u.Password == password {
				found := u
				return &found
			}
		}
	}
	return nil
}

// GetUserType returns the role of the first collection holding id, or ""
func (r *Repository) GetUserType(id string) models.Role {
	doc := r.document("getUserType")
	if doc == nil {
		return ""
	}
	role, _ := lookupUser(doc, id)
	return role
}

// GetUserByID returns the first user with id, searching students, examiners, then admins
func (r *Repository) GetUserByID(id string) *models.User {
	doc := r.document("getUserById")
	if doc == nil {
		return nil
	}
	_, u := lookupUser(doc, id)
	if u == nil {
		return nil
	}
	found := *u
	return &found
}

// Users returns the collection of role
func (r *Repository) Users(role models.Role) []models.User {
	doc := r.document("users")
	if doc == nil {
		return []models.User{}
	}
	users := doc.UsersByRole(role)
	if users == nil {
		return []models.User{}
	}
	return *users
}

// UpdateUser applies patch to the user with patch.ID. When that user is
// logged in, the session copy is replaced with the updated record.
func (r *Repository) UpdateUser(patch models.UserPatch) bool {
	err := r.update(func(t *txn) error {
		_, u := lookupUser(t.doc, patch.ID)
		if u == nil {
			return errors.Wrapf(errUserNotFound, "%q", patch.ID)
		}
		patch.Apply(u)

		if cur := r.sessionUser(t.kv); cur != nil && cur.ID == patch.ID {
			return writeJSON(t.kv, models.KeyCurrentUser, u)
		}
		return nil
	})
	if err != nil {
		r.logFailure("updateUser", err)
		return false
	}
	return true
}

// DeleteUser removes every user with id and ends their session. The
// document is only written when something was removed. Exams, submissions
// and results of the user are kept.
func (r *Repository) DeleteUser(id string) bool {
	err := r.update(func(t *txn) error {
		removed := false
		for _, role := range models.Roles {
			users := t.doc.UsersByRole(role)
			kept := make([]models.User, 0, len(*users))
			for _, u := range *users {
				if u.ID == id {
					removed = true
					continue
				}
				kept = append(kept, u)
			}
			*users = kept
		}
		if !removed {
			return errNoChange
		}

		if cur := r.sessionUser(t.kv); cur != nil && cur.ID == id {
			return writeJSON(t.kv, models.KeyCurrentUser, nil)
		}
		return nil
	})
	if err != nil {
		r.logFailure("deleteUser", err)
		return false
	}
	return true
}

// lookupUser finds id in role order and returns a pointer into the document
func lookupUser(doc *models.AppData, id string) (models.Role, *models.User) {
	for _, role := range models.Roles {
		users := *doc.UsersByRole(role)
		if i := indexOfUser(users, id); i >= 0 {
			return role, &users[i]
		}
	}
	return "", nil
}

func indexOfUser(users []models.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
