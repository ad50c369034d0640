package models

// Role identifies one of the three user collections
type Role string

const (
	RoleStudent  Role = "student"
	RoleExaminer Role = "examiner"
	RoleAdmin    Role = "admin"
)

// Roles lists the roles in lookup order
var Roles = []Role{RoleStudent, RoleExaminer, RoleAdmin}

// ParseRole accepts both the singular role name and the collection name
func ParseRole(s string) (Role, bool) {
	switch s {
	case "student", "students":
		return RoleStudent, true
	case "examiner", "examiners":
		return RoleExaminer, true
	case "admin", "admins":
		return RoleAdmin, true
	}
	return "", false
}

// Collection returns the document collection name for the role
func (r Role) Collection() string {
	return string(r) + "s"
}
