package models

// User is a registered account. The same shape is used for students,
// examiners and admins; which fields are filled depends on the role.
type User struct {
	ID               string `json:"id" yaml:"id"` // Login name, unique within its role collection
	Password         string `json:"password" yaml:"password"`
	RegistrationDate string `json:"registrationDate" yaml:"registrationDate"`
	Name             string `json:"name,omitempty" yaml:"name,omitempty"`
	Email            string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone            string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Department       string `json:"department,omitempty" yaml:"department,omitempty"`
	Institution      string `json:"institution,omitempty" yaml:"institution,omitempty"`
	Course           string `json:"course,omitempty" yaml:"course,omitempty"`
}

// UserPatch lists the mutable fields of a User. Nil fields are left untouched.
type UserPatch struct {
	ID          string
	Password    *string
	Name        *string
	Email       *string
	Phone       *string
	Department  *string
	Institution *string
	Course      *string
}

// Apply copies every non-nil field of the patch onto u
func (p UserPatch) Apply(u *User) {
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Institution != nil {
		u.Institution = *p.Institution
	}
	if p.Course != nil {
		u.Course = *p.Course
	}
}
