package models

// Keys of the two top-level store entries
const (
	KeyAppData     = "appData"
	KeyCurrentUser = "currentUser"
)

// Users groups the three role collections
type Users struct {
	Students  []User `json:"students" yaml:"students"`
	Examiners []User `json:"examiners" yaml:"examiners"`
	Admins    []User `json:"admins" yaml:"admins"`
}

// AppData is the whole persisted document
type AppData struct {
	Users       Users          `json:"users" yaml:"users"`
	Exams       []Exam         `json:"exams" yaml:"exams"`
	Submissions []Submission   `json:"submissions" yaml:"submissions"`
	Results     []Result       `json:"results" yaml:"results"`
	Questions   []Question     `json:"questions" yaml:"questions"`
	Subjects    []Subject      `json:"subjects" yaml:"subjects"`
	Sequences   map[string]int `json:"sequences,omitempty" yaml:"sequences,omitempty"` // Last issued number per id prefix
}

// NewAppData returns an empty document with every collection allocated,
// so it encodes as empty arrays rather than null
func NewAppData() *AppData {
	return &AppData{
		Users: Users{
			Students:  []User{},
			Examiners: []User{},
			Admins:    []User{},
		},
		Exams:       []Exam{},
		Submissions: []Submission{},
		Results:     []Result{},
		Questions:   []Question{},
		Subjects:    []Subject{},
	}
}

// Normalize replaces nil collections with empty ones. Documents written by
// older versions may lack some of them.
func (d *AppData) Normalize() {
	if d.Users.Students == nil {
		d.Users.Students = []User{}
	}
	if d.Users.Examiners == nil {
		d.Users.Examiners = []User{}
	}
	if d.Users.Admins == nil {
		d.Users.Admins = []User{}
	}
	if d.Exams == nil {
		d.Exams = []Exam{}
	}
	if d.Submissions == nil {
		d.Submissions = []Submission{}
	}
	if d.Results == nil {
		d.Results = []Result{}
	}
	if d.Questions == nil {
		d.Questions = []Question{}
	}
	if d.Subjects == nil {
		d.Subjects = []Subject{}
	}
}

// UsersByRole returns a pointer to the collection for role, or nil for an unknown role
func (d *AppData) UsersByRole(role Role) *[]User {
	switch role {
	case RoleStudent:
		return &d.Users.Students
	case RoleExaminer:
		return &d.Users.Examiners
	case RoleAdmin:
		return &d.Users.Admins
	}
	return nil
}
