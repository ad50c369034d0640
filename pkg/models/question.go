package models

// Question is a single gradable item. Exams embed copies of questions.
type Question struct {
	ID            string   `json:"id" yaml:"id"`
	Text          string   `json:"text,omitempty" yaml:"text,omitempty"`
	Type          string   `json:"type,omitempty" yaml:"type,omitempty"` // e.g. "multiple_choice", "true_false"
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correctAnswer"`
	Marks         float64  `json:"marks" yaml:"marks"`
	Subject       string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	CreatedBy     string   `json:"createdBy,omitempty" yaml:"createdBy,omitempty"`
	CreatedAt     string   `json:"createdAt" yaml:"createdAt"`
}
