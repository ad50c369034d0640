package models

// Subject is a course area exams and questions can be filed under
type Subject struct {
	Name        string `json:"name" yaml:"name"`
	Code        string `json:"code,omitempty" yaml:"code,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty" yaml:"createdBy,omitempty"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
}
