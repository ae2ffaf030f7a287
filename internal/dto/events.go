package dto

// RegistrationSubmittedEvent is published after a profile record is written.
type RegistrationSubmittedEvent struct {
	PublicID    string  `json:"public_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Phone       string  `json:"phone,omitempty"`
	Email       string  `json:"email"`
	University  string  `json:"university"`
	Program     string  `json:"program"`
	ResumeURL   *string `json:"resume_url,omitempty"`
	SubmittedAt string  `json:"submitted_at"`
}
