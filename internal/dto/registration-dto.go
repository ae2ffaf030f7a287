package dto

import "time"

type SubmissionStatus string

const (
	SubmissionSuccess         SubmissionStatus = "success"
	SubmissionValidationError SubmissionStatus = "validation_error"
	SubmissionResumeWarning   SubmissionStatus = "resume_warning"
	SubmissionFailure         SubmissionStatus = "failure"
)

// ResumeFile is the uploaded resume. Size is the size reported by the client,
// Bytes may be empty when the payload was too large to read.
type ResumeFile struct {
	Filename    string
	ContentType string
	Size        int64
	Bytes       []byte
}

type RegistrationForm struct {
	FirstName  string `json:"first_name" form:"first_name" validate:"required"`
	LastName   string `json:"last_name" form:"last_name" validate:"required"`
	Phone      string `json:"phone" form:"phone"`
	Email      string `json:"email" form:"email" validate:"required"`
	University string `json:"university" form:"university" validate:"required"`
	Program    string `json:"program" form:"program" validate:"required"`

	Resume *ResumeFile `json:"-" form:"-"`
}

type SubmissionResult struct {
	Status        SubmissionStatus      `json:"status"`
	Message       string                `json:"message"`
	FieldErrors   map[string]bool       `json:"field_errors,omitempty"`
	ResumeWarning bool                  `json:"resume_warning"`
	Registration  *RegistrationResponse `json:"registration,omitempty"`

	// Err carries the cause of a failure for logging and status mapping.
	Err error `json:"-"`
}

type RegistrationResponse struct {
	PublicID   string    `json:"public_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email"`
	University string    `json:"university"`
	Program    string    `json:"program"`
	ResumeURL  *string   `json:"resume_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type RegistrationListResponse struct {
	Total         int64                  `json:"total"`
	Registrations []RegistrationResponse `json:"registrations"`
}
