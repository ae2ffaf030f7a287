package dto

type Notification struct {
	Status  string // success | error
	Message string
}

// FormState is what the registration page renders: the echoed field values,
// per-field error flags and the outcome of the last submit.
type FormState struct {
	FirstName       string
	FirstNameError  bool
	LastName        string
	LastNameError   bool
	Phone           string
	Email           string
	EmailError      bool
	University      string
	UniversityError bool
	Program         string
	ProgramError    bool
	FileName        string
	ErrorSummary    string

	ResumeWarning bool
	SubmitEnabled bool
	Notification  *Notification
}

func NewFormState() FormState {
	return FormState{SubmitEnabled: true}
}

// FormStateFromResult rebuilds the page state after a submit. Values are
// echoed back unless the submission succeeded.
func FormStateFromResult(form RegistrationForm, res SubmissionResult) FormState {
	state := NewFormState()

	if res.Status != SubmissionSuccess {
		state.FirstName = form.FirstName
		state.LastName = form.LastName
		state.Phone = form.Phone
		state.Email = form.Email
		state.University = form.University
		state.Program = form.Program
		if form.Resume != nil {
			state.FileName = form.Resume.Filename
		}
	}

	state.FirstNameError = res.FieldErrors["first_name"]
	state.LastNameError = res.FieldErrors["last_name"]
	state.EmailError = res.FieldErrors["email"]
	state.UniversityError = res.FieldErrors["university"]
	state.ProgramError = res.FieldErrors["program"]
	state.ResumeWarning = res.ResumeWarning

	switch res.Status {
	case SubmissionValidationError:
		state.ErrorSummary = res.Message
	case SubmissionSuccess:
		state.Notification = &Notification{Status: "success", Message: res.Message}
	case SubmissionFailure:
		state.Notification = &Notification{Status: "error", Message: res.Message}
	}

	return state
}
