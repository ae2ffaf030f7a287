package dto

// ===== Common responses =====

type APIError struct {
	Error string `json:"error"`
}

type APISuccessResult struct {
	Data SubmissionResult `json:"data"`
}

type APISuccessTimeline struct {
	Data []TimelineElement `json:"data"`
}

type APISuccessList struct {
	Data RegistrationListResponse `json:"data"`
}
