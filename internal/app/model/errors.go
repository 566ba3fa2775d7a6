package model

// ErrorResponse is the body shape of a rejected request.
type ErrorResponse struct {
	Success          bool                  `json:"success"`
	Message          string                `json:"message"`
	ValidationErrors []ValidationErrorItem `json:"validationErrors,omitempty"`
}

type ValidationErrorItem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
