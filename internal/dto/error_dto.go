package dto

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// ValidationFailure is one per-submission validation defect.
type ValidationFailure struct {
	QuestionID uint   `json:"questionId"`
	Reason     string `json:"reason"` // required_field_missing, length_exceeded, number_out_of_range
	Message    string `json:"message"`
}

// RejectedResponse is the 422 body returned when a submission fails validation.
type RejectedResponse struct {
	Message  string              `json:"message"`
	Failures []ValidationFailure `json:"failures"`
}
