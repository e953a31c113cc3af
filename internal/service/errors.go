package service

import "github.com/vhtran/talentflow/internal/dto"

// AuthoringError carries the defects that blocked an assessment save.
type AuthoringError struct {
	Details []string
}

func (e *AuthoringError) Error() string {
	return "assessment failed authoring validation"
}

// SubmissionRejectedError carries the validation failures that blocked a
// candidate's submit attempt. Nothing is persisted when it is returned.
type SubmissionRejectedError struct {
	Failures []dto.ValidationFailure
}

func (e *SubmissionRejectedError) Error() string {
	return "submission rejected by validation"
}
