// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Classification errors. Each one interrupts a classification and is shown
// to the user in place of a result.
var (
	ErrNoInputSelected     = errors.New("no image selected")
	ErrRemoteCallFailed    = errors.New("remote classification failed")
	ErrExplicitRefusal     = errors.New("model refused to classify the image")
	ErrUnparseableResponse = errors.New("unexpected model output format")

	// ErrClassificationPending is returned when a classification is submitted
	// while another one is still in flight.
	ErrClassificationPending = errors.New("classification already in progress")
)

// Configuration errors.
var (
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// User-facing messages for the classification errors.
const (
	MsgNoInputSelected     = "Please select an image first."
	MsgRemoteCallFailed    = "Failed to get a response from the AI model. Please try again."
	MsgExplicitRefusal     = "Unable to classify. Please upload a clearer waste image."
	MsgUnparseableResponse = "Failed to parse the classification result. The model may have returned an unexpected format."
	MsgClassificationBusy  = "A classification is already running. Please wait for it to finish."
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the message meant for the user. Errors that are not a
// UserError fall back to their own text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
