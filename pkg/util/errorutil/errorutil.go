package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes surfaced to the presentation boundary.
const (
	CodeDuplicateUser            = "DUPLICATE_USER"
	CodeInvalidEmailDomain       = "INVALID_EMAIL_DOMAIN"
	CodePasswordTooShort         = "PASSWORD_TOO_SHORT"
	CodePasswordMismatch         = "PASSWORD_MISMATCH"
	CodeMissingRequiredField     = "MISSING_REQUIRED_FIELD"
	CodeInvalidPayload           = "INVALID_PAYLOAD"
	CodeRecipientNotFound        = "RECIPIENT_NOT_FOUND"
	CodeRequestNotFound          = "REQUEST_NOT_FOUND"
	CodeNotAuthorized            = "NOT_AUTHORIZED"
	CodeUnauthorized             = "UNAUTHORIZED"
	CodeCourseNotShared          = "COURSE_NOT_SHARED"
	CodeSlotNotMutuallyAvailable = "SLOT_NOT_MUTUALLY_AVAILABLE"
	CodeSelfRequest              = "SELF_REQUEST"
	CodeInvalidState             = "INVALID_STATE"
	CodeInternalError            = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewDuplicateUser(username string) error {
	return NewDomainError(CodeDuplicateUser, "username already registered", http.StatusConflict, map[string]any{"username": username})
}

func NewInvalidEmailDomain(required string) error {
	return NewDomainError(CodeInvalidEmailDomain, fmt.Sprintf("username must end with %s", required), http.StatusBadRequest, nil)
}

func NewPasswordTooShort(min int) error {
	return NewDomainError(CodePasswordTooShort, fmt.Sprintf("password must be at least %d characters", min), http.StatusBadRequest, nil)
}

func NewPasswordMismatch() error {
	return NewDomainError(CodePasswordMismatch, "passwords do not match", http.StatusBadRequest, nil)
}

func NewMissingRequiredField(field string) error {
	return NewDomainError(CodeMissingRequiredField, fmt.Sprintf("%s is required", field), http.StatusBadRequest, map[string]any{"field": field})
}

func NewInvalidPayload(message string) error {
	return NewDomainError(CodeInvalidPayload, message, http.StatusBadRequest, nil)
}

func NewRecipientNotFound(userID int64) error {
	return NewDomainError(CodeRecipientNotFound, "recipient not found", http.StatusNotFound, map[string]any{"user_id": userID})
}

func NewRequestNotFound(requestID int64) error {
	return NewDomainError(CodeRequestNotFound, "session request not found", http.StatusNotFound, map[string]any{"request_id": requestID})
}

func NewNotAuthorized(message string) error {
	return NewDomainError(CodeNotAuthorized, message, http.StatusForbidden, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewCourseNotShared(course string) error {
	return NewDomainError(CodeCourseNotShared, "course is not shared by both users", http.StatusConflict, map[string]any{"course": course})
}

func NewSlotNotMutuallyAvailable(slot string) error {
	return NewDomainError(CodeSlotNotMutuallyAvailable, "time slot is not available to both users", http.StatusConflict, map[string]any{"time_slot": slot})
}

func NewSelfRequest() error {
	return NewDomainError(CodeSelfRequest, "cannot send a session request to yourself", http.StatusBadRequest, nil)
}

func NewInvalidState(current string) error {
	return NewDomainError(CodeInvalidState, "request status does not allow this transition", http.StatusConflict, map[string]any{"status": current})
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Unrecognized errors
// surface as an opaque internal error, never silently swallowed.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
