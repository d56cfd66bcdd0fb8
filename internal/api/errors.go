package api

import (
	"context"
	"errors"
	"fmt"
)

// ReturnCode is the outcome reported in every API response envelope
type ReturnCode string

const (
	CodeSuccess             ReturnCode = "SUCCESS"
	CodeNoRounds            ReturnCode = "NO_ROUNDS"
	CodeUnauthorized        ReturnCode = "UNAUTHORIZED"
	CodeNewRoundCreated     ReturnCode = "NEW_ROUND_CREATED"
	CodeCompetitionComplete ReturnCode = "COMPETITION_COMPLETE"
	CodeNoResultsToProcess  ReturnCode = "NO_RESULTS_TO_PROCESS"
	CodeValidationError     ReturnCode = "VALIDATION_ERROR"
	CodeNotFound            ReturnCode = "NOT_FOUND"
	CodeRoundLocked         ReturnCode = "ROUND_LOCKED"
	CodeServerError         ReturnCode = "SERVER_ERROR"

	// codeTransport is used locally when no envelope could be read
	codeTransport ReturnCode = "TRANSPORT_ERROR"

	// codeUnknown labels metrics for codes outside the known set
	codeUnknown ReturnCode = "UNKNOWN"
)

// Known reports whether the code is one the API documents
func (c ReturnCode) Known() bool {
	switch c {
	case CodeSuccess, CodeNoRounds, CodeUnauthorized, CodeNewRoundCreated,
		CodeCompetitionComplete, CodeNoResultsToProcess, CodeValidationError,
		CodeNotFound, CodeRoundLocked, CodeServerError, codeTransport:
		return true
	}
	return false
}

// Category groups failures by how a user should be told about them
type Category string

const (
	// CategoryAuth means the session is missing, expired or rejected; the user must log in again
	CategoryAuth Category = "auth"

	// CategoryEmpty is an expected empty state, not a failure
	CategoryEmpty Category = "empty"

	// CategoryTransport covers network and decoding failures; the user may retry
	CategoryTransport Category = "transport"

	// CategoryFailure is any other rejected request
	CategoryFailure Category = "failure"

	// CategoryRollback means an optimistic change was reverted
	CategoryRollback Category = "rollback"
)

// Error is a request that did not succeed
type Error struct {
	Endpoint string
	Code     ReturnCode
	Message  string
	Category Category
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Endpoint == "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Endpoint, e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrSessionExpired is returned before any request is made with an expired token
var ErrSessionExpired = &Error{Code: CodeUnauthorized, Message: "session expired", Category: CategoryAuth}

// ErrNoSession is returned when a call needing auth has no session
var ErrNoSession = &Error{Code: CodeUnauthorized, Message: "not logged in", Category: CategoryAuth}

// CategoryFor maps a return code to its error category. Unknown codes are
// generic failures.
func CategoryFor(code ReturnCode) Category {
	switch code {
	case CodeUnauthorized:
		return CategoryAuth
	case CodeNoRounds:
		return CategoryEmpty
	case codeTransport:
		return CategoryTransport
	default:
		return CategoryFailure
	}
}

// CategoryOf returns the category of any error returned by this package.
// Context cancellation and deadlines count as transport failures.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Category
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CategoryTransport
	}
	return CategoryFailure
}

// IsAuth reports whether err means the session must be discarded
func IsAuth(err error) bool {
	return CategoryOf(err) == CategoryAuth
}

// CodeOf returns the return code carried by err, empty if none
func CodeOf(err error) ReturnCode {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// Rollback wraps err to report that an optimistic change was reverted
func Rollback(err error) *Error {
	e := &Error{Code: CodeOf(err), Message: "change reverted", Category: CategoryRollback, Err: err}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		e.Endpoint = apiErr.Endpoint
		if apiErr.Message != "" {
			e.Message = apiErr.Message
		}
	}
	return e
}
