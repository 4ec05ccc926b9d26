package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// API Errors.

	// ErrUnauthorized indicates the API rejected the session token.
	// The stored token is cleared when this is returned.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrServer indicates the API answered with a 5xx status.
	ErrServer = errors.New("server error")

	// ErrTransport indicates the request never produced a response.
	ErrTransport = errors.New("transport failure")

	// Session Errors.

	// ErrNoSession indicates no token is configured.
	ErrNoSession = errors.New("not logged in")

	// ErrStaleResponse indicates a response arrived after a newer request
	// for the same concern was issued and was discarded.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrQuestionnaireIncomplete indicates compatibility data does not exist
	// yet because one or both sides have not completed the questionnaire.
	ErrQuestionnaireIncomplete = errors.New("questionnaire incomplete")
)

// Messages shown to users in place of raw errors.
const (
	// MsgTryAgain is shown for transport and server failures.
	MsgTryAgain = "Failed to load data. Please try again later."

	// MsgQuestionnaire is shown when compatibility data is missing.
	MsgQuestionnaire = "Compatibility data is not available yet. " +
		"Complete your questionnaire (and ask your match to complete theirs) to see this breakdown."

	// MsgLogin is shown when no session exists or the token was rejected.
	MsgLogin = "Your session has expired. Run 'karmicdd login' to sign in again."

	// MsgRateLimited is shown when the API throttles the client.
	MsgRateLimited = "Too many requests. Please wait a moment and try again."
)

// UserMessage converts an error into the text a user should see.
// Returns an empty string for a nil error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrQuestionnaireIncomplete):
		return MsgQuestionnaire
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrNoSession):
		return MsgLogin
	case errors.Is(err, ErrRateLimited):
		return MsgRateLimited
	case errors.Is(err, ErrInvalidInput):
		return err.Error()
	default:
		return MsgTryAgain
	}
}
