package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/stub/auth"
)

// APIError is the error response body. Clients read message first, so
// every mapped error carries one.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeRoleNotFound        = "ROLE_NOT_FOUND"
	CodeCharacterNotFound   = "CHARACTER_NOT_FOUND"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeNoSlotsLeft         = "NO_SLOTS_LEFT"
	CodeNotOwner            = "NOT_OWNER"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeSessionNotOpen      = "SESSION_NOT_OPEN"
	CodeSessionFull         = "SESSION_FULL"
	CodeAlreadySignedUp     = "ALREADY_SIGNED_UP"
	CodeNotSignedUp         = "NOT_SIGNED_UP"
	CodeScheduledInPast     = "SCHEDULED_IN_PAST"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.apiError)
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRoleNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoleNotFound, "Role not found"}}
	case errors.Is(err, model.ErrCharacterNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCharacterNotFound, "Character not found"}}
	case errors.Is(err, model.ErrNotCharacterOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotOwner, "You do not own this character"}}
	case errors.Is(err, model.ErrNoSlotsLeft):
		return &httpError{http.StatusConflict, APIError{CodeNoSlotsLeft, "No character slots available"}}
	case errors.Is(err, model.ErrCharacterNotPending):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTransition, "Character is not awaiting approval"}}
	case errors.Is(err, model.ErrCharacterNotApproved):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTransition, "Character is not approved"}}
	case errors.Is(err, model.ErrCharacterNotDead):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTransition, "Character is not dead"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrNotSessionDM):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Only the session DM can perform this action"}}
	case errors.Is(err, model.ErrSessionNotOpen):
		return &httpError{http.StatusConflict, APIError{CodeSessionNotOpen, "Session is not open"}}
	case errors.Is(err, model.ErrSessionFull):
		return &httpError{http.StatusConflict, APIError{CodeSessionFull, "Maximum 10 players allowed"}}
	case errors.Is(err, model.ErrAlreadySignedUp):
		return &httpError{http.StatusConflict, APIError{CodeAlreadySignedUp, "Already signed up for this session"}}
	case errors.Is(err, model.ErrNotSignedUp):
		return &httpError{http.StatusNotFound, APIError{CodeNotSignedUp, "Not signed up for this session"}}
	case errors.Is(err, model.ErrScheduledInPast):
		return &httpError{http.StatusBadRequest, APIError{CodeScheduledInPast, "Date must be in the future"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "You do not have permission to do this"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
