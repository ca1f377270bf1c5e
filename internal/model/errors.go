package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrRoleNotFound   = errors.New("role not found")
	ErrNoSlotsLeft    = errors.New("no character slots remaining")

	// Character errors
	ErrCharacterNotFound    = errors.New("character not found")
	ErrNotCharacterOwner    = errors.New("character belongs to another player")
	ErrCharacterNotPending  = errors.New("character is not pending approval")
	ErrCharacterNotApproved = errors.New("character is not approved")
	ErrCharacterNotDead     = errors.New("character is not dead")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSessionDM    = errors.New("session belongs to another DM")
	ErrSessionNotOpen  = errors.New("session is not open for changes")
	ErrSessionFull     = errors.New("session roster is full")
	ErrAlreadySignedUp = errors.New("character is already signed up")
	ErrNotSignedUp     = errors.New("character is not signed up")
	ErrScheduledInPast = errors.New("session must be scheduled in the future")
)
