package action

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

// Field-level validation rules shared by the forms. Each returns a
// user-facing message, or empty when the value passes. Parsing helpers
// also return the parsed value so callers validate and convert in one
// step.

var nameRe = regexp.MustCompile(`^[\p{L}\s\-']+$`)

// Character name bounds
const (
	MinNameLength = 2
	MaxNameLength = 50
)

// Session title bounds
const (
	MinTitleLength = 3
	MaxTitleLength = 100
)

// CharacterName validates a character name: trimmed length within
// bounds, charset restricted to letters, spaces, hyphens, apostrophes.
func CharacterName(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "Character name is required"
	}
	if n := utf8.RuneCountInString(v); n < MinNameLength {
		return fmt.Sprintf("Name must be at least %d characters", MinNameLength)
	} else if n > MaxNameLength {
		return fmt.Sprintf("Name must be no more than %d characters", MaxNameLength)
	}
	if !nameRe.MatchString(v) {
		return "Name can only contain letters, spaces, hyphens, and apostrophes"
	}
	return ""
}

// SessionTitle validates a session title's trimmed length
func SessionTitle(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "Title is required"
	}
	if n := utf8.RuneCountInString(v); n < MinTitleLength {
		return fmt.Sprintf("Title must be at least %d characters", MinTitleLength)
	} else if n > MaxTitleLength {
		return fmt.Sprintf("Title must be no more than %d characters", MaxTitleLength)
	}
	return ""
}

// ScheduledDate validates a session's scheduled time. The time is
// required; on creation (not edit) it must be strictly in the future.
func ScheduledDate(value time.Time, now time.Time, editing bool) string {
	if value.IsZero() {
		return "Date and time is required"
	}
	if !editing && !value.After(now) {
		return "Date must be in the future"
	}
	return ""
}

// Reward parses an optional non-negative integer. Blank means zero.
func Reward(value string) (int, string) {
	if strings.TrimSpace(value) == "" {
		return 0, ""
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, "Must be 0 or greater"
	}
	return n, ""
}

// PartySize parses an optional party size limit. Blank means no limit.
func PartySize(value string) (int, string) {
	if strings.TrimSpace(value) == "" {
		return 0, ""
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < model.MinPartySize {
		return 0, fmt.Sprintf("Must be at least %d", model.MinPartySize)
	}
	if n > model.MaxPartySize {
		return 0, fmt.Sprintf("Maximum %d players allowed", model.MaxPartySize)
	}
	return n, ""
}

// SlotCount parses a required character slot count within bounds
func SlotCount(value string) (int, string) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < model.MinPartySize || n > model.MaxPartySize {
		return 0, fmt.Sprintf("Please enter a number between %d and %d", model.MinPartySize, model.MaxPartySize)
	}
	return n, ""
}

// Required validates that a field has a non-blank value
func Required(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return label + " is required"
	}
	return ""
}

// PasswordConfirmation validates that the confirmation matches
func PasswordConfirmation(password, confirm string) string {
	if password != confirm {
		return "Passwords do not match"
	}
	return ""
}
