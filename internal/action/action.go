// Package action implements the lifecycle shared by every user-triggered
// operation: validate locally, run the request, land in success or
// failure with a user-facing message. One Action guards one UI
// affordance, so a second trigger while a request is in flight is
// rejected instead of duplicated.
package action

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/client"
)

// State is the lifecycle position of an action
type State int

const (
	// Idle means the action has not run, or was reset
	Idle State = iota
	// Pending means a request is in flight
	Pending
	// Succeeded means the last run completed
	Succeeded
	// Failed means the last run failed; Message holds the reason
	Failed
)

// ErrInFlight is returned when Run is called while already Pending
var ErrInFlight = errors.New("action already in flight")

// Fields maps field names to validation messages
type Fields map[string]string

// ValidationError reports local validation failures. No request is
// issued when validation fails.
type ValidationError struct {
	Fields Fields
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	for _, msg := range e.Fields {
		return msg
	}
	return "validation failed"
}

// Action runs one logical operation at a time and tracks its outcome
type Action[T any] struct {
	mu         sync.Mutex
	state      State
	message    string
	result     T
	validate   func() Fields
	onSuccess  func(T)
	fallback   string
	clearAfter time.Duration
	clearTimer *time.Timer
}

// Option configures an Action
type Option[T any] func(*Action[T])

// WithValidate sets the pre-flight validator. When it returns any field
// messages, Run fails locally without touching the network.
func WithValidate[T any](fn func() Fields) Option[T] {
	return func(a *Action[T]) {
		a.validate = fn
	}
}

// WithOnSuccess sets a callback invoked after a successful run, outside
// the action's lock. Typical uses: close a modal, refresh a list.
func WithOnSuccess[T any](fn func(T)) Option[T] {
	return func(a *Action[T]) {
		a.onSuccess = fn
	}
}

// WithFallback sets the generic failure message used when the backend
// supplies neither a message nor a title.
func WithFallback[T any](msg string) Option[T] {
	return func(a *Action[T]) {
		a.fallback = msg
	}
}

// WithClearAfter schedules an automatic reset to Idle after a successful
// run, mirroring a transient confirmation that clears itself.
func WithClearAfter[T any](d time.Duration) Option[T] {
	return func(a *Action[T]) {
		a.clearAfter = d
	}
}

// New creates an action in the Idle state
func New[T any](opts ...Option[T]) *Action[T] {
	a := &Action[T]{
		fallback: "Something went wrong. Please try again.",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the current lifecycle state
func (a *Action[T]) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Message returns the last failure message, or empty
func (a *Action[T]) Message() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.message
}

// Result returns the payload of the last successful run
func (a *Action[T]) Result() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

// Reset returns the action to Idle and clears the failure message.
// Called when the user edits an input after a failed attempt.
func (a *Action[T]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = Idle
	a.message = ""
	if a.clearTimer != nil {
		a.clearTimer.Stop()
		a.clearTimer = nil
	}
}

// Run executes the operation through the full lifecycle. While a run is
// Pending, further calls return ErrInFlight and issue nothing. A
// validation failure keeps the previous state and issues nothing. The
// operation's error is returned as-is; Message holds its normalized,
// user-facing form.
func (a *Action[T]) Run(ctx context.Context, op func(context.Context) (T, error)) (T, error) {
	var zero T

	a.mu.Lock()
	if a.state == Pending {
		a.mu.Unlock()
		return zero, ErrInFlight
	}
	if a.clearTimer != nil {
		a.clearTimer.Stop()
		a.clearTimer = nil
	}
	// A new attempt always starts with the previous error cleared.
	a.message = ""

	if a.validate != nil {
		if fields := a.validate(); len(fields) > 0 {
			a.mu.Unlock()
			return zero, &ValidationError{Fields: fields}
		}
	}

	a.state = Pending
	a.mu.Unlock()

	result, err := op(ctx)

	a.mu.Lock()
	if err != nil {
		a.state = Failed
		a.message = client.ErrorMessage(err, a.fallback)
		a.mu.Unlock()
		return zero, err
	}

	a.state = Succeeded
	a.result = result
	onSuccess := a.onSuccess
	if a.clearAfter > 0 {
		a.clearTimer = time.AfterFunc(a.clearAfter, a.Reset)
	}
	a.mu.Unlock()

	if onSuccess != nil {
		onSuccess(result)
	}
	return result, nil
}
