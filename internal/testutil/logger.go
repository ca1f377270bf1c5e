// Package testutil holds small helpers shared by tests.
package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output, keeping test
// output free of log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
