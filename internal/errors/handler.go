// Package errors routes user-facing messages to the CLI or the TUI.
package errors

import (
	stderrors "errors"

	"github.com/cristianoliveira/pokeview/internal/colors"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console surface used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler handles errors by printing to stdout/stderr.
type CLIHandler struct {
	colors ColorOutput
}

// NewCLIHandler creates a CLI handler writing to the given output.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{colors: out}
}

// NewDefaultCLIHandler creates a CLI handler using the colors package.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(colorsOutput{})
}

func (h *CLIHandler) Error(msg string)   { h.colors.Error(msg) }
func (h *CLIHandler) Warning(msg string) { h.colors.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.colors.Info(msg) }
func (h *CLIHandler) Success(msg string) { h.colors.Success(msg) }

type colorsOutput struct{}

func (colorsOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (colorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (colorsOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (colorsOutput) Success(msgs ...string) { colors.Success(msgs...) }

// UserError is implemented by errors whose message is meant to be shown to
// the user verbatim (validation failures).
type UserError interface {
	error
	UserMessage() string
}

// Report sends err to h. Errors carrying a user message are reported as
// warnings with that message; anything else is an error.
func Report(h ErrorHandler, err error) {
	if err == nil {
		return
	}
	var ue UserError
	if stderrors.As(err, &ue) {
		h.Warning(ue.UserMessage())
		return
	}
	h.Error(err.Error())
}
