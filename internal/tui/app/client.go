package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/cristianoliveira/pokeview/internal/logging"
	"github.com/cristianoliveira/pokeview/internal/tui/state"
)

// Model defines the narrow TUI model surface used by command wiring.
type Model interface {
	tea.Model
	Close()
}

// Client defines dependencies needed by the tui command.
type Client interface {
	CreateModel() (Model, error)
	RunProgram(model Model) error
}

// DefaultClient builds the pokeview model from injected options.
type DefaultClient struct {
	options       state.Options
	programRunner ProgramRunner
}

// NewDefaultClient creates a default TUI client adapter.
// If programRunner is nil, a DefaultProgramRunner will be used.
func NewDefaultClient(options state.Options, programRunner ProgramRunner) *DefaultClient {
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	return &DefaultClient{
		options:       options,
		programRunner: programRunner,
	}
}

// CreateModel builds a TUI model implementation.
func (d *DefaultClient) CreateModel() (Model, error) {
	return state.NewModel(d.options)
}

// RunProgram runs the program and releases the model afterwards.
func (d *DefaultClient) RunProgram(model Model) error {
	defer model.Close()
	logging.Info("tui starting")
	err := d.programRunner.Run(model)
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	logging.Info("tui stopped")
	return nil
}
