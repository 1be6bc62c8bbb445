// ABOUTME: Interactive TUI wizard for configuring the embedding backend and storage.
// ABOUTME: 3-step bubbletea model collecting backend URL, model name, and persist dir.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultModel is the embedding model suggested for HTTP backends.
const DefaultModel = "nomic-embed-text"

// DefaultPersistDir is the suggested vector store location.
const DefaultPersistDir = "./vector_db"

// Step represents the current wizard step.
type Step int

const (
	StepBackendURL Step = iota
	StepModel
	StepPersistDir
	StepValidating
	StepDone
	StepFailed
)

// validationResultMsg carries the result of an async validation attempt.
type validationResultMsg struct {
	err error
}

// ValidateFn is the function signature for embedding backend validation.
type ValidateFn func(ctx context.Context, url, model string) error

// cancelHolder shares a cancel function across bubbletea model copies.
// This MUST be stored as a pointer field on SetupModel so that value-receiver
// methods (required by tea.Model) can store the cancel func and have it
// visible to all copies of the model.
type cancelHolder struct {
	cancel context.CancelFunc
}

// SetupModel is the bubbletea model for the setup wizard. An empty backend
// URL selects the built-in local embedder and skips backend validation.
type SetupModel struct {
	step          Step
	inputs        [3]textinput.Model
	spinner       spinner.Model
	validateFn    ValidateFn
	cancelCtx     *cancelHolder
	validationErr error
	quitting      bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewSetupModel creates a new setup wizard model, pre-filling with existing config values.
func NewSetupModel(backendURL, model, persistDir string) SetupModel {
	urlInput := textinput.New()
	urlInput.Placeholder = "http://localhost:11434 (empty = local embedder)"
	urlInput.Focus()
	urlInput.Width = 50
	if backendURL != "" {
		urlInput.SetValue(backendURL)
	}

	modelInput := textinput.New()
	modelInput.Placeholder = DefaultModel
	modelInput.Width = 50
	if model != "" {
		modelInput.SetValue(model)
	}

	dirInput := textinput.New()
	dirInput.Placeholder = DefaultPersistDir
	dirInput.Width = 50
	if persistDir != "" {
		dirInput.SetValue(persistDir)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return SetupModel{
		step:       StepBackendURL,
		inputs:     [3]textinput.Model{urlInput, modelInput, dirInput},
		spinner:    s,
		validateFn: ValidateBackend,
		cancelCtx:  &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepBackendURL, StepModel, StepPersistDir:
			return m.updateInput(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case validationResultMsg:
		m.cancelCtx.cancel = nil
		if msg.err == nil {
			m.step = StepDone
			return m, tea.Quit
		}
		m.validationErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		// Normalize trailing slashes on the backend URL; empty keeps local.
		if m.step == StepBackendURL {
			m.inputs[0].SetValue(strings.TrimRight(m.inputs[0].Value(), "/"))
		}
		if m.step == StepModel && m.inputs[1].Value() == "" && m.inputs[0].Value() != "" {
			m.inputs[1].SetValue(DefaultModel)
		}
		if m.step == StepPersistDir && m.inputs[2].Value() == "" {
			m.inputs[2].SetValue(DefaultPersistDir)
		}

		idx := int(m.step)
		m.inputs[idx].Blur()

		switch m.step {
		case StepBackendURL:
			m.step = StepModel
			m.inputs[1].Focus()
			return m, textinput.Blink
		case StepModel:
			m.step = StepPersistDir
			m.inputs[2].Focus()
			return m, textinput.Blink
		case StepPersistDir:
			if m.inputs[0].Value() == "" {
				// Local embedder needs no backend round-trip.
				m.step = StepDone
				return m, tea.Quit
			}
			m.step = StepValidating
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		}
	}

	// Forward to the active input
	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepValidating
			m.validationErr = nil
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		case 's':
			m.step = StepDone
			return m, tea.Quit
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SetupModel) startValidation() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	url := m.inputs[0].Value()
	model := m.inputs[1].Value()
	fn := m.validateFn
	return func() tea.Msg {
		return validationResultMsg{err: fn(ctx, url, model)}
	}
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   NEWSKITTEN"))
	b.WriteString(titleStyle.Render(" - Setup"))
	b.WriteString("\n\n")
	b.WriteString("Configure the embedding backend and vector store.\n\n")

	switch m.step {
	case StepBackendURL:
		b.WriteString(stepStyle.Render("Step 1 of 3: Embedding backend URL"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for the built-in local embedder)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepModel:
		b.WriteString(fmt.Sprintf("  Backend: %s\n\n", backendLabel(m.inputs[0].Value())))
		b.WriteString(stepStyle.Render("Step 2 of 3: Embedding model"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for default)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepPersistDir:
		b.WriteString(fmt.Sprintf("  Backend: %s\n", backendLabel(m.inputs[0].Value())))
		b.WriteString(fmt.Sprintf("  Model:   %s\n\n", m.inputs[1].Value()))
		b.WriteString(stepStyle.Render("Step 3 of 3: Vector store directory"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for default)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[2].View())
		b.WriteString("\n")

	case StepValidating:
		b.WriteString(fmt.Sprintf("  Backend: %s\n", backendLabel(m.inputs[0].Value())))
		b.WriteString(fmt.Sprintf("  Model:   %s\n\n", m.inputs[1].Value()))
		b.WriteString(m.spinner.View())
		b.WriteString(" Validating embedding backend...")
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("✓ Configured!"))
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.validationErr != nil {
			errMsg = m.validationErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Validation failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [s]ave anyway  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

// backendLabel renders the configured backend for display.
func backendLabel(url string) string {
	if url == "" {
		return "local (built-in)"
	}
	return url
}

// Result returns the entered values. An empty backendURL means the local embedder.
func (m SetupModel) Result() (backendURL, model, persistDir string) {
	return m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value()
}

// ShouldSave returns true if the wizard completed (via validation success or
// "save anyway") and the user did not cancel with Ctrl+C, Escape, or 'q'.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
