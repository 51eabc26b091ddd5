package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/internal/providers/llm"
	"github.com/sandevgo/raider/internal/service/ui"
)

var (
	titleStyle = ui.TitleStyle
	itemStyle  = ui.ItemStyle
	selStyle   = ui.SelectedStyle
	hintStyle  = ui.DescStyle
	errorStyle = ui.ErrorStyle
)

// Step represents a single step in the installation wizard
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// skipper is implemented by steps that only apply to some answers.
type skipper interface {
	Skip(state *InstallState) bool
}

// ModelFetcher lists the models of the chosen backend.
type ModelFetcher func(ctx context.Context, cfg core.ProviderConfig) ([]core.Model, error)

func fetchModels(ctx context.Context, cfg core.ProviderConfig) ([]core.Model, error) {
	p, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return p.Models(ctx)
}

func getSteps(fetch ModelFetcher, envPath string) []Step {
	return []Step{
		NewProviderStep(),
		NewBaseURLStep(),
		NewAPIKeyStep(),
		NewModelStep(fetch),
		NewStoreStep(),
		NewDatabaseURLStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramOwnerStep(),
		NewSaveEnvStep(envPath),
	}
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type modelsMsg []list.Item
type errMsg struct{ err error }

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	err         error
	width       int
	height      int
}

func newModel(steps []Step) model {
	m := model{
		steps: steps,
		state: NewInstallState(),
	}
	m.skip()
	return m
}

func (m model) Init() tea.Cmd {
	if m.currentStep < len(m.steps) {
		return m.steps[m.currentStep].Init()
	}
	return tea.Quit
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	nextStep, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)

	if nextStep == nil {
		// Step indicated completion, move to next
		m.currentStep++
		m.skip()
		if m.currentStep >= len(m.steps) {
			// All steps completed
			return m, tea.Quit
		}
		// Initialize the next step
		return m, m.steps[m.currentStep].Init()
	}

	// If the step returned a different step (e.g., for branching), update current
	if nextStep != m.steps[m.currentStep] {
		m.steps[m.currentStep] = nextStep
	}

	return m, cmd
}

// skip advances past steps that do not apply to the answers so far.
func (m *model) skip() {
	for m.currentStep < len(m.steps) {
		s, ok := m.steps[m.currentStep].(skipper)
		if !ok || !s.Skip(m.state) {
			return
		}
		m.currentStep++
	}
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(press ctrl+c to quit)\n"
	}

	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}

	return titleStyle.Render("Raider setup") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI and writes the answers to envPath.
func RunWizard(envPath string) (*InstallState, error) {
	p := tea.NewProgram(newModel(getSteps(fetchModels, envPath)), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if finalModel.quitting {
		return nil, fmt.Errorf("raider setup interrupted")
	}
	if finalModel.currentStep < len(finalModel.steps) {
		return nil, fmt.Errorf("raider setup did not finish")
	}

	return finalModel.state, nil
}

// fetchTimeout bounds the model list request of the model step.
const fetchTimeout = 30 * time.Second
