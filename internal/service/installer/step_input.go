package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputStep asks for one line of text. An empty answer takes the
// placeholder when fallback is set.
type inputStep struct {
	input    textinput.Model
	prompt   func(state *InstallState) string
	prepare  func(state *InstallState, input *textinput.Model)
	validate func(value string) error
	apply    func(state *InstallState, value string)
	skip     func(state *InstallState) bool
	fallback bool
	prepared bool
	err      error
}

func newInputStep(placeholder string, secret bool) *inputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return &inputStep{input: ti}
}

func (s *inputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *inputStep) Skip(state *InstallState) bool {
	return s.skip != nil && s.skip(state)
}

func (s *inputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	s.ensurePrepared(state)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := s.input.Value()
		if val == "" && s.fallback {
			val = s.input.Placeholder
		}
		if s.validate != nil {
			if err := s.validate(val); err != nil {
				s.err = err
				return s, nil
			}
		}
		s.apply(state, val)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *inputStep) View(state *InstallState) string {
	s.ensurePrepared(state)

	view := s.prompt(state) + "\n\n" + s.input.View() + "\n\n"
	if s.err != nil {
		view += errorStyle.Render(fmt.Sprintf("%v", s.err)) + "\n\n"
	}
	return view + hintStyle.Render("(press enter to confirm)") + "\n"
}

func (s *inputStep) ensurePrepared(state *InstallState) {
	if s.prepared {
		return
	}
	s.prepared = true
	if s.prepare != nil {
		s.prepare(state, &s.input)
	}
}
