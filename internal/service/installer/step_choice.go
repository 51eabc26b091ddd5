package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	label string
	value string
}

// choiceStep is a vertical menu; apply stores the picked value.
type choiceStep struct {
	prompt  string
	choices []choice
	cursor  int
	apply   func(state *InstallState, value string)
	skip    func(state *InstallState) bool
}

func (s *choiceStep) Init() tea.Cmd {
	return nil
}

func (s *choiceStep) Skip(state *InstallState) bool {
	return s.skip != nil && s.skip(state)
}

func (s *choiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			s.apply(state, s.choices[s.cursor].value)
			return nil, nil
		}
	}
	return s, nil
}

func (s *choiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", c.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", c.label)) + "\n")
		}
	}
	b.WriteString(hintStyle.Render("\n(press ctrl+c to quit)") + "\n")
	return b.String()
}
