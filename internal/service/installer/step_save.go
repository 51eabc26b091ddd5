package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SaveEnvStep shows the resulting .env and writes it on confirmation.
type SaveEnvStep struct {
	path string
	err  error
}

func NewSaveEnvStep(path string) Step {
	return &SaveEnvStep{path: path}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return nil
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if err := s.save(state); err != nil {
			s.err = err
			return s, nil
		}
		return nil, nil
	}
	return s, nil
}

func (s *SaveEnvStep) save(state *InstallState) error {
	content, err := state.Env()
	if err != nil {
		return err
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%s already exists, remove it to run setup again", s.path)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create runtime dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	return nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	content, err := state.Env()
	if err != nil {
		return errorStyle.Render(err.Error()) + "\n"
	}
	view := fmt.Sprintf("Configuration to write to %s:\n\n%s\n", s.path, masked(state, content))
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + hintStyle.Render("(press enter to save, ctrl+c to cancel)") + "\n"
}

// masked hides secrets in the preview.
func masked(state *InstallState, content string) string {
	for _, secret := range []string{state.Provider.APIKey, state.Telegram.Token} {
		if secret != "" {
			content = strings.ReplaceAll(content, secret, "********")
		}
	}
	return content
}
