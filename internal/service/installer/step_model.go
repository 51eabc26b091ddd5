package installer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/raider/internal/config"
)

const defaultModel = "AiRaider:latest"

// ModelStep offers the models the backend reports and falls back to manual
// entry when the list cannot be fetched.
type ModelStep struct {
	fetch  ModelFetcher
	list   list.Model
	manual *inputStep
	err    error
}

type loadModelsMsg struct{}

func NewModelStep(fetch ModelFetcher) Step {
	manual := newInputStep(defaultModel, false)
	manual.prompt = func(*InstallState) string {
		return "Model name:"
	}
	manual.fallback = true
	manual.apply = func(state *InstallState, value string) {
		state.Provider.Model = strings.TrimSpace(value)
	}
	return &ModelStep{fetch: fetch, manual: manual}
}

func (s *ModelStep) Init() tea.Cmd {
	return func() tea.Msg { return loadModelsMsg{} }
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case loadModelsMsg:
		return s, s.load(state)
	case modelsMsg:
		if len(msg) == 0 {
			s.err = fmt.Errorf("no models reported")
			return s, nil
		}
		l := list.New(msg, list.NewDefaultDelegate(), max(width, 40), max(height-6, 10))
		l.Title = "Select a model"
		s.list = l
		return s, nil
	case errMsg:
		s.err = msg.err
		return s, nil
	}

	if s.list.Items() == nil {
		next, cmd := s.manual.Update(msg, state, width, height)
		if next == nil {
			return nil, nil
		}
		return s, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && s.list.FilterState() != list.Filtering {
		if it, ok := s.list.SelectedItem().(item); ok {
			state.Provider.Model = it.id
			return nil, nil
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) load(state *InstallState) tea.Cmd {
	cfg := state.Provider
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultBaseURL(cfg.Provider)
	}
	cfg.Timeout = fetchTimeout
	fetch := s.fetch

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		models, err := fetch(ctx, cfg)
		if err != nil {
			return errMsg{err}
		}
		items := make([]list.Item, 0, len(models))
		for _, m := range models {
			desc := m.Name
			if m.ContextLength > 0 {
				desc = fmt.Sprintf("%s (%d tokens)", desc, m.ContextLength)
			}
			items = append(items, item{id: m.ID, title: m.ID, desc: desc})
		}
		return modelsMsg(items)
	}
}

func (s *ModelStep) View(state *InstallState) string {
	if s.list.Items() != nil {
		return s.list.View()
	}
	view := ""
	if s.err != nil {
		view = errorStyle.Render(fmt.Sprintf("Could not list models: %v", s.err)) + "\n\n"
	}
	return view + s.manual.View(state)
}
