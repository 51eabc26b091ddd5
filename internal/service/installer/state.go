package installer

import (
	"github.com/sandevgo/raider/internal/config"
	"github.com/sandevgo/raider/pkg/env"
)

// InstallState collects the answers of the wizard. Only fields the user
// touched are non-zero, so the written .env leaves everything else on its
// defaults.
type InstallState struct {
	App      config.AppConfig
	Provider config.ProviderConfig
	Telegram config.TelegramConfig
}

func NewInstallState() *InstallState {
	return &InstallState{}
}

// Env renders the collected configuration as .env content.
func (s *InstallState) Env() (string, error) {
	return env.MarshalEnv(&s.App, &s.Provider, &s.Telegram)
}
