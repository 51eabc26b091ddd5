package command

import (
	"context"

	"github.com/sandevgo/raider/internal/core"
)

type ModelCommand struct {
	cfg       core.ProviderConfig
	formatter *ResponseFormatter
}

func NewModelCommand(cfg core.ProviderConfig) *ModelCommand {
	return &ModelCommand{
		cfg:       cfg,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show the inference backend and model"
}

func (c *ModelCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Current Model"),
		c.formatter.Label("Provider", c.cfg.GetProvider()),
		c.formatter.Label("Model", c.cfg.GetModel()),
		c.formatter.Tip("change LLM_PROVIDER and LLM_MODEL with `raider init`"),
	), nil
}
