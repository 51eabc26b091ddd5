package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/raider/pkg/log"
)

type HTTPConfig struct {
	BindAddr         string        `env:"HTTP_BIND_ADDR" envDefault:"127.0.0.1:8001"`
	MetricsNamespace string        `env:"METRICS_NAMESPACE" envDefault:"raider"`
	ReadTimeout      time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	// WriteTimeout must exceed the inference timeout.
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"150s"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}

func (c HTTPConfig) GetBindAddr() string {
	return c.BindAddr
}

func (c HTTPConfig) GetReadTimeout() time.Duration {
	return c.ReadTimeout
}

func (c HTTPConfig) GetWriteTimeout() time.Duration {
	return c.WriteTimeout
}

func (c HTTPConfig) GetMetricsNamespace() string {
	return c.MetricsNamespace
}
