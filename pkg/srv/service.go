package srv

import (
	"context"
	"time"

	"github.com/sandevgo/raider/pkg/log"
	"github.com/sourcegraph/conc"
)

const defaultShutdownTimeout = 15 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Group runs a set of services and tears them down in reverse order.
type Group struct {
	services []Service
	wg       conc.WaitGroup
	timeout  time.Duration
}

func NewGroup(services ...Service) *Group {
	return &Group{services: services, timeout: defaultShutdownTimeout}
}

func (g *Group) Add(s ...Service) {
	g.services = append(g.services, s...)
}

// Start launches every service in its own goroutine. A service whose Start
// returns an error cancels the whole group through cancel.
func (g *Group) Start(ctx context.Context, cancel context.CancelFunc) {
	logger := log.FromCtx(ctx)
	for _, service := range g.services {
		service := service
		g.wg.Go(func() {
			if err := service.Start(ctx); err != nil {
				logger.Error().Err(err).Msgf("%T failed", service)
				cancel()
			}
		})
	}
}

// Wait blocks until ctx is done, then shuts services down last-to-first and
// waits for their Start goroutines to return.
func (g *Group) Wait(ctx context.Context) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
	defer cancel()

	for i := len(g.services) - 1; i >= 0; i-- {
		service := g.services[i]
		if err := service.Shutdown(shutdownCtx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", service)
		}
	}

	if r := g.wg.WaitAndRecover(); r != nil {
		log.FromCtx(ctx).Error().Str("panic", r.String()).Msg("service panicked")
	}
}
