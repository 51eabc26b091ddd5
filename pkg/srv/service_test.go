package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingService struct {
	name     string
	startErr error
	mu       *sync.Mutex
	order    *[]string
}

func (r *recordingService) Start(ctx context.Context) error {
	if r.startErr != nil {
		return r.startErr
	}
	<-ctx.Done()
	return nil
}

func (r *recordingService) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.order = append(*r.order, r.name)
	return nil
}

func TestGroup_ShutdownReverseOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string

	g := NewGroup(
		&recordingService{name: "store", mu: &mu, order: &order},
		&recordingService{name: "http", mu: &mu, order: &order},
	)

	ctx, cancel := context.WithCancel(context.Background())
	g.Start(ctx, cancel)
	cancel()
	g.Wait(ctx)

	assert.Equal(t, []string{"http", "store"}, order)
}

func TestGroup_StartFailureCancels(t *testing.T) {
	var mu sync.Mutex
	var order []string

	g := NewGroup(&recordingService{name: "broken", startErr: errors.New("bind failed"), mu: &mu, order: &order})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	g.Start(ctx, cancel)
	g.Wait(ctx)

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, []string{"broken"}, order)
}

func TestCleanup_RunsOnShutdown(t *testing.T) {
	called := false
	s := NewCleanup(func() error { called = true; return nil })

	assert.NoError(t, s.Start(context.Background()))
	assert.False(t, called)
	assert.NoError(t, s.Shutdown(context.Background()))
	assert.True(t, called)
}
