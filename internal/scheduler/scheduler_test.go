package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadotech/mercado-api/internal/scheduler"
	"github.com/mercadotech/mercado-api/pkg/logger"
)

func waitSignal(t *testing.T, ch <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal(msg)
	}
}

// O trigger dispara uma vez ao iniciar e de novo a cada tick.
func TestScheduler_DisparaNoInicioENosTicks(t *testing.T) {
	fired := make(chan struct{}, 16)
	sched := scheduler.New(logger.New(logger.Config{Level: "error"}))
	sched.Register("teste", 10*time.Millisecond, func(ctx context.Context) (int, error) {
		fired <- struct{}{}
		return 1, nil
	})

	sched.Start(context.Background())
	defer sched.Stop()

	waitSignal(t, fired, "o trigger deve disparar ao iniciar")
	waitSignal(t, fired, "o trigger deve disparar no tick seguinte")
}

// Um job que devolve erro não derruba o scheduler: o próximo tick dispara.
func TestScheduler_ErroNaoInterrompeProximosTicks(t *testing.T) {
	var runs atomic.Int32
	fired := make(chan struct{}, 16)
	sched := scheduler.New(logger.New(logger.Config{Level: "error"}))
	sched.Register("falha", 10*time.Millisecond, func(ctx context.Context) (int, error) {
		runs.Add(1)
		fired <- struct{}{}
		return 0, errors.New("barrido falhou")
	})

	sched.Start(context.Background())
	defer sched.Stop()

	waitSignal(t, fired, "primeira execução")
	waitSignal(t, fired, "segunda execução depois do erro")
	require.GreaterOrEqual(t, runs.Load(), int32(2))
}

// Stop espera os jobs em curso e nenhum trigger dispara depois.
func TestScheduler_StopInterrompeTriggers(t *testing.T) {
	var runs atomic.Int32
	sched := scheduler.New(logger.New(logger.Config{Level: "error"}))
	sched.Register("teste", 5*time.Millisecond, func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 0, nil
	})

	sched.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	sched.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "nenhuma execução depois de Stop")
	assert.GreaterOrEqual(t, after, int32(1))
}

// Triggers registrados correm de forma independente.
func TestScheduler_MultiplosTriggers(t *testing.T) {
	a := make(chan struct{}, 16)
	b := make(chan struct{}, 16)
	sched := scheduler.New(logger.New(logger.Config{Level: "error"}))
	sched.Register("a", 10*time.Millisecond, func(ctx context.Context) (int, error) {
		a <- struct{}{}
		return 0, nil
	})
	sched.Register("b", 10*time.Millisecond, func(ctx context.Context) (int, error) {
		b <- struct{}{}
		return 0, nil
	})

	sched.Start(context.Background())
	defer sched.Stop()

	waitSignal(t, a, "trigger a deve disparar")
	waitSignal(t, b, "trigger b deve disparar")
}
