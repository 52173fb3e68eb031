package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/mercadotech/mercado-api/pkg/logger"
)

// Job es una tarea periódica. Devuelve cuántos ítems procesó.
type Job func(ctx context.Context) (int, error)

type trigger struct {
	name     string
	interval time.Duration
	job      Job
}

// Scheduler dispara jobs en intervalos fijos. Cada trigger corre en su
// propia goroutine; un job lento no atrasa a los demás.
type Scheduler struct {
	triggers []trigger
	log      *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New construye un scheduler vacío.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// Register agrega un trigger con nombre. Debe llamarse antes de Start.
func (s *Scheduler) Register(name string, interval time.Duration, job Job) {
	s.triggers = append(s.triggers, trigger{name: name, interval: interval, job: job})
}

// Start lanza las goroutines de los triggers. Cada job corre una vez al
// arrancar y después en cada tick.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	for _, t := range s.triggers {
		s.wg.Add(1)
		go s.run(ctx, t)
	}
	s.log.Info().Int("triggers", len(s.triggers)).Msg("scheduler iniciado")
}

// Stop cancela los triggers y espera a que los jobs en curso terminen.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) run(ctx context.Context, t trigger) {
	defer s.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	s.fire(ctx, t)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx, t)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, t trigger) {
	start := time.Now()
	count, err := t.job(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("trigger", t.name).Msg("trigger falló")
		return
	}
	s.log.Info().
		Str("trigger", t.name).
		Int("procesados", count).
		Dur("duracion", time.Since(start)).
		Msg("trigger ejecutado")
}
