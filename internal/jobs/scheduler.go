// Package jobs corre tareas periódicas con robfig/cron: reconciliación de
// usuarios duplicados y el chequeo de stock bajo.
package jobs

import (
	"context"
	"fmt"
	"time"

	"equine-clinic/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// jobTimeout acota cada corrida.
const jobTimeout = 2 * time.Minute

type Scheduler struct {
	c   *cron.Cron
	log logger.Logger
}

func NewScheduler(log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	cl := cronLogger{log: log}
	return &Scheduler{
		c:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		log: log,
	}
}

// Add registra fn con una expresión de 5 campos. spec vacío no registra nada.
func (s *Scheduler) Add(spec, name string, fn func(ctx context.Context) error) error {
	if spec == "" {
		return nil
	}
	_, err := s.c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			s.log.Error("job failed", map[string]any{"job": name, "error": err.Error()})
			return
		}
		s.log.Info("job done", map[string]any{"job": name, "duration_ms": time.Since(start).Milliseconds()})
	})
	if err != nil {
		return fmt.Errorf("job %s: bad schedule %q: %w", name, spec, err)
	}
	return nil
}

func (s *Scheduler) Start() { s.c.Start() }

// Stop deja de programar y espera las corridas en curso o hasta que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, kv ...any) {
	l.log.Debug("cron: "+msg, pairs(kv))
}

func (l cronLogger) Error(err error, msg string, kv ...any) {
	fields := pairs(kv)
	fields["error"] = err.Error()
	l.log.Error("cron: "+msg, fields)
}

func pairs(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}
