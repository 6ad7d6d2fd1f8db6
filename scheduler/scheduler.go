// Package scheduler runs the tasks configured under the batch properties.
// Jobs fire either on a fixed rate (steady interval) or a fixed delay
// (interval measured from the end of the previous run).
package scheduler

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	wireuperrors "github.com/drblury/wireup/internal/errors"
	"github.com/drblury/wireup/internal/ids"
	"github.com/drblury/wireup/internal/logging"
	"github.com/drblury/wireup/properties"
)

// Task is the unit of work a job executes on every firing.
type Task func(ctx context.Context) error

type job struct {
	spec properties.Job
	task Task
}

// Scheduler owns the configured job loops. Build it from validated batch
// properties and a task registry, then call Start.
type Scheduler struct {
	jobs   []job
	log    logging.WiringLogger
	tracer trace.Tracer

	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// New builds a scheduler from the batch properties. Every configured job
// must name a registered task; a missing task fails construction.
func New(props properties.Batch, tasks map[string]Task, log logging.WiringLogger) (*Scheduler, error) {
	if log == nil {
		return nil, wireuperrors.ErrLoggerRequired
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}

	s := &Scheduler{
		log:    log,
		tracer: otel.Tracer("wireup-scheduler"),
	}

	for _, spec := range props.Jobs {
		task, ok := tasks[spec.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", wireuperrors.ErrTaskMissing, spec.Name)
		}
		s.jobs = append(s.jobs, job{spec: spec, task: task})
	}

	return s, nil
}

// Jobs returns the number of configured jobs.
func (s *Scheduler) Jobs() int {
	return len(s.jobs)
}

// Start launches one goroutine per job. It is a no-op when called twice.
// Jobs stop when the context is cancelled or their max-runs cap is reached.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go func(j job) {
			defer s.wg.Done()
			s.runLoop(ctx, j)
		}(j)
	}
}

// Wait blocks until every job loop has exited.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, j job) {
	log := s.log.With(logging.LogFields{"job": j.spec.Name})

	if j.spec.InitialDelay > 0 {
		if !sleep(ctx, j.spec.InitialDelay) {
			return
		}
	}

	fixedRate := j.spec.FixedRate > 0
	interval := j.spec.Interval()

	var ticker *time.Ticker
	if fixedRate {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	runs := 0
	for {
		if j.spec.Jitter > 0 {
			if !sleep(ctx, time.Duration(rand.Int63n(int64(j.spec.Jitter)))) {
				return
			}
		}

		s.runOnce(ctx, j, log)
		runs++

		if j.spec.MaxRuns > 0 && runs >= j.spec.MaxRuns {
			log.Info("Job reached max runs", logging.LogFields{"runs": runs})
			return
		}

		if fixedRate {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		} else {
			if !sleep(ctx, interval) {
				return
			}
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, j job, log logging.WiringLogger) {
	runID := ids.CreateULID()

	runCtx, span := s.tracer.Start(ctx, "RunJob")
	defer span.End()
	span.SetAttributes(
		attribute.String("job.name", j.spec.Name),
		attribute.String("job.run_id", runID),
	)

	started := time.Now()
	err := j.task(runCtx)
	elapsed := time.Since(started)

	if err != nil {
		span.RecordError(err)
		log.Error("Job run failed", err, logging.LogFields{
			"run_id":  runID,
			"elapsed": elapsed.String(),
		})
		return
	}

	log.Debug("Job run finished", logging.LogFields{
		"run_id":  runID,
		"elapsed": elapsed.String(),
	})
}

// sleep waits for d unless the context is cancelled first. Returns false on
// cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
