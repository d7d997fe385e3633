// Package jobs runs background work on a single worker fed by a bounded queue.
package jobs

import (
	"context"
	"log/slog"
	"time"
)

const JobDeviceSync = "device_sync"

type Service struct {
	Runner   func(context.Context) (any, error)
	Interval time.Duration
	queue    chan job
}

type job struct {
	Type string
	Key  string
	Run  func(context.Context) (any, error)
}

// New returns a service that schedules syncAll every interval. A zero interval disables the
// schedule; manual enqueues still run.
func New(syncAll func(context.Context) (any, error), interval time.Duration) *Service {
	return &Service{
		Runner:   syncAll,
		Interval: interval,
		queue:    make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Interval > 0 && s.Runner != nil {
		go s.scheduleDeviceSync(ctx, s.Interval)
	}
}

// Enqueue hands a job to the worker. It reports false when the queue is full.
func (s *Service) Enqueue(jobType, key string, run func(context.Context) (any, error)) bool {
	select {
	case s.queue <- job{Type: jobType, Key: key, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType, "key", key)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType, key string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Key: key, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "key", j.Key, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	started := time.Now()
	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	slog.Info("job run", "jobType", j.Type, "key", j.Key, "status", status, "duration", time.Since(started))
	return details, err
}

func (s *Service) scheduleDeviceSync(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobDeviceSync, "all", s.Runner)
		}
	}
}
