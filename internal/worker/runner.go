package worker

import (
	"context"
	"sync"
	"time"
)

// Metrics учет запусков фоновых задач (*metrics.Metrics)
type Metrics interface {
	ObserveJob(job string, items int, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job периодическая задача; Run возвращает число обработанных записей
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) (int, error)
}

// Runner запускает задачи по таймеру, каждую в своей горутине.
// Запуски одной задачи не пересекаются.
type Runner struct {
	jobs    []Job
	metrics Metrics
	logger  Logger
	wg      sync.WaitGroup
}

// NewRunner создает планировщик; metrics может быть nil
func NewRunner(metrics Metrics, logger Logger, jobs ...Job) *Runner {
	return &Runner{jobs: jobs, metrics: metrics, logger: logger}
}

// Start запускает задачи и сразу возвращает управление; остановка по отмене ctx
func (r *Runner) Start(ctx context.Context) {
	for _, job := range r.jobs {
		if job.Interval <= 0 || job.Run == nil {
			r.logger.Warn("Worker: job %s disabled", job.Name)
			continue
		}

		r.wg.Add(1)
		go func(job Job) {
			defer r.wg.Done()
			r.loop(ctx, job)
		}(job)
	}
}

// Wait ждет завершения всех задач после отмены контекста
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, job Job) {
	r.logger.Info("Worker: job %s started, interval=%s", job.Name, job.Interval)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	r.runOnce(ctx, job)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Worker: job %s stopped", job.Name)
			return
		case <-ticker.C:
			r.runOnce(ctx, job)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, job Job) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Worker: job %s panicked: %v", job.Name, p)
		}
	}()

	items, err := job.Run(ctx)
	if r.metrics != nil {
		r.metrics.ObserveJob(job.Name, items, err)
	}
	if err != nil && ctx.Err() == nil {
		r.logger.Error("Worker: job %s failed: %v", job.Name, err)
	}
}
