package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"study-tracker/internal/config"
	"study-tracker/internal/logger"
	"study-tracker/internal/model"
	"study-tracker/internal/queue"
	"study-tracker/internal/summary"

	"github.com/rs/zerolog"
)

// SummaryWorker builds daily summaries once a day at the configured time and
// whenever a job arrives on the summary queue.
type SummaryWorker struct {
	cfg        *config.Config
	service    *summary.Service
	consumer   *queue.Consumer
	workerPool *WorkerPool
	timer      *time.Timer
	now        func() time.Time
	log        zerolog.Logger
}

// NewSummaryWorker accepts a nil consumer, in which case only the daily
// schedule runs.
func NewSummaryWorker(cfg *config.Config, service *summary.Service, consumer *queue.Consumer) *SummaryWorker {
	return &SummaryWorker{
		cfg:        cfg,
		service:    service,
		consumer:   consumer,
		workerPool: NewWorkerPool(cfg.Workers.Summary.Count),
		now:        time.Now,
		log:        logger.For("summary_worker"),
	}
}

func (w *SummaryWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting summary worker")

	nextRun, err := nextRunTime(w.service.Today(w.now()), w.cfg.Workers.Summary.RunAt)
	if err != nil {
		return err
	}

	w.workerPool.Start(ctx)

	if w.cfg.Workers.Summary.RunOnStart {
		w.log.Info().Msg("Running initial summary on startup")
		w.submit(w.service.Today(w.now()))
	}

	if w.consumer != nil {
		go func() {
			if err := w.consumer.ConsumeSummaryQueue(ctx, w.handleMessage); err != nil && err != context.Canceled {
				w.log.Error().Err(err).Msg("Summary queue consumer stopped")
			}
		}()
	}

	w.log.Info().Time("next_run", nextRun).Msg("Scheduled next summary")
	w.timer = time.NewTimer(time.Until(nextRun))

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Summary worker context cancelled")
			return ctx.Err()
		case <-w.timer.C:
			w.log.Info().Msg("Starting scheduled summary")
			today := w.service.Today(w.now())
			w.submit(today)

			// past RunAt now, so this lands on tomorrow
			nextRun, _ = nextRunTime(today.Add(time.Second), w.cfg.Workers.Summary.RunAt)
			w.log.Info().Time("next_run", nextRun).Msg("Scheduled next summary")
			w.timer.Reset(time.Until(nextRun))
		}
	}
}

func (w *SummaryWorker) Stop() {
	w.log.Info().Msg("Stopping summary worker")
	if w.timer != nil {
		w.timer.Stop()
	}
	w.workerPool.Stop()
}

func (w *SummaryWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.SummaryJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal summary job")
		return err
	}

	day, err := w.service.ParseJobDate(job, w.now())
	if err != nil {
		return err
	}

	w.log.Info().Str("date", day.Format(model.DateLayout)).Msg("Processing summary job")
	if !w.submit(day) {
		return fmt.Errorf("summary job for %s dropped", day.Format(model.DateLayout))
	}
	return nil
}

func (w *SummaryWorker) submit(day time.Time) bool {
	return w.workerPool.Submit(func(ctx context.Context) error {
		_, err := w.service.BuildDaily(ctx, day)
		return err
	})
}

// nextRunTime returns the next occurrence of runAt ("15:04") after now.
func nextRunTime(now time.Time, runAt string) (time.Time, error) {
	at, err := time.Parse("15:04", runAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid run_at %q: %w", runAt, err)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}
