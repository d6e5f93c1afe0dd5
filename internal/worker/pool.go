package worker

import (
	"context"
	"sync"

	"study-tracker/internal/logger"

	"github.com/rs/zerolog"
)

type Job func(context.Context) error

type WorkerPool struct {
	workerCount int
	jobChan     chan Job
	wg          sync.WaitGroup
	mu          sync.RWMutex
	stopped     bool
	log         zerolog.Logger
}

func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &WorkerPool{
		workerCount: workerCount,
		jobChan:     make(chan Job, workerCount*2),
		log:         logger.For("worker_pool"),
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	wp.log.Info().Int("worker_count", wp.workerCount).Msg("Starting worker pool")

	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Stop closes the queue and waits for in-flight jobs. Later submissions
// are rejected.
func (wp *WorkerPool) Stop() {
	wp.log.Info().Msg("Stopping worker pool")
	wp.mu.Lock()
	if wp.stopped {
		wp.mu.Unlock()
		return
	}
	wp.stopped = true
	close(wp.jobChan)
	wp.mu.Unlock()

	wp.wg.Wait()
	wp.log.Info().Msg("Worker pool stopped")
}

// Submit queues a job without blocking; it reports false when the job was
// dropped because the queue is full or the pool is stopped.
func (wp *WorkerPool) Submit(job Job) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.stopped {
		return false
	}

	select {
	case wp.jobChan <- job:
		return true
	default:
		wp.log.Warn().Msg("Worker pool job queue full, job dropped")
		return false
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	log := wp.log.With().Int("worker_id", id).Logger()
	log.Debug().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Worker stopping due to context cancellation")
			return
		case job, ok := <-wp.jobChan:
			if !ok {
				log.Debug().Msg("Worker stopping due to closed job channel")
				return
			}

			if err := job(ctx); err != nil {
				log.Error().Err(err).Msg("Job execution failed")
			}
		}
	}
}
