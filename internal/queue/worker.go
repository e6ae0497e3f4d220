package queue

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner executes one analysis run; satisfied by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, interviewID, videoPath string) error
}

// Worker drains the queue with a fixed number of goroutines. Each job is one
// independent pipeline run; distinct interviews may run concurrently since
// they share nothing but the store's single-document updates.
type Worker struct {
	queue  *Queue
	runner Runner
	log    *zap.Logger

	concurrency int
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

func NewWorker(q *Queue, runner Runner, concurrency int, logger *zap.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{queue: q, runner: runner, concurrency: concurrency, log: logger}
}

func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.loop(ctx)
	}
	w.log.Info("queue workers started", zap.Int("concurrency", w.concurrency))
}

// Stop cancels the workers and waits for in-flight runs to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context) {
	defer w.wg.Done()
	for {
		job, err := w.queue.Dequeue(ctx, 2*time.Second)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			w.log.Warn("queue dequeue failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		w.log.Info("processing interview",
			zap.String("interview_id", job.InterviewID),
			zap.String("video", job.VideoPath),
		)
		if err := w.runner.Run(ctx, job.InterviewID, job.VideoPath); err != nil {
			// the run has already persisted its error status
			w.log.Error("pipeline run failed",
				zap.String("interview_id", job.InterviewID),
				zap.Error(err),
			)
		}
	}
}
