package worker

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
)

// JobProcessor is the part of the resume service the pool drives
type JobProcessor interface {
	ProcessJob(ctx context.Context, job *resume.ProcessingJob) error
}

type Config struct {
	Workers        int
	DequeueTimeout time.Duration
	DelayedPoll    time.Duration
}

func DefaultConfig() Config {
	return Config{
		Workers:        2,
		DequeueTimeout: 5 * time.Second,
		DelayedPoll:    30 * time.Second,
	}
}

type ResumeWorker struct {
	processor JobProcessor
	queue     resume.ParseQueue
	cfg       Config
	wg        sync.WaitGroup
}

func NewResumeWorker(processor JobProcessor, queue resume.ParseQueue, cfg Config) *ResumeWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.DequeueTimeout <= 0 {
		cfg.DequeueTimeout = 5 * time.Second
	}
	if cfg.DelayedPoll <= 0 {
		cfg.DelayedPoll = 30 * time.Second
	}
	return &ResumeWorker{
		processor: processor,
		queue:     queue,
		cfg:       cfg,
	}
}

// Start launches the pool and the delayed job poller; they stop when ctx is done
func (w *ResumeWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d resume workers", w.cfg.Workers)

	w.wg.Add(1)
	go w.promoteDueJobs(ctx)

	for i := 0; i < w.cfg.Workers; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i)
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *ResumeWorker) Wait() {
	w.wg.Wait()
}

func (w *ResumeWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
		}

		job, err := w.queue.Pop(ctx, w.cfg.DequeueTimeout)
		if err != nil {
			if ctx.Err() == nil {
				logx.Errorf("Worker %d pop error: %v", workerID, err)
			}
			continue
		}
		if job == nil {
			continue
		}

		logx.Infof("Worker %d processing job: %s", workerID, job.ID)
		if err := w.processor.ProcessJob(ctx, job); err != nil {
			logx.Errorf("Worker %d job failed: %v", workerID, err)
		}
	}
}

func (w *ResumeWorker) promoteDueJobs(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.DelayedPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.PromoteDue(ctx)
			if err != nil {
				logx.Errorf("Failed to promote delayed jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Promoted %d delayed jobs to ready queue", count)
			}
		}
	}
}
