package resumeinfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/talentrelay/recruitment/resume"
)

type parkedJob struct {
	job   resume.ProcessingJob
	dueAt time.Time
}

// MemoryParseQueue is an in-process ParseQueue used when redis is not configured.
// Jobs are stored by value so callers never share state with a queued job.
type MemoryParseQueue struct {
	mu     sync.Mutex
	ready  []resume.ProcessingJob
	parked []parkedJob
	wake   chan struct{}
	now    func() time.Time
}

func NewMemoryParseQueue() *MemoryParseQueue {
	return &MemoryParseQueue{
		wake: make(chan struct{}, 1),
		now:  time.Now,
	}
}

var _ resume.ParseQueue = (*MemoryParseQueue)(nil)

// appendReady must be called with mu held
func (q *MemoryParseQueue) appendReady(job resume.ProcessingJob) {
	q.ready = append(q.ready, job)
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *MemoryParseQueue) Push(_ context.Context, job *resume.ProcessingJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.appendReady(*job)
	return nil
}

func (q *MemoryParseQueue) take() *resume.ProcessingJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ready) == 0 {
		return nil
	}
	job := q.ready[0]
	q.ready = q.ready[1:]
	return &job
}

func (q *MemoryParseQueue) Pop(ctx context.Context, timeout time.Duration) (*resume.ProcessingJob, error) {
	if job := q.take(); job != nil {
		return job, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return q.take(), nil
		case <-q.wake:
			if job := q.take(); job != nil {
				return job, nil
			}
		}
	}
}

func (q *MemoryParseQueue) Defer(_ context.Context, job *resume.ProcessingJob, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.parked = append(q.parked, parkedJob{job: *job, dueAt: q.now().Add(delay)})
	return nil
}

func (q *MemoryParseQueue) PromoteDue(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	moved := 0
	waiting := q.parked[:0]
	for _, p := range q.parked {
		if p.dueAt.After(now) {
			waiting = append(waiting, p)
			continue
		}
		q.appendReady(p.job)
		moved++
	}
	q.parked = waiting
	return moved, nil
}

func (q *MemoryParseQueue) Stats(_ context.Context) (resume.QueueStats, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return resume.QueueStats{Ready: int64(len(q.ready)), Delayed: int64(len(q.parked))}, nil
}
