package resumeinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/pkg/logx"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/go-redis/redis/v8"
)

// jobKV is the load/save pair the key-value job stores are built on
type jobKV interface {
	load(ctx context.Context, id kernel.ProcessingJobID) (*resume.ProcessingJob, error)
	save(ctx context.Context, job *resume.ProcessingJob) error
}

// kvJobRepository implements the status transitions on top of a jobKV
type kvJobRepository struct {
	kv  jobKV
	now func() time.Time
}

func (r *kvJobRepository) Create(ctx context.Context, job *resume.ProcessingJob) error {
	if err := r.kv.save(ctx, job); err != nil {
		return err
	}
	logx.Infof("Created job: %s", job.ID)
	return nil
}

func (r *kvJobRepository) Update(ctx context.Context, job *resume.ProcessingJob) error {
	if _, err := r.kv.load(ctx, job.ID); err != nil {
		return err
	}
	return r.kv.save(ctx, job)
}

func (r *kvJobRepository) GetByID(ctx context.Context, jobID kernel.ProcessingJobID) (*resume.ProcessingJob, error) {
	return r.kv.load(ctx, jobID)
}

func (r *kvJobRepository) mutate(ctx context.Context, jobID kernel.ProcessingJobID, fn func(*resume.ProcessingJob) error) error {
	job, err := r.kv.load(ctx, jobID)
	if err != nil {
		return err
	}
	if err := fn(job); err != nil {
		return err
	}
	return r.kv.save(ctx, job)
}

func (r *kvJobRepository) MarkAsProcessing(ctx context.Context, jobID kernel.ProcessingJobID) error {
	return r.mutate(ctx, jobID, func(job *resume.ProcessingJob) error {
		return job.Start(r.now())
	})
}

func (r *kvJobRepository) MarkAsCompleted(ctx context.Context, jobID kernel.ProcessingJobID, resumeID kernel.ResumeID) error {
	return r.mutate(ctx, jobID, func(job *resume.ProcessingJob) error {
		job.Complete(resumeID, r.now())
		return nil
	})
}

func (r *kvJobRepository) MarkAsFailed(ctx context.Context, jobID kernel.ProcessingJobID, errorMsg string, errorDetails map[string]any) error {
	return r.mutate(ctx, jobID, func(job *resume.ProcessingJob) error {
		job.Fail(errorMsg, errorDetails, r.now())
		return nil
	})
}

func (r *kvJobRepository) UpdateProgress(ctx context.Context, jobID kernel.ProcessingJobID, step resume.ProcessingStep, percentage int) error {
	return r.mutate(ctx, jobID, func(job *resume.ProcessingJob) error {
		job.Advance(step, percentage)
		return nil
	})
}

// ============================================================================
// In-memory
// ============================================================================

type memoryJobKV struct {
	mu   sync.RWMutex
	jobs map[kernel.ProcessingJobID][]byte
}

func (m *memoryJobKV) load(_ context.Context, id kernel.ProcessingJobID) (*resume.ProcessingJob, error) {
	m.mu.RLock()
	data, ok := m.jobs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, resume.ErrJobNotFound().WithDetail("job_id", id)
	}

	var job resume.ProcessingJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	return &job, nil
}

func (m *memoryJobKV) save(_ context.Context, job *resume.ProcessingJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job %s: %w", job.ID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = data
	return nil
}

// NewMemoryJobRepository keeps processing jobs in process memory
func NewMemoryJobRepository() resume.JobRepository {
	return &kvJobRepository{
		kv:  &memoryJobKV{jobs: make(map[kernel.ProcessingJobID][]byte)},
		now: time.Now,
	}
}

// ============================================================================
// Redis
// ============================================================================

// JobTTL bounds how long finished job records stay readable in redis
const JobTTL = 7 * 24 * time.Hour

type redisJobKV struct {
	client *redis.Client
	prefix string
}

func (r *redisJobKV) key(id kernel.ProcessingJobID) string {
	return r.prefix + ":job:" + id.String()
}

func (r *redisJobKV) load(ctx context.Context, id kernel.ProcessingJobID) (*resume.ProcessingJob, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, resume.ErrJobNotFound().WithDetail("job_id", id)
		}
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}

	var job resume.ProcessingJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	return &job, nil
}

func (r *redisJobKV) save(ctx context.Context, job *resume.ProcessingJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job %s: %w", job.ID, err)
	}
	if err := r.client.Set(ctx, r.key(job.ID), data, JobTTL).Err(); err != nil {
		return fmt.Errorf("set job %s: %w", job.ID, err)
	}
	return nil
}

// NewRedisJobRepository stores processing jobs as JSON values next to the queue
func NewRedisJobRepository(client *redis.Client, prefix string) resume.JobRepository {
	return &kvJobRepository{
		kv:  &redisJobKV{client: client, prefix: prefix},
		now: time.Now,
	}
}
