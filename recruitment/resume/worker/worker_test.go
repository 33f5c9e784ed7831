package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/talentrelay/pkg/kernel"
	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/Abraxas-365/talentrelay/recruitment/resume/resumeinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	mu   sync.Mutex
	seen []kernel.ProcessingJobID
	done chan struct{}
}

func (p *recordingProcessor) ProcessJob(_ context.Context, job *resume.ProcessingJob) error {
	p.mu.Lock()
	p.seen = append(p.seen, job.ID)
	n := len(p.seen)
	p.mu.Unlock()
	if n == 2 {
		close(p.done)
	}
	return nil
}

func TestResumeWorker_DrainsQueue(t *testing.T) {
	queue := resumeinfra.NewMemoryParseQueue()
	ctx := context.Background()

	require.NoError(t, queue.Push(ctx, &resume.ProcessingJob{ID: "job-1"}))
	require.NoError(t, queue.Defer(ctx, &resume.ProcessingJob{ID: "job-2"}, 0))

	proc := &recordingProcessor{done: make(chan struct{})}
	w := NewResumeWorker(proc, queue, Config{
		Workers:        2,
		DequeueTimeout: 20 * time.Millisecond,
		DelayedPoll:    10 * time.Millisecond,
	})

	runCtx, cancel := context.WithCancel(ctx)
	w.Start(runCtx)

	select {
	case <-proc.done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs were not processed")
	}
	cancel()
	w.Wait()

	assert.ElementsMatch(t, []kernel.ProcessingJobID{"job-1", "job-2"}, proc.seen)
}
