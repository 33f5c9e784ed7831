package resumeinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Abraxas-365/talentrelay/recruitment/resume"
	"github.com/go-redis/redis/v8"
)

// promoteDueScript moves every parked job whose score is due onto the ready
// list in one step, so two servers polling at once never double-queue a job.
var promoteDueScript = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, member in ipairs(due) do
	redis.call('LPUSH', KEYS[2], member)
end
if #due > 0 then
	redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
end
return #due
`)

// RedisParseQueue keeps ready jobs in a list and parked retries in a sorted
// set scored by the unix millisecond they become due.
type RedisParseQueue struct {
	client     *redis.Client
	readyKey   string
	delayedKey string
	now        func() time.Time
}

// NewRedisParseQueue uses <prefix>:ready and <prefix>:delayed as keys
func NewRedisParseQueue(client *redis.Client, prefix string) *RedisParseQueue {
	return &RedisParseQueue{
		client:     client,
		readyKey:   prefix + ":ready",
		delayedKey: prefix + ":delayed",
		now:        time.Now,
	}
}

var _ resume.ParseQueue = (*RedisParseQueue)(nil)

func (q *RedisParseQueue) Push(ctx context.Context, job *resume.ProcessingJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}
	if err := q.client.LPush(ctx, q.readyKey, data).Err(); err != nil {
		return fmt.Errorf("push job %s: %w", job.ID, err)
	}
	return nil
}

func (q *RedisParseQueue) Pop(ctx context.Context, timeout time.Duration) (*resume.ProcessingJob, error) {
	result, err := q.client.BRPop(ctx, timeout, q.readyKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pop job: %w", err)
	}
	// BRPOP replies with [key, value]
	if len(result) != 2 {
		return nil, fmt.Errorf("pop job: unexpected reply of %d elements", len(result))
	}

	var job resume.ProcessingJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("decode job payload %q: %w", result[1], err)
	}
	return &job, nil
}

func (q *RedisParseQueue) Defer(ctx context.Context, job *resume.ProcessingJob, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}

	due := &redis.Z{Score: float64(q.now().Add(delay).UnixMilli()), Member: data}
	if err := q.client.ZAdd(ctx, q.delayedKey, due).Err(); err != nil {
		return fmt.Errorf("defer job %s: %w", job.ID, err)
	}
	return nil
}

func (q *RedisParseQueue) PromoteDue(ctx context.Context) (int, error) {
	now := strconv.FormatInt(q.now().UnixMilli(), 10)
	moved, err := promoteDueScript.Run(ctx, q.client, []string{q.delayedKey, q.readyKey}, now).Int()
	if err != nil {
		return 0, fmt.Errorf("promote due jobs: %w", err)
	}
	return moved, nil
}

func (q *RedisParseQueue) Stats(ctx context.Context) (resume.QueueStats, error) {
	var ready *redis.IntCmd
	var delayed *redis.IntCmd
	_, err := q.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		ready = pipe.LLen(ctx, q.readyKey)
		delayed = pipe.ZCard(ctx, q.delayedKey)
		return nil
	})
	if err != nil {
		return resume.QueueStats{}, fmt.Errorf("queue stats: %w", err)
	}
	return resume.QueueStats{Ready: ready.Val(), Delayed: delayed.Val()}, nil
}
