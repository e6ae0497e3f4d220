// Package queue hands analysis work from the upload-accept handler to
// background workers through a Redis list, so accepting an upload never
// blocks on minutes of processing.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKey = "interviewlens:jobs"

// Job is one unit of background work, tagged with the record identity. The
// worker communicates progress solely through the persisted record, never
// back to the enqueuer.
type Job struct {
	InterviewID string `json:"interview_id"`
	VideoPath   string `json:"video_path"`
}

type Queue struct {
	rdb *redis.Client
	key string
}

func New(rdb *redis.Client, key string) *Queue {
	if key == "" {
		key = defaultKey
	}
	return &Queue{rdb: rdb, key: key}
}

func (q *Queue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.key, payload).Err()
}

// Dequeue blocks up to timeout for the next job; (nil, nil) means the wait
// timed out with nothing to do.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	res, err := q.rdb.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// res[0] is the key name, res[1] the payload
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, q.key).Result()
}
