package queue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, "test:jobs")
}

func TestQueueRoundtrip(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t)

	job := Job{InterviewID: "iv1", VideoPath: "/uploads/iv1.mp4"}
	require.NoError(t, q.Enqueue(ctx, job))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, job, *got)

	n, err = q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQueueOrderIsFIFO(t *testing.T) {
	ctx := context.Background()
	q := newTestQueue(t)

	require.NoError(t, q.Enqueue(ctx, Job{InterviewID: "first"}))
	require.NoError(t, q.Enqueue(ctx, Job{InterviewID: "second"}))

	got, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", got.InterviewID)

	got, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "second", got.InterviewID)
}

func TestQueueDequeueTimeout(t *testing.T) {
	q := newTestQueue(t)

	got, err := q.Dequeue(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Nil(t, got, "timed-out wait is not an error")
}

func TestQueueDefaultKey(t *testing.T) {
	q := New(nil, "")
	assert.Equal(t, defaultKey, q.key)
}
