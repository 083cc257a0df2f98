package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorias-app/memorias/common/queue"
)

func TestBlobSweeperRemovesOrphans(t *testing.T) {
	blob := newFakeBlob()
	blob.objects["albums/a/1-x.jpg"] = []byte("x")
	q := queue.NewMemoryQueue(testLogger())
	sweeper := NewBlobSweeper(q, blob, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, sweeper.Start(ctx))

	msg, err := encodeCleanupTask(cleanupTask{Paths: []string{"albums/a/1-x.jpg"}})
	require.NoError(t, err)
	require.NoError(t, q.Publish(ctx, TopicBlobCleanup, "a", msg))

	assert.Eventually(t, func() bool {
		blob.mu.Lock()
		defer blob.mu.Unlock()
		return len(blob.removed) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestBlobSweeperRequeuesFailures(t *testing.T) {
	blob := newFakeBlob()
	blob.removeErr = assert.AnError
	q := newFakeQueue()
	sweeper := NewBlobSweeper(q, blob, testLogger())

	msg, err := encodeCleanupTask(cleanupTask{Paths: []string{"p"}, Attempt: 1})
	require.NoError(t, err)

	require.NoError(t, sweeper.handle(context.Background(), "a", msg))

	msgs := q.messages[TopicBlobCleanup]
	require.Len(t, msgs, 1)
	var task cleanupTask
	require.NoError(t, json.Unmarshal(msgs[0], &task))
	assert.Equal(t, 2, task.Attempt)
	assert.Equal(t, []string{"p"}, task.Paths)
}

func TestBlobSweeperGivesUpAfterMaxAttempts(t *testing.T) {
	blob := newFakeBlob()
	blob.removeErr = assert.AnError
	q := newFakeQueue()
	sweeper := NewBlobSweeper(q, blob, testLogger())

	msg, err := encodeCleanupTask(cleanupTask{Paths: []string{"p"}, Attempt: maxCleanupAttempts - 1})
	require.NoError(t, err)

	require.NoError(t, sweeper.handle(context.Background(), "a", msg))
	assert.Empty(t, q.messages[TopicBlobCleanup])
}

func TestBlobSweeperMalformedTask(t *testing.T) {
	sweeper := NewBlobSweeper(newFakeQueue(), newFakeBlob(), testLogger())

	err := sweeper.handle(context.Background(), "a", []byte("not json"))
	assert.Error(t, err)
}
