package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/memorias-app/memorias/common/blob"
	"github.com/memorias-app/memorias/common/logger"
	"github.com/memorias-app/memorias/common/queue"
)

// TopicBlobCleanup carries deferred blob deletions: blobs uploaded for a
// batch that failed, and blob deletes that failed during media removal.
const TopicBlobCleanup = "blob.cleanup"

// maxCleanupAttempts caps redelivery of a failing cleanup task before it is
// dropped with an error log. Orphans past this point need manual cleanup.
const maxCleanupAttempts = 5

type cleanupTask struct {
	Paths   []string `json:"paths"`
	Attempt int      `json:"attempt"`
}

func encodeCleanupTask(task cleanupTask) ([]byte, error) {
	return json.Marshal(task)
}

// BlobSweeper consumes the cleanup topic and deletes orphaned blobs. Failed
// deletions are re-published with an incremented attempt count.
type BlobSweeper struct {
	queue queue.Queue
	blob  blob.Store
	log   *logger.Logger
}

// NewBlobSweeper creates a sweeper bound to the cleanup topic
func NewBlobSweeper(q queue.Queue, store blob.Store, log *logger.Logger) *BlobSweeper {
	return &BlobSweeper{
		queue: q,
		blob:  store,
		log:   log,
	}
}

// Start subscribes the sweeper. Runs until ctx is cancelled.
func (s *BlobSweeper) Start(ctx context.Context) error {
	return s.queue.Subscribe(ctx, TopicBlobCleanup, s.handle)
}

func (s *BlobSweeper) handle(ctx context.Context, key string, value []byte) error {
	var task cleanupTask
	if err := json.Unmarshal(value, &task); err != nil {
		return fmt.Errorf("malformed cleanup task: %w", err)
	}
	if len(task.Paths) == 0 {
		return nil
	}

	if err := s.blob.Remove(ctx, task.Paths...); err != nil {
		task.Attempt++
		if task.Attempt >= maxCleanupAttempts {
			s.log.Error("giving up on blob cleanup", "key", key, "paths", task.Paths, "error", err)
			return nil
		}

		s.log.Warn("blob cleanup failed, re-queueing", "key", key, "attempt", task.Attempt, "error", err)
		msg, encErr := encodeCleanupTask(task)
		if encErr != nil {
			return encErr
		}
		return s.queue.Publish(ctx, TopicBlobCleanup, key, msg)
	}

	s.log.Info("cleaned up orphaned blobs", "key", key, "count", len(task.Paths))
	return nil
}
