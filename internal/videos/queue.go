package videos

import (
	"context"

	"github.com/rominyadav/createcollab-sub002/internal/models"
)

// QueueRepository hands transcode jobs from the ingest coordinator to the
// runner. Dequeue blocks until a job is available or the context ends; the
// per-job lock keeps two runners off the same job.
type QueueRepository interface {
	EnqueueJob(ctx context.Context, key string, job *models.TranscodeJob) error
	DequeueJob(ctx context.Context, key string) (*models.TranscodeJob, error)
	ReleaseJobLock(ctx context.Context, jobID string) error
}
