package transcode

import (
	"context"

	"github.com/google/uuid"

	"github.com/rominyadav/createcollab-sub002/internal/models"
	"github.com/rominyadav/createcollab-sub002/pkg/utils"
)

// UseCase is the write path of the pipeline: upload-slot issuance, the
// ingest coordinator, the completion handler, plus the read surface the UI
// polls for status.
type UseCase interface {
	IssueUploadURL(ctx context.Context, input *models.UploadURLInput) (*models.UploadURLOutput, error)

	// StartTranscode validates preconditions, compare-and-sets the asset to
	// processing and enqueues a job for the runner. Duplicate triggers are
	// an idempotent no-op. Returns the enqueued job, or nil on a no-op.
	StartTranscode(ctx context.Context, videoID uuid.UUID, storageKey string) (*models.TranscodeJob, error)

	// CompleteTranscode applies a worker completion report as one atomic
	// merge. Idempotent under retry of an identical payload.
	CompleteTranscode(ctx context.Context, report *models.CompletionReport) (*models.VideoAsset, error)

	ResolveFileURL(ctx context.Context, fileKey string) (string, error)

	GetVideo(ctx context.Context, videoID uuid.UUID) (*models.VideoAsset, error)
	ListVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error)
}
