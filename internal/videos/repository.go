package videos

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rominyadav/createcollab-sub002/internal/models"
	"github.com/rominyadav/createcollab-sub002/pkg/utils"
)

// Repository is the VideoAsset record store. All transcoding-state mutations
// go through the compare-and-set methods so a status never moves backwards
// and the status/rendition/resolution group is written atomically.
type Repository interface {
	CreateVideo(ctx context.Context, asset *models.VideoAsset) (*models.VideoAsset, error)
	GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.VideoAsset, error)
	ListVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error)

	// MarkProcessing transitions pending|failed -> processing. Returns false
	// with a nil error when the asset was already processing or completed,
	// which callers treat as a duplicate trigger.
	MarkProcessing(ctx context.Context, videoID uuid.UUID) (bool, error)

	// MarkFailed transitions any non-completed status to failed.
	MarkFailed(ctx context.Context, videoID uuid.UUID, reason string) error

	// CompleteTranscode merges status=completed, the rendition map and the
	// original resolution in a single statement. Only assets currently
	// processing or already completed accept the merge; re-applying an
	// identical report is a no-op by construction.
	CompleteTranscode(ctx context.Context, videoID uuid.UUID, renditions models.RenditionMap, res models.Resolution) (*models.VideoAsset, error)

	// FailStuckProcessing fails every asset that has sat in processing since
	// before the cutoff. It is the dead-letter path for workers that crashed
	// without calling back.
	FailStuckProcessing(ctx context.Context, cutoff time.Time) (int64, error)
}
