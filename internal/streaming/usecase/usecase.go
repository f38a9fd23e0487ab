package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/rominyadav/createcollab-sub002/internal/config"
	"github.com/rominyadav/createcollab-sub002/internal/streaming"
	"github.com/rominyadav/createcollab-sub002/internal/videos"
	"github.com/rominyadav/createcollab-sub002/pkg/logger"
)

type streamingUC struct {
	cfg         *config.Config
	storageRepo videos.StorageRepository
	logger      logger.Logger
}

func NewStreamingUseCase(cfg *config.Config, storageRepo videos.StorageRepository, log logger.Logger) streaming.UseCase {
	return &streamingUC{
		cfg:         cfg,
		storageRepo: storageRepo,
		logger:      log,
	}
}

func (u *streamingUC) ResolveSegment(ctx context.Context, storageKey string) (*streaming.Segment, error) {
	if storageKey == "" {
		return nil, errors.Wrap(videos.ErrNotFound, "empty storage key")
	}

	obj, err := u.storageRepo.GetObject(ctx, u.cfg.S3.OutputBucket, storageKey)
	if err != nil {
		if errors.Is(err, videos.ErrNotFound) {
			u.logger.Warnf("ResolveSegment - not found: %s", storageKey)
			return nil, err
		}
		u.logger.Errorf("ResolveSegment - upstream fetch failed for %s: %v", storageKey, err)
		return nil, err
	}

	return &streaming.Segment{
		Body:          obj.Body,
		ContentType:   streaming.ContentTypeFor(storageKey),
		ContentLength: obj.ContentLength,
	}, nil
}
