package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rominyadav/createcollab-sub002/internal/config"
	"github.com/rominyadav/createcollab-sub002/internal/models"
	"github.com/rominyadav/createcollab-sub002/internal/transcode"
	"github.com/rominyadav/createcollab-sub002/internal/videos"
	"github.com/rominyadav/createcollab-sub002/pkg/logger"
	"github.com/rominyadav/createcollab-sub002/pkg/utils"
)

type transcodeUC struct {
	cfg         *config.Config
	videoRepo   videos.Repository
	storageRepo videos.StorageRepository
	queueRepo   videos.QueueRepository
	logger      logger.Logger
}

func NewTranscodeUseCase(
	cfg *config.Config,
	videoRepo videos.Repository,
	storageRepo videos.StorageRepository,
	queueRepo videos.QueueRepository,
	log logger.Logger,
) transcode.UseCase {
	return &transcodeUC{
		cfg:         cfg,
		videoRepo:   videoRepo,
		storageRepo: storageRepo,
		queueRepo:   queueRepo,
		logger:      log,
	}
}

func (u *transcodeUC) IssueUploadURL(ctx context.Context, input *models.UploadURLInput) (*models.UploadURLOutput, error) {
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("IssueUploadURL - ValidateStruct error: %v", err)
		return nil, errors.Wrap(err, "invalid input")
	}

	asset := &models.VideoAsset{
		CreatorID:   input.CreatorID,
		Title:       input.Title,
		Description: input.Description,
		StorageKey:  fmt.Sprintf("uploads/%s/%s", input.CreatorID, input.FileName),
		Visibility:  input.Visibility,
		CampaignID:  input.CampaignID,
	}
	asset, err := u.videoRepo.CreateVideo(ctx, asset)
	if err != nil {
		u.logger.Errorf("IssueUploadURL - CreateVideo error: %v", err)
		return nil, err
	}

	url, err := u.storageRepo.PresignPutURL(ctx, &videos.PresignInput{
		Bucket:   u.cfg.S3.InputBucket,
		Key:      asset.StorageKey,
		MimeType: input.MimeType,
		Size:     input.FileSize,
	})
	if err != nil {
		u.logger.Errorf("IssueUploadURL - PresignPutURL error: %v", err)
		return nil, err
	}

	return &models.UploadURLOutput{
		VideoID:    asset.VideoID,
		StorageKey: asset.StorageKey,
		UploadURL:  url,
	}, nil
}

func (u *transcodeUC) StartTranscode(ctx context.Context, videoID uuid.UUID, storageKey string) (*models.TranscodeJob, error) {
	if videoID == uuid.Nil {
		return nil, errors.Wrap(videos.ErrNotFound, "empty video id")
	}
	if storageKey == "" {
		return nil, errors.Wrap(videos.ErrNotFound, "empty storage key")
	}

	asset, err := u.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		u.logger.Warnf("StartTranscode - video lookup failed: %v", err)
		return nil, err
	}

	if err = u.storageRepo.HeadObject(ctx, u.cfg.S3.InputBucket, storageKey); err != nil {
		u.logger.Warnf("StartTranscode - source object check failed: %v", err)
		return nil, err
	}

	// Compare-and-set is the mutual exclusion: under concurrent triggers at
	// most one caller wins the pending|failed -> processing transition.
	started, err := u.videoRepo.MarkProcessing(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !started {
		u.logger.Infof("StartTranscode - duplicate trigger for video %s (status %s), no-op", videoID, asset.Status)
		return nil, nil
	}

	job, err := u.buildJob(asset, storageKey)
	if err != nil {
		u.failLaunch(ctx, videoID, err)
		return nil, errors.Wrapf(videos.ErrWorkerLaunch, "build job: %v", err)
	}

	if err = u.queueRepo.EnqueueJob(ctx, u.cfg.Redis.JobQueueKey, job); err != nil {
		u.failLaunch(ctx, videoID, err)
		return nil, errors.Wrapf(videos.ErrWorkerLaunch, "enqueue: %v", err)
	}

	u.logger.Infof("StartTranscode - job %s enqueued for video %s", job.JobID, videoID)
	return job, nil
}

func (u *transcodeUC) buildJob(asset *models.VideoAsset, storageKey string) (*models.TranscodeJob, error) {
	jobID := uuid.New().String()

	sourceHeight := 0
	if asset.OriginalHeight != nil {
		sourceHeight = *asset.OriginalHeight
	}

	tokenTTL := u.cfg.Transcode.SupervisionWindow() + 10*time.Minute
	token, err := utils.GenerateCallbackToken(asset.VideoID.String(), jobID, u.cfg.Transcode.CallbackSecret, tokenTTL)
	if err != nil {
		return nil, err
	}

	return &models.TranscodeJob{
		JobID:       jobID,
		VideoID:     asset.VideoID.String(),
		StorageKey:  storageKey,
		InputBucket: u.cfg.S3.InputBucket,
		OutputKey:   fmt.Sprintf("renditions/%s", asset.VideoID),
		Ladder:      models.LadderFor(sourceHeight),
		CallbackURL: fmt.Sprintf("%s/api/v1/transcode/callback?token=%s", u.cfg.Transcode.CallbackBaseURL, token),
		EnqueuedAt:  time.Now(),
	}, nil
}

func (u *transcodeUC) failLaunch(ctx context.Context, videoID uuid.UUID, cause error) {
	u.logger.Errorf("StartTranscode - launch failed for video %s: %v", videoID, cause)
	if err := u.videoRepo.MarkFailed(ctx, videoID, cause.Error()); err != nil {
		u.logger.Errorf("StartTranscode - MarkFailed error: %v", err)
	}
}

func (u *transcodeUC) CompleteTranscode(ctx context.Context, report *models.CompletionReport) (*models.VideoAsset, error) {
	if err := utils.ValidateStruct(ctx, report); err != nil {
		return nil, errors.Wrapf(videos.ErrInvalidReport, "%v", err)
	}
	if err := report.Validate(); err != nil {
		return nil, errors.Wrapf(videos.ErrInvalidReport, "%v", err)
	}

	videoID, err := uuid.Parse(report.VideoID)
	if err != nil {
		return nil, errors.Wrapf(videos.ErrInvalidReport, "bad video id: %v", err)
	}

	if _, err = u.videoRepo.GetVideoByID(ctx, videoID); err != nil {
		return nil, err
	}

	asset, err := u.videoRepo.CompleteTranscode(ctx, videoID, report.Renditions, report.OriginalResolution)
	if err != nil {
		u.logger.Warnf("CompleteTranscode - merge rejected for video %s: %v", videoID, err)
		return nil, err
	}

	u.logger.Infof("CompleteTranscode - video %s completed with %d renditions (%dx%d source)",
		videoID, len(report.Renditions), report.OriginalResolution.Width, report.OriginalResolution.Height)
	return asset, nil
}

func (u *transcodeUC) ResolveFileURL(ctx context.Context, fileKey string) (string, error) {
	if fileKey == "" {
		return "", errors.Wrap(videos.ErrNotFound, "empty file key")
	}
	if err := u.storageRepo.HeadObject(ctx, u.cfg.S3.OutputBucket, fileKey); err != nil {
		return "", err
	}
	url, err := u.storageRepo.PresignGetURL(ctx, u.cfg.S3.OutputBucket, fileKey)
	if err != nil {
		u.logger.Errorf("ResolveFileURL - PresignGetURL error: %v", err)
		return "", err
	}
	return url, nil
}

func (u *transcodeUC) GetVideo(ctx context.Context, videoID uuid.UUID) (*models.VideoAsset, error) {
	if videoID == uuid.Nil {
		return nil, errors.Wrap(videos.ErrNotFound, "empty video id")
	}
	return u.videoRepo.GetVideoByID(ctx, videoID)
}

func (u *transcodeUC) ListVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error) {
	if pq == nil {
		pq = &utils.Pagination{Page: 1, Size: 10}
	}
	if pq.Page < 1 {
		pq.Page = 1
	}
	if pq.Size < 1 || pq.Size > 100 {
		pq.Size = 10
	}
	return u.videoRepo.ListVideos(ctx, pq)
}
