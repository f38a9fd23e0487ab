package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/rominyadav/createcollab-sub002/internal/models"
	"github.com/rominyadav/createcollab-sub002/internal/videos"
	"github.com/rominyadav/createcollab-sub002/pkg/utils"
)

type videoRepo struct {
	db *sqlx.DB
}

func NewVideoRepo(db *sqlx.DB) videos.Repository {
	return &videoRepo{
		db: db,
	}
}

func (v *videoRepo) CreateVideo(ctx context.Context, asset *models.VideoAsset) (*models.VideoAsset, error) {
	visibility := asset.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	created := &models.VideoAsset{}
	if err := v.db.QueryRowxContext(
		ctx,
		createVideoQuery,
		asset.CreatorID,
		asset.Title,
		asset.Description,
		asset.StorageKey,
		visibility,
		asset.CampaignID,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "videoRepo.CreateVideo")
	}
	return created, nil
}

func (v *videoRepo) GetVideoByID(ctx context.Context, videoID uuid.UUID) (*models.VideoAsset, error) {
	asset := &models.VideoAsset{}
	if err := v.db.QueryRowxContext(
		ctx,
		getVideoByIDQuery,
		videoID,
	).StructScan(asset); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(videos.ErrNotFound, "video %s", videoID)
		}
		return nil, errors.Wrap(err, "videoRepo.GetVideoByID")
	}
	return asset, nil
}

func (v *videoRepo) ListVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error) {
	var totalCount int
	if err := v.db.GetContext(ctx, &totalCount, getTotalVideosQuery); err != nil {
		return nil, errors.Wrap(err, "videoRepo.ListVideos.count")
	}
	if totalCount == 0 {
		return &models.VideoList{
			Videos:     make([]*models.VideoAsset, 0),
			TotalCount: 0,
			Page:       pq.GetPage(),
			PageSize:   pq.GetSize(),
			HasMore:    false,
		}, nil
	}
	rows, err := v.db.QueryxContext(
		ctx,
		getVideosQuery,
		pq.GetOffset(),
		pq.GetLimit(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "videoRepo.ListVideos")
	}
	defer rows.Close()
	assets := make([]*models.VideoAsset, 0, pq.GetSize())
	for rows.Next() {
		var asset models.VideoAsset
		if err = rows.StructScan(&asset); err != nil {
			return nil, errors.Wrap(err, "videoRepo.ListVideos.scan")
		}
		assets = append(assets, &asset)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "videoRepo.ListVideos.rows")
	}
	return &models.VideoList{
		Videos:     assets,
		TotalCount: totalCount,
		Page:       pq.GetPage(),
		PageSize:   pq.GetSize(),
		HasMore:    utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

func (v *videoRepo) MarkProcessing(ctx context.Context, videoID uuid.UUID) (bool, error) {
	res, err := v.db.ExecContext(ctx, markProcessingQuery, videoID)
	if err != nil {
		return false, errors.Wrap(err, "videoRepo.MarkProcessing")
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "videoRepo.MarkProcessing.rowsAffected")
	}
	return count == 1, nil
}

func (v *videoRepo) MarkFailed(ctx context.Context, videoID uuid.UUID, reason string) error {
	res, err := v.db.ExecContext(ctx, markFailedQuery, videoID)
	if err != nil {
		return errors.Wrapf(err, "videoRepo.MarkFailed: %s", reason)
	}
	if count, _ := res.RowsAffected(); count == 0 {
		// Already completed; completion never reverses.
		return nil
	}
	return nil
}

func (v *videoRepo) CompleteTranscode(ctx context.Context, videoID uuid.UUID, renditions models.RenditionMap, res models.Resolution) (*models.VideoAsset, error) {
	asset := &models.VideoAsset{}
	if err := v.db.QueryRowxContext(
		ctx,
		completeTranscodeQuery,
		videoID,
		renditions,
		res.Width,
		res.Height,
	).StructScan(asset); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(videos.ErrInvalidReport, "video %s is not in a completable state", videoID)
		}
		return nil, errors.Wrap(err, "videoRepo.CompleteTranscode")
	}
	return asset, nil
}

func (v *videoRepo) FailStuckProcessing(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := v.db.ExecContext(ctx, failStuckProcessingQuery, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "videoRepo.FailStuckProcessing")
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "videoRepo.FailStuckProcessing.rowsAffected")
	}
	return count, nil
}
