package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/rominyadav/createcollab-sub002/internal/models"
	"github.com/rominyadav/createcollab-sub002/internal/videos"
)

const (
	jobLockPrefix = "lock:transcode:"
	jobLockTTL    = 10 * time.Minute
)

type videoRedisRepo struct {
	redisClient *redis.Client
}

func NewVideoRedisRepo(redisClient *redis.Client) videos.QueueRepository {
	return &videoRedisRepo{
		redisClient: redisClient,
	}
}

func (v *videoRedisRepo) EnqueueJob(ctx context.Context, key string, job *models.TranscodeJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "videoRedisRepo.EnqueueJob.marshal")
	}
	if err := v.redisClient.LPush(ctx, key, data).Err(); err != nil {
		return errors.Wrap(err, "videoRedisRepo.EnqueueJob")
	}
	return nil
}

// DequeueJob blocks until a job arrives, then takes a short lock on it so a
// second runner popping a retried duplicate does not double-launch.
func (v *videoRedisRepo) DequeueJob(ctx context.Context, key string) (*models.TranscodeJob, error) {
	res, err := v.redisClient.BRPop(ctx, 0, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "videoRedisRepo.DequeueJob")
	}
	job := &models.TranscodeJob{}
	if err = json.Unmarshal([]byte(res[1]), job); err != nil {
		return nil, errors.Wrap(err, "videoRedisRepo.DequeueJob.unmarshal")
	}

	locked, err := v.redisClient.SetNX(ctx, jobLockPrefix+job.JobID, 1, jobLockTTL).Result()
	if err != nil {
		return nil, errors.Wrap(err, "videoRedisRepo.DequeueJob.lock")
	}
	if !locked {
		return nil, nil
	}

	job.StartedAt = time.Now()
	return job, nil
}

func (v *videoRedisRepo) ReleaseJobLock(ctx context.Context, jobID string) error {
	if err := v.redisClient.Del(ctx, jobLockPrefix+jobID).Err(); err != nil {
		return errors.Wrap(err, "videoRedisRepo.ReleaseJobLock")
	}
	return nil
}
