package runner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rominyadav/createcollab-sub002/internal/config"
	"github.com/rominyadav/createcollab-sub002/internal/models"
	"github.com/rominyadav/createcollab-sub002/internal/videos"
	"github.com/rominyadav/createcollab-sub002/pkg/logger"
	"github.com/rominyadav/createcollab-sub002/pkg/utils"
)

const idleBackoff = 5 * time.Second

// Runner consumes transcode jobs and supervises worker invocations. A job
// that exceeds the supervision window is killed and its asset marked failed;
// a launch failure marks the asset failed immediately. Success is reported
// by the worker itself through the completion callback, not here.
type Runner struct {
	cfg       *config.Config
	videoRepo videos.Repository
	queueRepo videos.QueueRepository
	launcher  Launcher
	logger    logger.Logger
	wg        sync.WaitGroup
}

func New(cfg *config.Config, videoRepo videos.Repository, queueRepo videos.QueueRepository, launcher Launcher, log logger.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		videoRepo: videoRepo,
		queueRepo: queueRepo,
		launcher:  launcher,
		logger:    log,
	}
}

// Start launches the worker loops and blocks until ctx is cancelled and all
// in-flight jobs have been released.
func (r *Runner) Start(ctx context.Context) {
	count := r.cfg.Worker.WorkerCount
	if count < 1 {
		count = 1
	}
	r.logger.Infof("starting %d transcode runners", count)
	for i := 0; i < count; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.loop(ctx)
		}()
	}
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if ok, usage := utils.CheckCPUUsage(r.cfg.Worker.MaxCPUUsage); !ok {
			r.logger.Infof("CPU usage %.2f%% too high, backing off", usage)
			sleepCtx(ctx, idleBackoff)
			continue
		}

		job, err := r.queueRepo.DequeueJob(ctx, r.cfg.Redis.JobQueueKey)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.logger.Errorf("dequeue error: %v", err)
			sleepCtx(ctx, idleBackoff)
			continue
		}
		if job == nil {
			// Lost the lock race on a duplicate; nothing to do.
			continue
		}

		r.process(ctx, job)
	}
}

func (r *Runner) process(ctx context.Context, job *models.TranscodeJob) {
	defer func() {
		if err := r.queueRepo.ReleaseJobLock(context.WithoutCancel(ctx), job.JobID); err != nil {
			r.logger.Warnf("job %s lock release: %v", job.JobID, err)
		}
	}()

	r.logger.Infof("job %s: launching worker for video %s", job.JobID, job.VideoID)

	jobCtx, cancel := context.WithTimeout(ctx, r.cfg.Transcode.SupervisionWindow())
	defer cancel()

	err := r.launcher.Run(jobCtx, job)
	if err == nil {
		r.logger.Infof("job %s: worker exited cleanly after %s", job.JobID, time.Since(job.StartedAt))
		return
	}

	videoID, parseErr := uuid.Parse(job.VideoID)
	if parseErr != nil {
		r.logger.Errorf("job %s: unparseable video id %q: %v", job.JobID, job.VideoID, parseErr)
		return
	}

	var reason error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(jobCtx.Err(), context.DeadlineExceeded) {
		reason = errors.Wrapf(videos.ErrWorkerTimeout, "job %s exceeded %s", job.JobID, r.cfg.Transcode.SupervisionWindow())
	} else {
		reason = errors.Wrapf(videos.ErrWorkerLaunch, "job %s: %v", job.JobID, err)
	}
	r.logger.Errorf("job %s: %v", job.JobID, reason)

	if markErr := r.videoRepo.MarkFailed(context.WithoutCancel(ctx), videoID, reason.Error()); markErr != nil {
		r.logger.Errorf("job %s: MarkFailed error: %v", job.JobID, markErr)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
