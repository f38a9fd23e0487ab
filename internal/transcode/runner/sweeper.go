package runner

import (
	"context"
	"time"

	"github.com/rominyadav/createcollab-sub002/internal/config"
	"github.com/rominyadav/createcollab-sub002/internal/videos"
	"github.com/rominyadav/createcollab-sub002/pkg/logger"
)

// Sweeper is the dead-letter path: it periodically fails assets stuck in
// processing past the supervision window. The runner's own timeout covers a
// live runner; the sweeper covers a runner that died mid-job or a completion
// callback that never arrived.
type Sweeper struct {
	cfg       *config.Config
	videoRepo videos.Repository
	logger    logger.Logger
}

func NewSweeper(cfg *config.Config, videoRepo videos.Repository, log logger.Logger) *Sweeper {
	return &Sweeper{
		cfg:       cfg,
		videoRepo: videoRepo,
		logger:    log,
	}
}

// Start blocks until ctx is cancelled, sweeping at the configured interval.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Transcode.SweepEvery())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.cfg.Transcode.SupervisionWindow())
	count, err := s.videoRepo.FailStuckProcessing(ctx, cutoff)
	if err != nil {
		s.logger.Errorf("sweep error: %v", err)
		return
	}
	if count > 0 {
		s.logger.Warnf("sweep: failed %d assets stuck in processing since before %s", count, cutoff.Format(time.RFC3339))
	}
}
