package runner

import (
	"context"
	"strings"
	"syscall"

	"github.com/containerd/containerd"
	"github.com/containerd/containerd/cio"
	"github.com/containerd/containerd/containers"
	"github.com/containerd/containerd/namespaces"
	"github.com/containerd/containerd/oci"
	"github.com/opencontainers/runtime-spec/specs-go"
	"github.com/pkg/errors"

	"github.com/rominyadav/createcollab-sub002/internal/config"
	"github.com/rominyadav/createcollab-sub002/internal/models"
	"github.com/rominyadav/createcollab-sub002/internal/videos"
	"github.com/rominyadav/createcollab-sub002/pkg/logger"
)

// Launcher runs one transcode worker invocation to completion. Run blocks
// until the worker exits or ctx ends; a cancelled ctx must terminate the
// worker process.
type Launcher interface {
	Run(ctx context.Context, job *models.TranscodeJob) error
}

// containerdLauncher runs the transcoder image as an isolated container task
// with CPU and memory caps from config.
type containerdLauncher struct {
	cfg    *config.Config
	client *containerd.Client
	logger logger.Logger
}

func NewContainerdLauncher(cfg *config.Config, log logger.Logger) (Launcher, error) {
	address := cfg.Container.Address
	if address == "" {
		address = "/run/containerd/containerd.sock"
	}
	client, err := containerd.New(address)
	if err != nil {
		return nil, errors.Wrap(err, "containerd connect")
	}
	return &containerdLauncher{
		cfg:    cfg,
		client: client,
		logger: log,
	}, nil
}

func (l *containerdLauncher) Run(ctx context.Context, job *models.TranscodeJob) error {
	namespace := l.cfg.Container.Namespace
	if namespace == "" {
		namespace = "transcode"
	}
	ctx = namespaces.WithNamespace(ctx, namespace)

	image, err := l.client.Pull(ctx, l.cfg.Container.Image, containerd.WithPullUnpack)
	if err != nil {
		return errors.Wrapf(videos.ErrWorkerLaunch, "pull %s: %v", l.cfg.Container.Image, err)
	}

	containerID := "transcode-" + job.JobID
	container, err := l.client.NewContainer(
		ctx,
		containerID,
		containerd.WithImage(image),
		containerd.WithNewSnapshot(containerID+"-snapshot", image),
		containerd.WithNewSpec(
			oci.WithImageConfig(image),
			oci.WithEnv(l.workerEnv(job)),
			l.withResourceLimits(),
		),
	)
	if err != nil {
		return errors.Wrapf(videos.ErrWorkerLaunch, "create container: %v", err)
	}
	defer func() {
		if delErr := container.Delete(context.WithoutCancel(ctx), containerd.WithSnapshotCleanup); delErr != nil {
			l.logger.Warnf("container %s cleanup: %v", containerID, delErr)
		}
	}()

	task, err := container.NewTask(ctx, cio.NullIO)
	if err != nil {
		return errors.Wrapf(videos.ErrWorkerLaunch, "create task: %v", err)
	}
	defer func() {
		if _, delErr := task.Delete(context.WithoutCancel(ctx)); delErr != nil {
			l.logger.Warnf("task %s cleanup: %v", containerID, delErr)
		}
	}()

	exitStatusC, err := task.Wait(ctx)
	if err != nil {
		return errors.Wrapf(videos.ErrWorkerLaunch, "wait task: %v", err)
	}
	if err = task.Start(ctx); err != nil {
		return errors.Wrapf(videos.ErrWorkerLaunch, "start task: %v", err)
	}

	select {
	case <-ctx.Done():
		// Supervision window elapsed or shutdown; take the worker down with us.
		killCtx := namespaces.WithNamespace(context.WithoutCancel(ctx), namespace)
		if killErr := task.Kill(killCtx, syscall.SIGKILL); killErr != nil {
			l.logger.Warnf("task %s kill: %v", containerID, killErr)
		}
		return ctx.Err()
	case status := <-exitStatusC:
		code, _, resultErr := status.Result()
		if resultErr != nil {
			return errors.Wrapf(videos.ErrWorkerLaunch, "task result: %v", resultErr)
		}
		if code != 0 {
			return errors.Errorf("worker exited with code %d", code)
		}
		return nil
	}
}

func (l *containerdLauncher) workerEnv(job *models.TranscodeJob) []string {
	ladder := make([]string, 0, len(job.Ladder))
	for _, tier := range job.Ladder {
		ladder = append(ladder, string(tier))
	}
	return []string{
		"JOB_ID=" + job.JobID,
		"VIDEO_ID=" + job.VideoID,
		"INPUT_BUCKET=" + job.InputBucket,
		"INPUT_KEY=" + job.StorageKey,
		"OUTPUT_BUCKET=" + l.cfg.S3.OutputBucket,
		"OUTPUT_KEY=" + job.OutputKey,
		"RENDITION_LADDER=" + strings.Join(ladder, ","),
		"CALLBACK_URL=" + job.CallbackURL,
		"S3_ENDPOINT=" + l.cfg.S3.Endpoint,
		"S3_REGION=" + l.cfg.S3.Region,
		"S3_ACCESS_KEY=" + l.cfg.S3.AccessKey,
		"S3_SECRET_KEY=" + l.cfg.S3.SecretKey,
	}
}

func (l *containerdLauncher) withResourceLimits() oci.SpecOpts {
	return func(ctx context.Context, client oci.Client, c *containers.Container, s *oci.Spec) error {
		if s.Linux == nil {
			s.Linux = &specs.Linux{}
		}
		if s.Linux.Resources == nil {
			s.Linux.Resources = &specs.LinuxResources{}
		}
		if l.cfg.Container.MemoryMB > 0 {
			limit := int64(l.cfg.Container.MemoryMB) << 20
			s.Linux.Resources.Memory = &specs.LinuxMemory{Limit: &limit}
		}
		if l.cfg.Container.CPULimit > 0 {
			period := uint64(100000)
			quota := int64(l.cfg.Container.CPULimit * float64(period))
			s.Linux.Resources.CPU = &specs.LinuxCPU{
				Quota:  &quota,
				Period: &period,
			}
		}
		return nil
	}
}
