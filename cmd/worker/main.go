package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rominyadav/createcollab-sub002/internal/config"
	"github.com/rominyadav/createcollab-sub002/internal/transcode/runner"
	videoRepository "github.com/rominyadav/createcollab-sub002/internal/videos/repository"
	"github.com/rominyadav/createcollab-sub002/pkg/db/postgres"
	clientRedis "github.com/rominyadav/createcollab-sub002/pkg/db/redis"
	"github.com/rominyadav/createcollab-sub002/pkg/logger"
)

func main() {
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := clientRedis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	appLogger.Infof("redis connected")
	defer redisClient.Close()

	videoRepo := videoRepository.NewVideoRepo(psqlDB)
	queueRepo := videoRepository.NewVideoRedisRepo(redisClient)

	launcher, err := runner.NewContainerdLauncher(cfg, appLogger)
	if err != nil {
		appLogger.Fatalf("could not connect to containerd: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Infof("shutting down worker")
		cancel()
	}()

	sweeper := runner.NewSweeper(cfg, videoRepo, appLogger)
	go sweeper.Start(ctx)

	r := runner.New(cfg, videoRepo, queueRepo, launcher, appLogger)
	r.Start(ctx)
}
