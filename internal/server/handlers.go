package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rominyadav/createcollab-sub002/internal/middleware"
	streamingHttp "github.com/rominyadav/createcollab-sub002/internal/streaming/delivery/http"
	streamingUsecase "github.com/rominyadav/createcollab-sub002/internal/streaming/usecase"
	transcodeHttp "github.com/rominyadav/createcollab-sub002/internal/transcode/delivery/http"
	transcodeUsecase "github.com/rominyadav/createcollab-sub002/internal/transcode/usecase"
	videoRepository "github.com/rominyadav/createcollab-sub002/internal/videos/repository"
	"github.com/rominyadav/createcollab-sub002/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	presignExpiry := time.Duration(s.cfg.Transcode.PresignExpiry) * time.Minute

	vRepo := videoRepository.NewVideoRepo(s.db)
	vAWSRepo := videoRepository.NewAwsRepository(s.s3Client, s.preSignClient, presignExpiry)
	vRedisRepo := videoRepository.NewVideoRedisRepo(s.redisClient)

	transcodeUC := transcodeUsecase.NewTranscodeUseCase(s.cfg, vRepo, vAWSRepo, vRedisRepo, s.logger)
	streamingUC := streamingUsecase.NewStreamingUseCase(s.cfg, vAWSRepo, s.logger)

	transcodeHandlers := transcodeHttp.NewTranscodeHandler(transcodeUC, s.logger)
	streamingHandlers := streamingHttp.NewStreamingHandler(streamingUC, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	streamGroup := v1.Group("/stream")

	transcodeHttp.MapTranscodeRoutes(v1, transcodeHandlers, mw)
	streamingHttp.MapStreamingRoutes(streamGroup, streamingHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
