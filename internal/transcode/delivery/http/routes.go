package http

import (
	"github.com/labstack/echo/v4"

	"github.com/rominyadav/createcollab-sub002/internal/middleware"
	"github.com/rominyadav/createcollab-sub002/internal/transcode"
)

func MapTranscodeRoutes(v1 *echo.Group, h transcode.Handler, mw *middleware.MiddlewareManager) {
	videoGroup := v1.Group("/videos")
	videoGroup.POST("/upload-url", h.IssueUploadURL())
	videoGroup.GET("/:video_id", h.GetVideoByID())
	videoGroup.GET("", h.ListVideos())

	transcodeGroup := v1.Group("/transcode")
	transcodeGroup.POST("/start", h.StartTranscode())
	transcodeGroup.POST("/callback", h.CompleteTranscode(), mw.CallbackAuthMiddleware())

	fileGroup := v1.Group("/files")
	fileGroup.POST("/resolve", h.ResolveFileURL())
}
