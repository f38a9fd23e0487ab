package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rominyadav/createcollab-sub002/internal/models"
	"github.com/rominyadav/createcollab-sub002/internal/transcode"
	"github.com/rominyadav/createcollab-sub002/internal/videos"
	"github.com/rominyadav/createcollab-sub002/pkg/logger"
	"github.com/rominyadav/createcollab-sub002/pkg/utils"
)

type transcodeHandler struct {
	transcodeUC transcode.UseCase
	logger      logger.Logger
}

func NewTranscodeHandler(transcodeUC transcode.UseCase, log logger.Logger) transcode.Handler {
	return &transcodeHandler{
		transcodeUC: transcodeUC,
		logger:      log,
	}
}

type startTranscodeInput struct {
	VideoID    string `json:"video_id" validate:"required,uuid"`
	StorageKey string `json:"storage_key" validate:"required"`
}

type resolveFileInput struct {
	FileID string `json:"file_id" validate:"required"`
}

func (h *transcodeHandler) IssueUploadURL() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.UploadURLInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		out, err := h.transcodeUC.IssueUploadURL(c.Request().Context(), input)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}

func (h *transcodeHandler) StartTranscode() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &startTranscodeInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		if err := utils.ValidateStruct(c.Request().Context(), input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		videoID, err := uuid.Parse(input.VideoID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid video id"})
		}

		job, err := h.transcodeUC.StartTranscode(c.Request().Context(), videoID, input.StorageKey)
		if err != nil {
			return h.mapError(c, err)
		}

		message := "transcoding started"
		if job == nil {
			message = "transcoding already in progress"
		}
		return c.JSON(http.StatusAccepted, map[string]interface{}{
			"success": true,
			"message": message,
		})
	}
}

func (h *transcodeHandler) CompleteTranscode() echo.HandlerFunc {
	return func(c echo.Context) error {
		report := &models.CompletionReport{}
		if err := c.Bind(report); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}

		// The callback token is bound to one video; a report for any other
		// video is rejected outright.
		if claims, ok := c.Get("callback_claims").(*utils.CallbackClaims); ok {
			if claims.VideoID != report.VideoID {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "token does not match video"})
			}
		}

		asset, err := h.transcodeUC.CompleteTranscode(c.Request().Context(), report)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, asset)
	}
}

func (h *transcodeHandler) ResolveFileURL() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &resolveFileInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		if err := utils.ValidateStruct(c.Request().Context(), input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		url, err := h.transcodeUC.ResolveFileURL(c.Request().Context(), input.FileID)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"url": url})
	}
}

func (h *transcodeHandler) GetVideoByID() echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := uuid.Parse(c.Param("video_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid video id"})
		}
		asset, err := h.transcodeUC.GetVideo(c.Request().Context(), videoID)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, asset)
	}
}

func (h *transcodeHandler) ListVideos() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.transcodeUC.ListVideos(c.Request().Context(), pagination)
		if err != nil {
			return h.mapError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

func (h *transcodeHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, videos.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, videos.ErrInvalidReport):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, videos.ErrWorkerLaunch):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to start transcoding"})
	case errors.Is(err, videos.ErrUpstreamFetch):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "storage unavailable"})
	default:
		h.logger.Errorf("unhandled error RequestID: %s: %v", utils.GetRequestID(c), err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
}
