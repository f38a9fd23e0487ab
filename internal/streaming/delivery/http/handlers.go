package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rominyadav/createcollab-sub002/internal/streaming"
	"github.com/rominyadav/createcollab-sub002/internal/videos"
	"github.com/rominyadav/createcollab-sub002/pkg/logger"
)

type streamingHandler struct {
	streamingUC streaming.UseCase
	logger      logger.Logger
}

func NewStreamingHandler(streamingUC streaming.UseCase, log logger.Logger) streaming.Handler {
	return &streamingHandler{
		streamingUC: streamingUC,
		logger:      log,
	}
}

// StreamSegment serves a manifest or media segment by storage key. Errors
// are categorized and never leak storage internals to the player.
func (h *streamingHandler) StreamSegment() echo.HandlerFunc {
	return func(c echo.Context) error {
		storageKey := c.Param("*")
		if storageKey == "" {
			storageKey = c.QueryParam("file")
		}

		segment, err := h.streamingUC.ResolveSegment(c.Request().Context(), storageKey)
		if err != nil {
			if errors.Is(err, videos.ErrNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "segment not found"})
			}
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "failed to fetch segment"})
		}
		defer segment.Body.Close()

		if segment.ContentLength > 0 {
			c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(segment.ContentLength, 10))
		}
		return c.Stream(http.StatusOK, segment.ContentType, segment.Body)
	}
}
