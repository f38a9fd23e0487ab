package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rominyadav/createcollab-sub002/internal/streaming"
)

// MapStreamingRoutes wires the playback path. CORS is wide open here:
// players are served from a CDN-fronted origin and fetch segments
// cross-origin.
func MapStreamingRoutes(streamGroup *echo.Group, h streaming.Handler) {
	streamGroup.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))
	streamGroup.GET("/*", h.StreamSegment())
}
