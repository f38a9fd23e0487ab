package transcode

import "github.com/labstack/echo/v4"

type Handler interface {
	IssueUploadURL() echo.HandlerFunc
	StartTranscode() echo.HandlerFunc
	CompleteTranscode() echo.HandlerFunc
	ResolveFileURL() echo.HandlerFunc
	GetVideoByID() echo.HandlerFunc
	ListVideos() echo.HandlerFunc
}
