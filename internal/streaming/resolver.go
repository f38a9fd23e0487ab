package streaming

import (
	"context"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	// ManifestContentType is served for HLS playlists.
	ManifestContentType = "application/vnd.apple.mpegurl"
	// SegmentContentType is served for everything else under a rendition key.
	SegmentContentType = "video/mp2t"
)

// Segment is a resolved byte stream plus the content type the player needs.
type Segment struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// UseCase maps a storage key to playable bytes. Renditions are immutable
// once written, so implementations are free to cache in front of storage.
type UseCase interface {
	ResolveSegment(ctx context.Context, storageKey string) (*Segment, error)
}

type Handler interface {
	StreamSegment() echo.HandlerFunc
}

// ContentTypeFor classifies a storage key by path hint: playlists get the
// HLS manifest MIME type, any other file is treated as a transport-stream
// segment.
func ContentTypeFor(storageKey string) string {
	if strings.HasSuffix(strings.ToLower(storageKey), ".m3u8") {
		return ManifestContentType
	}
	return SegmentContentType
}
