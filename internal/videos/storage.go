package videos

import (
	"context"
	"io"
)

// StorageObject is a fetched blob plus the metadata the streaming layer
// forwards to the player.
type StorageObject struct {
	Body          io.ReadCloser
	ContentLength int64
	ETag          string
}

// PresignInput describes an upload slot for presigned-PUT issuance.
type PresignInput struct {
	Bucket   string
	Key      string
	MimeType string
	Size     int64
}

// StorageRepository is the object storage service boundary: presigned URL
// issuance, existence checks and byte retrieval by opaque storage key.
type StorageRepository interface {
	PresignPutURL(ctx context.Context, input *PresignInput) (string, error)
	PresignGetURL(ctx context.Context, bucket, key string) (string, error)
	HeadObject(ctx context.Context, bucket, key string) error
	GetObject(ctx context.Context, bucket, key string) (*StorageObject, error)
	RemoveObject(ctx context.Context, bucket, key string) error
}
