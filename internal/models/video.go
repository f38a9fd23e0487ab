package models

import (
	"time"

	"github.com/google/uuid"
)

type TranscodingStatus string

const (
	StatusPending    TranscodingStatus = "pending"
	StatusProcessing TranscodingStatus = "processing"
	StatusCompleted  TranscodingStatus = "completed"
	StatusFailed     TranscodingStatus = "failed"
)

func (s TranscodingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further forward transition exists from s.
func (s TranscodingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityCampaign Visibility = "campaign"
)

// VideoAsset is the central entity of the pipeline. The transcoding fields
// (status, rendition map, original resolution) are always written together;
// is_transcoded is maintained as status == completed in the same statement.
type VideoAsset struct {
	VideoID        uuid.UUID         `json:"video_id" db:"video_id" validate:"omitempty"`
	CreatorID      uuid.UUID         `json:"creator_id" db:"creator_id" validate:"omitempty"`
	Title          string            `json:"title" db:"title" validate:"required,lte=255"`
	Description    string            `json:"description" db:"description" validate:"omitempty,lte=2000"`
	StorageKey     string            `json:"storage_key" db:"storage_key" validate:"required,lte=512"`
	PlaybackURL    string            `json:"playback_url" db:"playback_url" validate:"omitempty"`
	Duration       float64           `json:"duration" db:"duration" validate:"omitempty"`
	Views          int64             `json:"views" db:"views"`
	Likes          int64             `json:"likes" db:"likes"`
	Comments       int64             `json:"comments" db:"comments"`
	Shares         int64             `json:"shares" db:"shares"`
	Visibility     Visibility        `json:"visibility" db:"visibility" validate:"omitempty,oneof=public campaign"`
	CampaignID     *uuid.UUID        `json:"campaign_id,omitempty" db:"campaign_id" validate:"omitempty"`
	Status         TranscodingStatus `json:"transcoding_status" db:"transcoding_status" validate:"omitempty"`
	IsTranscoded   bool              `json:"is_transcoded" db:"is_transcoded"`
	OriginalWidth  *int              `json:"original_width,omitempty" db:"original_width"`
	OriginalHeight *int              `json:"original_height,omitempty" db:"original_height"`
	Renditions     RenditionMap      `json:"renditions" db:"renditions"`
	UploadedAt     time.Time         `json:"uploaded_at" db:"uploaded_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}

type VideoList struct {
	Videos     []*VideoAsset `json:"videos"`
	TotalCount int           `json:"total_count"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	HasMore    bool          `json:"has_more"`
}

// UploadURLInput is the payload for upload-URL issuance. The asset row is
// created alongside the presigned URL so the storage key is bound to a
// video id before any bytes land.
type UploadURLInput struct {
	FileName    string     `json:"file_name" validate:"required,lte=255"`
	MimeType    string     `json:"mime_type" validate:"required,lte=100"`
	FileSize    int64      `json:"file_size" validate:"required,gt=0"`
	Title       string     `json:"title" validate:"required,lte=255"`
	Description string     `json:"description" validate:"omitempty,lte=2000"`
	CreatorID   uuid.UUID  `json:"creator_id" validate:"required"`
	Visibility  Visibility `json:"visibility" validate:"omitempty,oneof=public campaign"`
	CampaignID  *uuid.UUID `json:"campaign_id" validate:"omitempty"`
}

type UploadURLOutput struct {
	VideoID    uuid.UUID `json:"video_id"`
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
}
