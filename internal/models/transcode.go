package models

import (
	"fmt"
	"time"
)

// TranscodeJob is the queue payload for one invocation of the external
// worker. It has no persistence of its own; everything durable about the job
// is reflected in the owning VideoAsset's transcoding status.
type TranscodeJob struct {
	JobID       string          `json:"job_id"`
	VideoID     string          `json:"video_id"`
	StorageKey  string          `json:"storage_key"`
	InputBucket string          `json:"input_bucket"`
	OutputKey   string          `json:"output_key"`
	Ladder      []RenditionTier `json:"ladder"`
	CallbackURL string          `json:"callback_url"`
	EnqueuedAt  time.Time       `json:"enqueued_at"`
	StartedAt   time.Time       `json:"started_at,omitempty"`
}

type Resolution struct {
	Width  int `json:"width" validate:"required,gt=0"`
	Height int `json:"height" validate:"required,gt=0"`
}

// CompletionReport is the payload the worker posts back when encoding
// finishes. It is validated and merged into the VideoAsset, never stored.
type CompletionReport struct {
	VideoID            string       `json:"video_id" validate:"required,uuid"`
	Renditions         RenditionMap `json:"hls_urls" validate:"required"`
	OriginalResolution Resolution   `json:"original_resolution" validate:"required"`
}

// Validate checks the report shape beyond struct tags: tier keys must belong
// to the known ladder and a report with zero renditions is a failure, not a
// success.
func (r *CompletionReport) Validate() error {
	if len(r.Renditions) == 0 {
		return fmt.Errorf("completion report carries no renditions")
	}
	return r.Renditions.Validate()
}
