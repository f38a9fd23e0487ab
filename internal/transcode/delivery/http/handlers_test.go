package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rominyadav/createcollab-sub002/internal/models"
	"github.com/rominyadav/createcollab-sub002/internal/videos"
	"github.com/rominyadav/createcollab-sub002/pkg/logger"
	"github.com/rominyadav/createcollab-sub002/pkg/utils"
)

// fakeUC lets each test script the usecase responses.
type fakeUC struct {
	startJob    *models.TranscodeJob
	startErr    error
	completeErr error
	getVideoErr error
	asset       *models.VideoAsset
}

func (f *fakeUC) IssueUploadURL(ctx context.Context, input *models.UploadURLInput) (*models.UploadURLOutput, error) {
	return &models.UploadURLOutput{VideoID: uuid.New(), StorageKey: "uploads/x", UploadURL: "https://storage.local/put"}, nil
}

func (f *fakeUC) StartTranscode(ctx context.Context, videoID uuid.UUID, storageKey string) (*models.TranscodeJob, error) {
	return f.startJob, f.startErr
}

func (f *fakeUC) CompleteTranscode(ctx context.Context, report *models.CompletionReport) (*models.VideoAsset, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	return f.asset, nil
}

func (f *fakeUC) ResolveFileURL(ctx context.Context, fileKey string) (string, error) {
	return "https://storage.local/get/" + fileKey, nil
}

func (f *fakeUC) GetVideo(ctx context.Context, videoID uuid.UUID) (*models.VideoAsset, error) {
	if f.getVideoErr != nil {
		return nil, f.getVideoErr
	}
	return f.asset, nil
}

func (f *fakeUC) ListVideos(ctx context.Context, pq *utils.Pagination) (*models.VideoList, error) {
	return &models.VideoList{Videos: []*models.VideoAsset{}, Page: pq.Page, PageSize: pq.Size}, nil
}

func doJSON(t *testing.T, handler echo.HandlerFunc, method, target, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestStartTranscodeAccepted(t *testing.T) {
	uc := &fakeUC{startJob: &models.TranscodeJob{JobID: "j1"}}
	h := NewTranscodeHandler(uc, logger.NewNopLogger())

	body := `{"video_id":"` + uuid.New().String() + `","storage_key":"uploads/clip.mp4"}`
	rec := doJSON(t, h.StartTranscode(), http.MethodPost, "/api/v1/transcode/start", body, nil)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["message"] != "transcoding started" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestStartTranscodeDuplicateStillAccepted(t *testing.T) {
	uc := &fakeUC{startJob: nil}
	h := NewTranscodeHandler(uc, logger.NewNopLogger())

	body := `{"video_id":"` + uuid.New().String() + `","storage_key":"uploads/clip.mp4"}`
	rec := doJSON(t, h.StartTranscode(), http.MethodPost, "/api/v1/transcode/start", body, nil)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["message"] != "transcoding already in progress" {
		t.Errorf("message = %v", resp["message"])
	}
}

func TestStartTranscodeBadVideoID(t *testing.T) {
	h := NewTranscodeHandler(&fakeUC{}, logger.NewNopLogger())

	body := `{"video_id":"nope","storage_key":"uploads/clip.mp4"}`
	rec := doJSON(t, h.StartTranscode(), http.MethodPost, "/api/v1/transcode/start", body, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestStartTranscodeMissingStorageKey(t *testing.T) {
	h := NewTranscodeHandler(&fakeUC{}, logger.NewNopLogger())

	body := `{"video_id":"` + uuid.New().String() + `"}`
	rec := doJSON(t, h.StartTranscode(), http.MethodPost, "/api/v1/transcode/start", body, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestStartTranscodeNotFoundMapsTo404(t *testing.T) {
	uc := &fakeUC{startErr: errors.Wrap(videos.ErrNotFound, "video missing")}
	h := NewTranscodeHandler(uc, logger.NewNopLogger())

	body := `{"video_id":"` + uuid.New().String() + `","storage_key":"uploads/clip.mp4"}`
	rec := doJSON(t, h.StartTranscode(), http.MethodPost, "/api/v1/transcode/start", body, nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestStartTranscodeLaunchFailureMapsTo500(t *testing.T) {
	uc := &fakeUC{startErr: errors.Wrap(videos.ErrWorkerLaunch, "enqueue failed")}
	h := NewTranscodeHandler(uc, logger.NewNopLogger())

	body := `{"video_id":"` + uuid.New().String() + `","storage_key":"uploads/clip.mp4"}`
	rec := doJSON(t, h.StartTranscode(), http.MethodPost, "/api/v1/transcode/start", body, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestCompleteTranscodeTokenMismatch(t *testing.T) {
	h := NewTranscodeHandler(&fakeUC{}, logger.NewNopLogger())

	reportVideo := uuid.New().String()
	body := `{"video_id":"` + reportVideo + `","hls_urls":{"p360":"f1"},"original_resolution":{"width":640,"height":360}}`
	rec := doJSON(t, h.CompleteTranscode(), http.MethodPost, "/api/v1/transcode/callback", body, func(c echo.Context) {
		c.Set("callback_claims", &utils.CallbackClaims{VideoID: uuid.New().String(), JobID: "j1"})
	})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestCompleteTranscodeMatchingToken(t *testing.T) {
	videoID := uuid.New()
	uc := &fakeUC{asset: &models.VideoAsset{
		VideoID:      videoID,
		Status:       models.StatusCompleted,
		IsTranscoded: true,
		Renditions:   models.RenditionMap{models.Tier360p: "f1"},
	}}
	h := NewTranscodeHandler(uc, logger.NewNopLogger())

	body := `{"video_id":"` + videoID.String() + `","hls_urls":{"p360":"f1"},"original_resolution":{"width":640,"height":360}}`
	rec := doJSON(t, h.CompleteTranscode(), http.MethodPost, "/api/v1/transcode/callback", body, func(c echo.Context) {
		c.Set("callback_claims", &utils.CallbackClaims{VideoID: videoID.String(), JobID: "j1"})
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var asset models.VideoAsset
	if err := json.Unmarshal(rec.Body.Bytes(), &asset); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if asset.Status != models.StatusCompleted || !asset.IsTranscoded {
		t.Errorf("response asset: status=%s isTranscoded=%v", asset.Status, asset.IsTranscoded)
	}
}

func TestCompleteTranscodeInvalidReportMapsTo400(t *testing.T) {
	uc := &fakeUC{completeErr: errors.Wrap(videos.ErrInvalidReport, "no renditions")}
	h := NewTranscodeHandler(uc, logger.NewNopLogger())

	videoID := uuid.New().String()
	body := `{"video_id":"` + videoID + `","hls_urls":{},"original_resolution":{"width":0,"height":0}}`
	rec := doJSON(t, h.CompleteTranscode(), http.MethodPost, "/api/v1/transcode/callback", body, func(c echo.Context) {
		c.Set("callback_claims", &utils.CallbackClaims{VideoID: videoID, JobID: "j1"})
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetVideoByIDNotFound(t *testing.T) {
	uc := &fakeUC{getVideoErr: errors.Wrap(videos.ErrNotFound, "gone")}
	h := NewTranscodeHandler(uc, logger.NewNopLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("video_id")
	c.SetParamValues(uuid.New().String())

	if err := h.GetVideoByID()(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetVideoByIDBadID(t *testing.T) {
	h := NewTranscodeHandler(&fakeUC{}, logger.NewNopLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("video_id")
	c.SetParamValues("nope")

	if err := h.GetVideoByID()(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestResolveFileURL(t *testing.T) {
	h := NewTranscodeHandler(&fakeUC{}, logger.NewNopLogger())

	body := `{"file_id":"renditions/abc/master.m3u8"}`
	rec := doJSON(t, h.ResolveFileURL(), http.MethodPost, "/api/v1/files/resolve", body, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["url"] == "" {
		t.Error("empty resolved url")
	}
}
