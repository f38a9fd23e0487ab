package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestLadderForSkipsTiersAboveSource(t *testing.T) {
	tests := []struct {
		name   string
		height int
		want   []RenditionTier
	}{
		{"720p source", 720, []RenditionTier{Tier360p, Tier480p, Tier720p}},
		{"1080p source", 1080, []RenditionTier{Tier360p, Tier480p, Tier720p, Tier1080p}},
		{"4k source", 2160, []RenditionTier{Tier360p, Tier480p, Tier720p, Tier1080p, Tier1440p, Tier2160p}},
		{"tiny source", 240, []RenditionTier{}},
		{"unknown height requests full ladder", 0, Ladder()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LadderFor(tt.height)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LadderFor(%d) = %v, want %v", tt.height, got, tt.want)
			}
		})
	}
}

func TestRenditionMapValidate(t *testing.T) {
	valid := RenditionMap{Tier360p: "f1", Tier720p: "f2"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid map rejected: %v", err)
	}

	unknownTier := RenditionMap{"p999": "f1"}
	if err := unknownTier.Validate(); err == nil {
		t.Fatal("expected error for unknown tier")
	}

	emptyKey := RenditionMap{Tier480p: ""}
	if err := emptyKey.Validate(); err == nil {
		t.Fatal("expected error for empty storage key")
	}
}

func TestRenditionMapScanRoundTrip(t *testing.T) {
	original := RenditionMap{Tier360p: "f1", Tier1080p: "f3"}
	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var scanned RenditionMap
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(scanned, original) {
		t.Errorf("round trip mismatch: got %v, want %v", scanned, original)
	}

	var fromNil RenditionMap
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if len(fromNil) != 0 {
		t.Errorf("Scan(nil) should produce an empty map, got %v", fromNil)
	}
}

func TestCompletionReportValidate(t *testing.T) {
	report := &CompletionReport{
		VideoID:            "5a3c8e1e-0000-0000-0000-000000000001",
		Renditions:         RenditionMap{Tier360p: "f1"},
		OriginalResolution: Resolution{Width: 1280, Height: 720},
	}
	if err := report.Validate(); err != nil {
		t.Fatalf("valid report rejected: %v", err)
	}

	report.Renditions = RenditionMap{}
	if err := report.Validate(); err == nil {
		t.Fatal("expected empty rendition map to be rejected")
	}

	report.Renditions = RenditionMap{"p140": "f1"}
	if err := report.Validate(); err == nil {
		t.Fatal("expected unknown tier to be rejected")
	}
}

func TestCompletionReportJSONShape(t *testing.T) {
	payload := `{"video_id":"5a3c8e1e-0000-0000-0000-000000000001","hls_urls":{"p360":"f1","p720":"f2"},"original_resolution":{"width":1280,"height":720}}`
	var report CompletionReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if report.Renditions[Tier360p] != "f1" || report.Renditions[Tier720p] != "f2" {
		t.Errorf("unexpected renditions: %v", report.Renditions)
	}
	if report.OriginalResolution.Height != 720 {
		t.Errorf("unexpected resolution: %+v", report.OriginalResolution)
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() || StatusProcessing.Terminal() {
		t.Error("pending/processing must not be terminal")
	}
	if !StatusCompleted.Terminal() || !StatusFailed.Terminal() {
		t.Error("completed/failed must be terminal")
	}
	if StatusPending.Valid() != true || TranscodingStatus("bogus").Valid() {
		t.Error("status validity check broken")
	}
}
