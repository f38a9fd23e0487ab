package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// RenditionTier is one rung of the fixed adaptive-bitrate ladder.
type RenditionTier string

const (
	Tier360p  RenditionTier = "p360"
	Tier480p  RenditionTier = "p480"
	Tier720p  RenditionTier = "p720"
	Tier1080p RenditionTier = "p1080"
	Tier1440p RenditionTier = "p1440"
	Tier2160p RenditionTier = "p2160"
)

var tierHeights = map[RenditionTier]int{
	Tier360p:  360,
	Tier480p:  480,
	Tier720p:  720,
	Tier1080p: 1080,
	Tier1440p: 1440,
	Tier2160p: 2160,
}

func (t RenditionTier) Valid() bool {
	_, ok := tierHeights[t]
	return ok
}

func (t RenditionTier) Height() int {
	return tierHeights[t]
}

// Ladder returns the full tier ladder in ascending resolution order.
func Ladder() []RenditionTier {
	tiers := make([]RenditionTier, 0, len(tierHeights))
	for t := range tierHeights {
		tiers = append(tiers, t)
	}
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].Height() < tiers[j].Height()
	})
	return tiers
}

// LadderFor returns the tiers a source of the given height may be encoded
// into. Tiers above the source height are skipped to avoid upscaling; a
// non-positive height means the resolution is not yet known and the full
// ladder is requested, leaving the skip decision to the worker.
func LadderFor(sourceHeight int) []RenditionTier {
	full := Ladder()
	if sourceHeight <= 0 {
		return full
	}
	tiers := make([]RenditionTier, 0, len(full))
	for _, t := range full {
		if t.Height() <= sourceHeight {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// RenditionMap maps a tier to the storage key of its encoded variant. A tier
// is absent until its rendition exists.
type RenditionMap map[RenditionTier]string

func (m RenditionMap) Validate() error {
	for tier, key := range m {
		if !tier.Valid() {
			return fmt.Errorf("unknown rendition tier %q", tier)
		}
		if key == "" {
			return fmt.Errorf("empty storage key for tier %q", tier)
		}
	}
	return nil
}

// Value and Scan persist the map as a JSONB column.
func (m RenditionMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *RenditionMap) Scan(src interface{}) error {
	if src == nil {
		*m = RenditionMap{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RenditionMap", src)
	}
	return json.Unmarshal(data, m)
}
