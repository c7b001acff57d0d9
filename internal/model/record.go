// Package model defines the persisted decision record.
package model

import (
	"time"

	"github.com/rcliao/nvr/internal/decision"
	"github.com/rcliao/nvr/internal/dimension"
	"github.com/rcliao/nvr/internal/scoring"
)

// DateLayout is the timestamp format of Record.Date.
const DateLayout = "2006-01-02 15:04:05"

// Record is an immutable snapshot of a finished analysis. Field order is the
// on-disk order and must not change; unknown fields in saved files are
// ignored on load.
type Record struct {
	Date            string           `json:"date"`
	Product         string           `json:"product"`
	Price           float64          `json:"price"`
	Needs           dimension.Scores `json:"needs"`
	Values          dimension.Scores `json:"values"`
	MatchPercentage float64          `json:"match_percentage"`
	ValueDensity    float64          `json:"value_density"`
	ROI             float64          `json:"roi"` // adjusted for time decay
	TimeType        string           `json:"time_type"`
	Decision        decision.Tier    `json:"decision"`
	IsImpulse       bool             `json:"is_impulse"`
}

// NewRecord snapshots an analysis taken at now.
func NewRecord(now time.Time, product string, a scoring.Analysis, tier decision.Tier, impulse bool) Record {
	return Record{
		Date:            now.Format(DateLayout),
		Product:         product,
		Price:           a.Price,
		Needs:           clone(a.WeightedNeeds),
		Values:          clone(a.Values),
		MatchPercentage: a.MatchPercentage,
		ValueDensity:    a.ValueDensity,
		ROI:             a.AdjustedROI,
		TimeType:        a.TimeDecay.Label,
		Decision:        tier,
		IsImpulse:       impulse,
	}
}

// Time parses Date in the local zone. The zero time is returned for
// malformed dates.
func (r Record) Time() time.Time {
	t, err := time.ParseInLocation(DateLayout, r.Date, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

func clone(s dimension.Scores) dimension.Scores {
	out := make(dimension.Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
