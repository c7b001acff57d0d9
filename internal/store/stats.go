package store

import (
	"sort"

	"github.com/rcliao/nvr/internal/decision"
	"github.com/rcliao/nvr/internal/dimension"
)

const topDimensionCount = 3

// Stats summarises the history.
type Stats struct {
	Total          int             `json:"total"`
	Buy            TierStats       `json:"buy"`
	Consider       TierStats       `json:"consider"`
	Reject         TierStats       `json:"reject"`
	ProjectedSpend float64         `json:"projected_spend"`
	AvoidedSpend   float64         `json:"avoided_spend"`
	MeanROI        float64         `json:"mean_roi"`
	Impulses       int             `json:"impulses"`
	TopDimensions  []DimensionMean `json:"top_dimensions"`
}

// TierStats holds the count and share of one decision tier.
type TierStats struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// DimensionMean is the average recorded need of a dimension.
type DimensionMean struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean"`
}

// HasData reports whether there is anything to summarise.
func (s Stats) HasData() bool {
	return s.Total > 0
}

// Tier returns the stats for t.
func (s Stats) Tier(t decision.Tier) TierStats {
	switch t {
	case decision.Buy:
		return s.Buy
	case decision.Consider:
		return s.Consider
	case decision.Reject:
		return s.Reject
	}
	return TierStats{}
}

// Statistics aggregates the history. An empty history yields zero Stats.
func (h *History) Statistics() Stats {
	st := Stats{Total: len(h.records), TopDimensions: []DimensionMean{}}
	if st.Total == 0 {
		return st
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var roiSum float64

	for _, r := range h.records {
		switch r.Decision {
		case decision.Buy:
			st.Buy.Count++
			st.ProjectedSpend += r.Price
		case decision.Consider:
			st.Consider.Count++
		case decision.Reject:
			st.Reject.Count++
			st.AvoidedSpend += r.Price
		}
		if r.IsImpulse {
			st.Impulses++
		}
		roiSum += r.ROI

		for name, need := range r.Needs {
			if dimension.Index(name) < 0 {
				continue
			}
			sums[name] += need
			counts[name]++
		}
	}

	total := float64(st.Total)
	st.Buy.Percent = float64(st.Buy.Count) / total * 100
	st.Consider.Percent = float64(st.Consider.Count) / total * 100
	st.Reject.Percent = float64(st.Reject.Count) / total * 100
	st.MeanROI = roiSum / total

	var means []DimensionMean
	for _, name := range dimension.Names() {
		if counts[name] == 0 {
			continue
		}
		means = append(means, DimensionMean{Name: name, Mean: sums[name] / float64(counts[name])})
	}
	sort.SliceStable(means, func(i, j int) bool {
		return means[i].Mean > means[j].Mean
	})
	if len(means) > topDimensionCount {
		means = means[:topDimensionCount]
	}
	st.TopDimensions = append(st.TopDimensions, means...)

	return st
}
