// Package scoring computes the need/value match and return figures for a
// prospective purchase.
package scoring

import (
	"sort"

	"github.com/rcliao/nvr/internal/dimension"
)

const (
	// DensityUnit is the price normalisation constant: value density is
	// measured as value per 10,000 currency units.
	DensityUnit = 10000.0

	// LowMatchThreshold is the absolute match score below which one of the
	// bottom three dimensions is flagged as a weak fit.
	LowMatchThreshold = 20.0

	highMatchCount = 3
	lowMatchCount  = 3
)

// WeightedNeed scales a raw need score by the dimension weight. Callers pass
// scores already validated to [0, dimension.MaxScore].
func WeightedNeed(d dimension.Dimension, raw float64) float64 {
	return raw * d.Weight
}

// WeightNeeds applies WeightedNeed to every catalog dimension. Absent
// dimensions are recorded as zero.
func WeightNeeds(raw dimension.Scores) dimension.Scores {
	out := make(dimension.Scores, len(dimension.Names()))
	for _, d := range dimension.All() {
		out[d.Name] = WeightedNeed(d, raw.Get(d.Name))
	}
	return out
}

// TotalNeed sums the weighted needs.
func TotalNeed(weighted dimension.Scores) float64 {
	return weighted.Sum()
}

// TotalValue sums the unweighted value scores.
func TotalValue(values dimension.Scores) float64 {
	return values.Sum()
}

// ValueDensity is total value per DensityUnit of price; zero for a
// non-positive price.
func ValueDensity(totalValue, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return totalValue / (price / DensityUnit)
}

// MatchScore is the product of a weighted need and the value offered.
func MatchScore(weightedNeed, value float64) float64 {
	return weightedNeed * value
}

// MatchScores computes MatchScore for every catalog dimension.
func MatchScores(weighted, values dimension.Scores) dimension.Scores {
	out := make(dimension.Scores, len(dimension.Names()))
	for _, name := range dimension.Names() {
		out[name] = MatchScore(weighted.Get(name), values.Get(name))
	}
	return out
}

// TotalMatch sums the per-dimension match scores.
func TotalMatch(matches dimension.Scores) float64 {
	return matches.Sum()
}

// MaxPossibleMatch is the match total when need and value are both maximal
// everywhere. It is derived from the live catalog weights.
func MaxPossibleMatch() float64 {
	var total float64
	for _, d := range dimension.All() {
		total += d.Ceiling()
	}
	return total
}

// MatchPercentage expresses totalMatch as a percentage of maxPossible.
func MatchPercentage(totalMatch, maxPossible float64) float64 {
	if maxPossible <= 0 {
		return 0
	}
	return totalMatch / maxPossible * 100
}

// ROI combines fit and value density into a single return index.
func ROI(matchPercentage, valueDensity float64) float64 {
	return matchPercentage / 100 * valueDensity
}

// DimensionMatchPercentage is a single dimension's match score relative to
// that dimension's ceiling. Display only; it does not feed ROI.
func DimensionMatchPercentage(d dimension.Dimension, matchScore float64) float64 {
	ceiling := d.Ceiling()
	if ceiling <= 0 {
		return 0
	}
	return matchScore / ceiling * 100
}

// DimensionMatch is one row of the per-dimension fit breakdown.
type DimensionMatch struct {
	Dimension    dimension.Dimension `json:"dimension"`
	WeightedNeed float64             `json:"weighted_need"`
	Value        float64             `json:"value"`
	Score        float64             `json:"score"`
	Percentage   float64             `json:"percentage"`
}

// Ranking orders dimensions by match score and highlights the strongest and
// weakest fits.
type Ranking struct {
	Rows []DimensionMatch `json:"rows"`
	High []string         `json:"high"`
	Low  []string         `json:"low,omitempty"`
}

// Rank sorts dimensions by descending match score, catalog order breaking
// ties. The top three are high matches; of the bottom three, only those
// strictly below LowMatchThreshold are low matches.
func Rank(weighted, values, matches dimension.Scores) Ranking {
	rows := make([]DimensionMatch, 0, len(dimension.Names()))
	for _, d := range dimension.All() {
		score := matches.Get(d.Name)
		rows = append(rows, DimensionMatch{
			Dimension:    d,
			WeightedNeed: weighted.Get(d.Name),
			Value:        values.Get(d.Name),
			Score:        score,
			Percentage:   DimensionMatchPercentage(d, score),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})

	r := Ranking{Rows: rows}
	for i := 0; i < highMatchCount && i < len(rows); i++ {
		r.High = append(r.High, rows[i].Dimension.Name)
	}
	start := len(rows) - lowMatchCount
	if start < 0 {
		start = 0
	}
	for _, row := range rows[start:] {
		if row.Score < LowMatchThreshold {
			r.Low = append(r.Low, row.Dimension.Name)
		}
	}
	return r
}
