package scoring

import "github.com/rcliao/nvr/internal/dimension"

// Input is everything the engine needs for one purchase.
type Input struct {
	RawNeeds  dimension.Scores
	Values    dimension.Scores
	Price     float64
	TimeDecay TimeDecay
}

// Analysis holds every figure derived from an Input.
type Analysis struct {
	WeightedNeeds   dimension.Scores `json:"weighted_needs"`
	Values          dimension.Scores `json:"values"`
	Price           float64          `json:"price"`
	TotalNeed       float64          `json:"total_need"`
	TotalValue      float64          `json:"total_value"`
	ValueDensity    float64          `json:"value_density"`
	Matches         dimension.Scores `json:"matches"`
	TotalMatch      float64          `json:"total_match"`
	MaxMatch        float64          `json:"max_match"`
	MatchPercentage float64          `json:"match_percentage"`
	ROI             float64          `json:"roi"`
	TimeDecay       TimeDecay        `json:"time_decay"`
	AdjustedROI     float64          `json:"adjusted_roi"`
	Ranking         Ranking          `json:"ranking"`
}

// Analyze runs the full scoring pipeline. A zero TimeDecay is treated as
// Stable.
func Analyze(in Input) Analysis {
	decay := in.TimeDecay
	if decay.Key == "" {
		decay = Stable
	}

	values := make(dimension.Scores, len(dimension.Names()))
	for _, name := range dimension.Names() {
		values[name] = in.Values.Get(name)
	}

	a := Analysis{
		WeightedNeeds: WeightNeeds(in.RawNeeds),
		Values:        values,
		Price:         in.Price,
		TimeDecay:     decay,
		MaxMatch:      MaxPossibleMatch(),
	}
	a.TotalNeed = TotalNeed(a.WeightedNeeds)
	a.TotalValue = TotalValue(a.Values)
	a.ValueDensity = ValueDensity(a.TotalValue, in.Price)
	a.Matches = MatchScores(a.WeightedNeeds, a.Values)
	a.TotalMatch = TotalMatch(a.Matches)
	a.MatchPercentage = MatchPercentage(a.TotalMatch, a.MaxMatch)
	a.ROI = ROI(a.MatchPercentage, a.ValueDensity)
	a.AdjustedROI = decay.Adjust(a.ROI)
	a.Ranking = Rank(a.WeightedNeeds, a.Values, a.Matches)
	return a
}

// ApplyTimeDecay sets the decay category and recomputes the adjusted ROI.
func (a *Analysis) ApplyTimeDecay(d TimeDecay) {
	a.TimeDecay = d
	a.AdjustedROI = d.Adjust(a.ROI)
}
