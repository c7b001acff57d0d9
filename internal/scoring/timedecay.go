package scoring

import "strings"

// TimeDecay describes how a product's value evolves after purchase.
type TimeDecay struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Desc        string  `json:"desc"`
	Coefficient float64 `json:"coefficient"`
}

var (
	Appreciating  = TimeDecay{Key: "appreciating", Label: "Appreciating", Desc: "value grows with use (skills, tools)", Coefficient: 1.5}
	Stable        = TimeDecay{Key: "stable", Label: "Stable", Desc: "constant long-term utility (furniture, infrastructure)", Coefficient: 1.0}
	Decaying      = TimeDecay{Key: "decaying", Label: "Decaying", Desc: "novelty fades quickly (trend items)", Coefficient: 0.5}
	Instantaneous = TimeDecay{Key: "instantaneous", Label: "Instantaneous", Desc: "consumed at point of use (entertainment)", Coefficient: 0.3}
)

// TimeDecays lists the categories in menu order; menu choice N selects
// TimeDecays()[N-1].
func TimeDecays() []TimeDecay {
	return []TimeDecay{Appreciating, Stable, Decaying, Instantaneous}
}

// ParseTimeDecay resolves a menu number ("1".."4"), key or label to a
// category. Anything unrecognised falls back to Stable.
func ParseTimeDecay(choice string) TimeDecay {
	choice = strings.TrimSpace(choice)
	decays := TimeDecays()
	if len(choice) == 1 && choice[0] >= '1' && int(choice[0]-'0') <= len(decays) {
		return decays[choice[0]-'1']
	}
	for _, d := range decays {
		if strings.EqualFold(choice, d.Key) || strings.EqualFold(choice, d.Label) {
			return d
		}
	}
	return Stable
}

// Adjust applies the decay coefficient to a raw ROI.
func (d TimeDecay) Adjust(roi float64) float64 {
	return roi * d.Coefficient
}
