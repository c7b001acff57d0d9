// Package decision turns scoring output into a purchase recommendation and
// screens the purchase for impulse risk.
package decision

import "fmt"

// Tier is the terminal recommendation for a purchase.
type Tier string

const (
	Buy      Tier = "buy"
	Consider Tier = "consider"
	Reject   Tier = "reject"
)

const (
	// BuyThreshold is the lowest adjusted ROI that is strongly recommended.
	BuyThreshold = 1.5
	// ConsiderThreshold is the lowest adjusted ROI worth comparing.
	ConsiderThreshold = 1.0
)

// Tiers lists every tier from best to worst.
var Tiers = []Tier{Buy, Consider, Reject}

// Classify maps an adjusted ROI to a tier. Thresholds are inclusive on the
// lower bound: 1.5 is Buy and 1.0 is Consider.
func Classify(adjustedROI float64) Tier {
	switch {
	case adjustedROI >= BuyThreshold:
		return Buy
	case adjustedROI >= ConsiderThreshold:
		return Consider
	default:
		return Reject
	}
}

// ParseTier validates a stored decision string.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(s); t {
	case Buy, Consider, Reject:
		return t, nil
	}
	return "", fmt.Errorf("invalid decision %q (valid: buy, consider, reject)", s)
}

// Headline is the short verdict shown to the user.
func (t Tier) Headline() string {
	switch t {
	case Buy:
		return "Strongly recommended"
	case Consider:
		return "Worth considering"
	case Reject:
		return "Not recommended"
	}
	return "Unknown"
}

// Advice explains the verdict.
func (t Tier) Advice() string {
	switch t {
	case Buy:
		return "This product fits your needs well and offers excellent value."
	case Consider:
		return "This product broadly fits; compare alternatives before deciding."
	case Reject:
		return "This product matches your needs poorly; reconsider the purchase."
	}
	return ""
}

// Marker is the traffic-light symbol used in listings.
func (t Tier) Marker() string {
	switch t {
	case Buy:
		return "🟢"
	case Reject:
		return "🔴"
	}
	return "🟡"
}
