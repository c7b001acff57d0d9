package decision

// ImpulseThreshold is the number of red flags that marks a purchase as an
// impulse buy.
const ImpulseThreshold = 2

// CoolingOffHours is how long a flagged purchase should be postponed.
const CoolingOffHours = 48

// ImpulseQuestions are the four fixed risk questions, in the order their
// answers are expected by CheckImpulse.
var ImpulseQuestions = [4]string{
	"Did the urge to buy this appear today?",
	"Is it a discount, limited edition or influencer pick that caught you?",
	"Were you angry, anxious or lonely just before deciding?",
	"Do you already own something similar that sits unused?",
}

// ImpulseResult is the outcome of the impulse screen.
type ImpulseResult struct {
	RedFlags int  `json:"red_flags"`
	Flagged  bool `json:"flagged"`
}

// CheckImpulse counts yes answers. Every question weighs the same.
func CheckImpulse(answers [4]bool) ImpulseResult {
	var r ImpulseResult
	for _, yes := range answers {
		if yes {
			r.RedFlags++
		}
	}
	r.Flagged = r.RedFlags >= ImpulseThreshold
	return r
}
