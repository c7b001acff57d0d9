// Package dimension defines the fixed catalog of value dimensions a purchase
// is scored against.
package dimension

// MaxScore is the upper bound of every raw need or value score.
const MaxScore = 10.0

// Dimension is one named axis of need and value.
type Dimension struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Icon   string  `json:"icon"`
	Desc   string  `json:"desc"`
}

const (
	Safety     = "Safety"
	Health     = "Health"
	Time       = "Time"
	Freedom    = "Freedom"
	Connection = "Connection"
	Growth     = "Growth"
	Meaning    = "Meaning"
)

var catalog = [...]Dimension{
	{Name: Safety, Weight: 1.5, Icon: "🛡️", Desc: "lowers risk and anxiety"},
	{Name: Health, Weight: 1.5, Icon: "💪", Desc: "sustains physical energy"},
	{Name: Time, Weight: 1.5, Icon: "⏰", Desc: "saves or creates time"},
	{Name: Freedom, Weight: 1.2, Icon: "🗝️", Desc: "widens choice and autonomy"},
	{Name: Connection, Weight: 1.0, Icon: "🤝", Desc: "builds emotional bonds"},
	{Name: Growth, Weight: 1.2, Icon: "🌱", Desc: "improves skill and understanding"},
	{Name: Meaning, Weight: 1.0, Icon: "✨", Desc: "spiritual fulfilment"},
}

// All returns the seven dimensions in catalog order. The returned slice is a
// copy; mutating it does not affect the catalog.
func All() []Dimension {
	out := make([]Dimension, len(catalog))
	copy(out, catalog[:])
	return out
}

// Names returns the dimension names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, d := range catalog {
		names[i] = d.Name
	}
	return names
}

// Lookup finds a dimension by name.
func Lookup(name string) (Dimension, bool) {
	for _, d := range catalog {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

// Index returns the catalog position of name, or -1 if it is not a dimension.
func Index(name string) int {
	for i, d := range catalog {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// Ceiling is the largest match score a single dimension can reach:
// maximal need, weighted, times maximal value.
func (d Dimension) Ceiling() float64 {
	return MaxScore * d.Weight * MaxScore
}
