// Package report renders analyses, history and statistics as terminal text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rcliao/nvr/internal/decision"
	"github.com/rcliao/nvr/internal/dimension"
	"github.com/rcliao/nvr/internal/model"
	"github.com/rcliao/nvr/internal/scoring"
	"github.com/rcliao/nvr/internal/session"
	"github.com/rcliao/nvr/internal/store"
)

const (
	ruleWidth    = 60
	productWidth = 18
)

// Printer writes reports to an output stream.
type Printer struct {
	w        io.Writer
	currency string
}

// NewPrinter returns a Printer that formats money with the given symbol.
func NewPrinter(w io.Writer, currency string) *Printer {
	return &Printer{w: w, currency: currency}
}

// Money formats an amount with thousands separators and two decimals.
func (p *Printer) Money(v float64) string {
	return p.currency + humanize.FormatFloat("#,###.##", v)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Header prints a title between double rules.
func (p *Printer) Header(title string) {
	rule := strings.Repeat("=", ruleWidth)
	p.printf("\n%s\n  %s\n%s\n", rule, title, rule)
}

// Section prints a title between single rules.
func (p *Printer) Section(title string) {
	rule := strings.Repeat("─", ruleWidth)
	p.printf("\n%s\n  %s\n%s\n", rule, title, rule)
}

func bar(n float64) string {
	if n < 1 {
		return ""
	}
	return strings.Repeat("█", int(n))
}

// Observe renders session progress; it satisfies session.Observer.
func (p *Printer) Observe(ev session.Event) {
	switch ev.Stage {
	case session.StageNeeds:
		p.Needs(ev.RawNeeds, ev.WeightedNeeds)
	case session.StageValues:
		p.Values(ev.Product, ev.Price, ev.Values)
	case session.StageMatched:
		p.Match(*ev.Analysis)
	}
}

// Needs prints the need matrix summary.
func (p *Printer) Needs(raw, weighted dimension.Scores) {
	p.Section("Your needs")
	p.printf("\n%-12s %8s %8s %10s\n", "Dimension", "Need", "Weight", "Weighted")
	p.printf("%s\n", strings.Repeat("─", 42))
	for _, d := range dimension.All() {
		p.printf("%-12s %8.1f %8.1f %10.1f\n", d.Name, raw.Get(d.Name), d.Weight, weighted.Get(d.Name))
	}
	p.printf("%s\n", strings.Repeat("─", 42))
	p.printf("%-12s %8s %8s %10.1f\n", "Total need", "", "", scoring.TotalNeed(weighted))
}

// Values prints the value matrix summary and value density.
func (p *Printer) Values(product string, price float64, values dimension.Scores) {
	total := scoring.TotalValue(values)
	p.Section("Product value")
	p.printf("\nProduct: %s\nPrice:   %s\n\n", product, p.Money(price))
	for _, d := range dimension.All() {
		p.printf("%-12s %8.1f\n", d.Name, values.Get(d.Name))
	}
	p.printf("%s\n", strings.Repeat("─", 21))
	p.printf("%-12s %8.1f\n", "Total value", total)
	p.printf("\nValue density = %.1f / %.2f = %.2f\n", total, price/scoring.DensityUnit, scoring.ValueDensity(total, price))
}

// Match prints the per-dimension fit table and overall ROI.
func (p *Printer) Match(a scoring.Analysis) {
	p.Section("Match analysis")
	p.printf("\n%-12s %8s %8s %8s  %s\n", "Dimension", "Need", "Value", "Match", "Fit")
	p.printf("%s\n", strings.Repeat("─", ruleWidth))
	for _, row := range a.Ranking.Rows {
		p.printf("%-12s %8.1f %8.1f %8.1f  %s %.0f%%\n",
			row.Dimension.Name, row.WeightedNeed, row.Value, row.Score, bar(row.Percentage/10), row.Percentage)
	}
	p.printf("%s\n", strings.Repeat("─", ruleWidth))
	p.printf("\n✅ High match: %s\n", strings.Join(a.Ranking.High, ", "))
	if len(a.Ranking.Low) > 0 {
		p.printf("⚠️  Low match:  %s\n", strings.Join(a.Ranking.Low, ", "))
	}
	p.printf("\nOverall match = %.1f%%\n", a.MatchPercentage)
	p.printf("ROI = %.1f%% x %.2f = %.2f\n", a.MatchPercentage, a.ValueDensity, a.ROI)
}

// Result prints the final recommendation.
func (p *Printer) Result(res *session.Result) {
	a := res.Analysis
	p.printf("\nTime type: %s\n", a.TimeDecay.Label)
	p.printf("Adjusted ROI = %.2f x %g = %.2f\n", a.ROI, a.TimeDecay.Coefficient, a.AdjustedROI)

	if res.Impulse.Flagged {
		p.printf("\n⚠️  Impulse risk: %d of %d red flags.\n", res.Impulse.RedFlags, len(decision.ImpulseQuestions))
	} else {
		p.printf("\n✅ Impulse check passed\n")
	}

	p.Header("✨ Recommendation")
	p.printf("\n%s %s\n", res.Tier.Marker(), res.Tier.Headline())
	p.printf("\nROI index: %.2f\n", a.AdjustedROI)
	p.printf("Advice:    %s\n", res.Tier.Advice())
	if res.Impulse.Flagged {
		p.printf("\n⚠️  Wait %d hours, then evaluate this decision again.\n", decision.CoolingOffHours)
	}
}

// History prints a most-recent-first listing.
func (p *Printer) History(results []store.SearchResult) {
	if len(results) == 0 {
		p.printf("\nNo history yet\n")
		return
	}
	p.Header("📊 Decision history")
	p.printf("\n%-4s %-20s %-20s %14s %8s  %s\n", "#", "Date", "Product", "Price", "ROI", "")
	p.printf("%s\n", strings.Repeat("─", 76))
	for _, r := range results {
		p.printf("%-4d %-20s %-20s %14s %8.2f  %s\n",
			r.Index, r.Date, truncate(r.Product, productWidth), p.Money(r.Price), r.ROI, r.Decision.Marker())
	}
}

// Record prints one record in detail.
func (p *Printer) Record(r model.Record) {
	p.Header("📄 " + r.Product)
	p.printf("\nDate:          %s\n", r.Date)
	p.printf("Price:         %s\n", p.Money(r.Price))
	p.printf("Match:         %.1f%%\n", r.MatchPercentage)
	p.printf("Value density: %.2f\n", r.ValueDensity)
	p.printf("ROI index:     %.2f\n", r.ROI)
	timeType := r.TimeType
	if timeType == "" {
		timeType = "unknown"
	}
	p.printf("Time type:     %s\n", timeType)
	p.printf("Decision:      %s %s\n", r.Decision.Marker(), r.Decision.Headline())
	if r.IsImpulse {
		p.printf("Impulse risk:  yes\n")
	}

	p.printf("\nNeeds:\n")
	for _, name := range r.Needs.Keys() {
		v := r.Needs[name]
		p.printf("  %-12s %s %.1f\n", name, bar(v/2), v)
	}
	p.printf("\nValues:\n")
	for _, name := range r.Values.Keys() {
		v := r.Values[name]
		p.printf("  %-12s %s %.1f\n", name, bar(v), v)
	}
}

// Stats prints aggregate statistics.
func (p *Printer) Stats(st store.Stats) {
	if !st.HasData() {
		p.printf("\nNo data yet\n")
		return
	}
	p.Header("📈 Decision statistics")
	p.printf("\nTotal decisions: %d\n", st.Total)
	for _, t := range decision.Tiers {
		ts := st.Tier(t)
		p.printf("  %s %-20s %d (%.1f%%)\n", t.Marker(), t.Headline()+":", ts.Count, ts.Percent)
	}
	p.printf("\nProjected spend: %s\n", p.Money(st.ProjectedSpend))
	p.printf("Avoided spend:   %s\n", p.Money(st.AvoidedSpend))
	p.printf("Mean ROI:        %.2f\n", st.MeanROI)
	p.printf("Impulse flags:   %d\n", st.Impulses)

	p.printf("\nYour top dimensions:\n")
	for _, dm := range st.TopDimensions {
		d, _ := dimension.Lookup(dm.Name)
		p.printf("  %s %s: %.1f\n", d.Icon, dm.Name, dm.Mean)
	}
}

// Dimensions prints the catalog.
func (p *Printer) Dimensions() {
	p.printf("\n%-4s %-12s %6s  %s\n", "", "Dimension", "Weight", "Description")
	for _, d := range dimension.All() {
		p.printf("%-4s %-12s %6.1f  %s\n", d.Icon, d.Name, d.Weight, d.Desc)
	}
	p.printf("\nMaximum match score: %.0f\n", scoring.MaxPossibleMatch())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
