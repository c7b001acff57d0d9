package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rcliao/nvr/internal/decision"
	"github.com/rcliao/nvr/internal/dimension"
	"github.com/rcliao/nvr/internal/model"
	"github.com/rcliao/nvr/internal/scoring"
	"github.com/rcliao/nvr/internal/store"
)

// MaxPrice bounds the price question.
const MaxPrice = 10_000_000.0

var (
	// ErrEmptyProduct aborts a session whose product name is blank.
	ErrEmptyProduct = errors.New("product name must not be empty")
	// ErrNonPositivePrice aborts a session whose price is not above zero.
	ErrNonPositivePrice = errors.New("price must be greater than 0")
	// ErrInvalidInput is returned when an Asker hands back an answer outside
	// the request bounds.
	ErrInvalidInput = errors.New("invalid input")
)

// IsAborted reports whether err ended a session without being fatal.
func IsAborted(err error) bool {
	return errors.Is(err, ErrEmptyProduct) || errors.Is(err, ErrNonPositivePrice)
}

// Stage marks a point in the session at which an Observer is notified.
type Stage int

const (
	StageNeeds Stage = iota + 1
	StageValues
	StageMatched
	StageDecided
)

// Event carries the session state at a Stage. Analysis is set from
// StageMatched on; Impulse and Tier only at StageDecided.
type Event struct {
	Stage         Stage
	Product       string
	Price         float64
	RawNeeds      dimension.Scores
	WeightedNeeds dimension.Scores
	Values        dimension.Scores
	Analysis      *scoring.Analysis
	Impulse       decision.ImpulseResult
	Tier          decision.Tier
}

// Observer is told about session progress, typically to render summaries.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// Result is a finished session.
type Result struct {
	Product  string                 `json:"product"`
	Analysis scoring.Analysis       `json:"analysis"`
	Impulse  decision.ImpulseResult `json:"impulse"`
	Tier     decision.Tier          `json:"tier"`
	Record   model.Record           `json:"record"`
}

// Orchestrator runs analysis sessions against a history.
type Orchestrator struct {
	asker    Asker
	history  *store.History
	observer Observer
	now      func() time.Time
	logger   *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithObserver registers an Observer.
func WithObserver(o Observer) OrchestratorOption {
	return func(s *Orchestrator) {
		s.observer = o
	}
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(s *Orchestrator) {
		s.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) OrchestratorOption {
	return func(s *Orchestrator) {
		s.logger = l
	}
}

// New returns an Orchestrator that asks through asker and appends finished
// sessions to history.
func New(asker Asker, history *store.History, opts ...OrchestratorOption) *Orchestrator {
	s := &Orchestrator{
		asker:    asker,
		history:  history,
		observer: ObserverFunc(func(Event) {}),
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs one analysis. Aborted sessions (see IsAborted) and errors
// from the Asker write nothing. A save failure returns the result together
// with the error.
func (s *Orchestrator) Run(ctx context.Context) (*Result, error) {
	ev := Event{}

	resp, err := s.asker.Ask(ctx, Request{Kind: KindText, Key: "product", Label: "Product or service name"})
	if err != nil {
		return nil, err
	}
	ev.Product = strings.TrimSpace(resp.Text)
	if ev.Product == "" {
		s.logger.Info("session aborted", "reason", ErrEmptyProduct)
		return nil, ErrEmptyProduct
	}

	ev.Price, err = s.number(ctx, Request{Key: "price", Label: "Price", Min: 0, Max: MaxPrice})
	if err != nil {
		return nil, err
	}
	if ev.Price <= 0 {
		s.logger.Info("session aborted", "product", ev.Product, "reason", ErrNonPositivePrice)
		return nil, ErrNonPositivePrice
	}

	ev.RawNeeds, err = s.scores(ctx, "need", "How strongly do you need this?")
	if err != nil {
		return nil, err
	}
	ev.WeightedNeeds = scoring.WeightNeeds(ev.RawNeeds)
	ev.Stage = StageNeeds
	s.observer.Observe(ev)

	ev.Values, err = s.scores(ctx, "value", "How much value does the product offer here?")
	if err != nil {
		return nil, err
	}
	ev.Stage = StageValues
	s.observer.Observe(ev)

	analysis := scoring.Analyze(scoring.Input{
		RawNeeds:  ev.RawNeeds,
		Values:    ev.Values,
		Price:     ev.Price,
		TimeDecay: scoring.Stable,
	})
	ev.Analysis = &analysis
	ev.Stage = StageMatched
	s.observer.Observe(ev)

	decay, err := s.timeDecay(ctx)
	if err != nil {
		return nil, err
	}
	analysis.ApplyTimeDecay(decay)

	var answers [4]bool
	for i, q := range decision.ImpulseQuestions {
		resp, err := s.asker.Ask(ctx, Request{Kind: KindYesNo, Key: "impulse." + strconv.Itoa(i+1), Label: q})
		if err != nil {
			return nil, err
		}
		answers[i] = resp.Yes
	}
	ev.Impulse = decision.CheckImpulse(answers)
	ev.Tier = decision.Classify(analysis.AdjustedROI)
	ev.Stage = StageDecided
	s.observer.Observe(ev)

	res := &Result{
		Product:  ev.Product,
		Analysis: analysis,
		Impulse:  ev.Impulse,
		Tier:     ev.Tier,
		Record:   model.NewRecord(s.now(), ev.Product, analysis, ev.Tier, ev.Impulse.Flagged),
	}
	if err := s.history.Append(ctx, res.Record); err != nil {
		return res, err
	}
	s.logger.Info("session recorded", "product", res.Product, "decision", res.Tier, "roi", analysis.AdjustedROI)
	return res, nil
}

func (s *Orchestrator) number(ctx context.Context, req Request) (float64, error) {
	req.Kind = KindNumber
	resp, err := s.asker.Ask(ctx, req)
	if err != nil {
		return 0, err
	}
	if resp.Number < req.Min || resp.Number > req.Max || math.IsNaN(resp.Number) {
		return 0, fmt.Errorf("%w: %s = %v outside [%v, %v]", ErrInvalidInput, req.Key, resp.Number, req.Min, req.Max)
	}
	return resp.Number, nil
}

func (s *Orchestrator) scores(ctx context.Context, prefix, hint string) (dimension.Scores, error) {
	out := make(dimension.Scores, len(dimension.Names()))
	for _, d := range dimension.All() {
		v, err := s.number(ctx, Request{
			Key:   prefix + "." + d.Name,
			Label: d.Icon + " " + d.Name + ": " + d.Desc,
			Hint:  hint,
			Min:   0,
			Max:   dimension.MaxScore,
		})
		if err != nil {
			return nil, err
		}
		out[d.Name] = v
	}
	return out, nil
}

func (s *Orchestrator) timeDecay(ctx context.Context) (scoring.TimeDecay, error) {
	decays := scoring.TimeDecays()
	opts := make([]Option, len(decays))
	for i, d := range decays {
		opts[i] = Option{Key: d.Key, Label: d.Label, Desc: d.Desc}
	}
	resp, err := s.asker.Ask(ctx, Request{
		Kind:    KindChoice,
		Key:     "time_decay",
		Label:   "How will this product's value change over time?",
		Options: opts,
	})
	if err != nil {
		return scoring.TimeDecay{}, err
	}
	return scoring.ParseTimeDecay(resp.Text), nil
}
