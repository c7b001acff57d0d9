package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/nvr/internal/decision"
	"github.com/rcliao/nvr/internal/dimension"
	"github.com/rcliao/nvr/internal/store"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// script answers requests by key; unknown keys get a zero Response.
type script struct {
	answers map[string]Response
	asked   []Request
	failAt  string
}

func (s *script) Ask(ctx context.Context, req Request) (Response, error) {
	s.asked = append(s.asked, req)
	if req.Key == s.failAt {
		return Response{}, context.Canceled
	}
	return s.answers[req.Key], nil
}

func newHistory(t *testing.T) (*store.History, *store.MemoryBackend) {
	t.Helper()
	b := store.NewMemoryBackend()
	return store.Open(context.Background(), b, quiet), b
}

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local)

func newOrchestrator(a Asker, h *store.History, opts ...OrchestratorOption) *Orchestrator {
	opts = append([]OrchestratorOption{WithClock(func() time.Time { return fixedNow }), WithLogger(quiet)}, opts...)
	return New(a, h, opts...)
}

func TestRunSafetyOnlyIsBuy(t *testing.T) {
	h, _ := newHistory(t)
	a := &script{answers: map[string]Response{
		"product":      {Text: "  Smoke alarm  "},
		"price":        {Number: 5000},
		"need.Safety":  {Number: 10},
		"value.Safety": {Number: 10},
		"time_decay":   {Text: "2"},
	}}

	res, err := newOrchestrator(a, h).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Smoke alarm", res.Product)
	assert.InDelta(t, 20.0, res.Analysis.ValueDensity, 1e-9)
	assert.InDelta(t, 150.0/890*100, res.Analysis.MatchPercentage, 1e-9)
	assert.InDelta(t, 150.0/890*20, res.Analysis.AdjustedROI, 1e-9)
	assert.Equal(t, decision.Buy, res.Tier)
	assert.False(t, res.Impulse.Flagged)

	require.Equal(t, 1, h.Len())
	rec, err := h.ByRecency(1)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18 09:30:00", rec.Date)
	assert.Equal(t, 15.0, rec.Needs[dimension.Safety])
	assert.Equal(t, 10.0, rec.Values[dimension.Safety])
	assert.Equal(t, "Stable", rec.TimeType)
	assert.Equal(t, decision.Buy, rec.Decision)
}

func TestRunAsksInOrder(t *testing.T) {
	h, _ := newHistory(t)
	a := &script{answers: map[string]Response{
		"product": {Text: "Book"},
		"price":   {Number: 30},
	}}

	_, err := newOrchestrator(a, h).Run(context.Background())
	require.NoError(t, err)

	var keys []string
	for _, r := range a.asked {
		keys = append(keys, r.Key)
	}
	want := []string{"product", "price"}
	for _, name := range dimension.Names() {
		want = append(want, "need."+name)
	}
	for _, name := range dimension.Names() {
		want = append(want, "value."+name)
	}
	want = append(want, "time_decay", "impulse.1", "impulse.2", "impulse.3", "impulse.4")
	assert.Equal(t, want, keys)

	assert.Equal(t, KindNumber, a.asked[2].Kind)
	assert.Equal(t, 10.0, a.asked[2].Max)
	assert.Equal(t, KindChoice, a.asked[16].Kind)
	assert.Len(t, a.asked[16].Options, 4)
}

func TestRunTimeDecayAndImpulse(t *testing.T) {
	h, _ := newHistory(t)
	answers := map[string]Response{
		"product":    {Text: "Concert ticket"},
		"price":      {Number: 10000},
		"time_decay": {Text: "4"},
		"impulse.1":  {Yes: true},
		"impulse.3":  {Yes: true},
	}
	for _, name := range dimension.Names() {
		answers["need."+name] = Response{Number: 5}
		answers["value."+name] = Response{Number: 5}
	}

	res, err := newOrchestrator(&script{answers: answers}, h).Run(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 8.75, res.Analysis.ROI, 1e-9)
	assert.Equal(t, res.Analysis.ROI*0.3, res.Analysis.AdjustedROI)
	assert.Equal(t, decision.Buy, res.Tier)
	assert.Equal(t, 2, res.Impulse.RedFlags)
	assert.True(t, res.Impulse.Flagged)
	assert.True(t, res.Record.IsImpulse)
	assert.Equal(t, "Instantaneous", res.Record.TimeType)
}

func TestRunEmptyProductAborts(t *testing.T) {
	h, _ := newHistory(t)
	a := &script{answers: map[string]Response{"product": {Text: "   "}}}

	_, err := newOrchestrator(a, h).Run(context.Background())
	assert.ErrorIs(t, err, ErrEmptyProduct)
	assert.True(t, IsAborted(err))
	assert.Equal(t, 0, h.Len())
	assert.Len(t, a.asked, 1)
}

func TestRunNonPositivePriceAborts(t *testing.T) {
	h, _ := newHistory(t)
	a := &script{answers: map[string]Response{"product": {Text: "Pen"}, "price": {Number: 0}}}

	_, err := newOrchestrator(a, h).Run(context.Background())
	assert.ErrorIs(t, err, ErrNonPositivePrice)
	assert.True(t, IsAborted(err))
	assert.Equal(t, 0, h.Len())
}

func TestRunRejectsOutOfRangeAnswer(t *testing.T) {
	h, _ := newHistory(t)
	a := &script{answers: map[string]Response{
		"product":     {Text: "Pen"},
		"price":       {Number: 3},
		"need.Health": {Number: 11},
	}}

	_, err := newOrchestrator(a, h).Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, IsAborted(err))
	assert.Equal(t, 0, h.Len())
}

func TestRunInterruptedWritesNothing(t *testing.T) {
	h, _ := newHistory(t)
	a := &script{
		answers: map[string]Response{"product": {Text: "Pen"}, "price": {Number: 3}},
		failAt:  "impulse.2",
	}

	_, err := newOrchestrator(a, h).Run(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, h.Len())
}

func TestRunSaveFailure(t *testing.T) {
	h, b := newHistory(t)
	b.Err = errors.New("disk full")
	a := &script{answers: map[string]Response{"product": {Text: "Pen"}, "price": {Number: 3}}}

	res, err := newOrchestrator(a, h).Run(context.Background())
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, decision.Reject, res.Tier)
	assert.Equal(t, 0, h.Len())
}

func TestObserverStages(t *testing.T) {
	h, _ := newHistory(t)
	a := &script{answers: map[string]Response{"product": {Text: "Pen"}, "price": {Number: 3}}}

	var stages []Stage
	obs := ObserverFunc(func(ev Event) {
		stages = append(stages, ev.Stage)
		if ev.Stage >= StageMatched {
			assert.NotNil(t, ev.Analysis)
		}
	})

	_, err := newOrchestrator(a, h, WithObserver(obs)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Stage{StageNeeds, StageValues, StageMatched, StageDecided}, stages)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "yes/no", KindYesNo.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
