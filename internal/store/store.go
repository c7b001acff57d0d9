// Package store keeps the ordered history of decision records and persists
// it through a pluggable backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rcliao/nvr/internal/model"
)

// ErrNotFound is returned when a display index does not name a record.
var ErrNotFound = errors.New("record not found")

// Backend loads and persists the full record sequence.
type Backend interface {
	// Load returns every saved record in append order.
	Load(ctx context.Context) ([]model.Record, error)

	// Save persists records so that a later Load returns exactly them.
	Save(ctx context.Context, records []model.Record) error

	// Location describes where the backend keeps its data.
	Location() string

	// Close releases backend resources.
	Close() error
}

// History is the in-memory record sequence, loaded once and saved in full
// after every change.
type History struct {
	backend Backend
	records []model.Record
	logger  *slog.Logger
}

// Open loads the history from b. A load failure never propagates: the
// history starts empty and the failure is logged.
func Open(ctx context.Context, b Backend, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	h := &History{backend: b, logger: logger}

	records, err := b.Load(ctx)
	if err != nil {
		logger.Warn("history unreadable, starting empty", "location", b.Location(), "error", err)
		records = nil
	}
	h.records = records
	logger.Debug("history loaded", "location", b.Location(), "records", len(records))
	return h
}

// Len returns the number of records.
func (h *History) Len() int {
	return len(h.records)
}

// Location is the backend location, for display.
func (h *History) Location() string {
	return h.backend.Location()
}

// Append adds r to the end of the history and saves. If the save fails the
// record is dropped again so memory matches what is on disk.
func (h *History) Append(ctx context.Context, r model.Record) error {
	h.records = append(h.records, r)
	if err := h.backend.Save(ctx, h.records); err != nil {
		h.records = h.records[:len(h.records)-1]
		return fmt.Errorf("save history: %w", err)
	}
	h.logger.Debug("record appended", "product", r.Product, "records", len(h.records))
	return nil
}

// Recent returns the last n records in chronological order, most recent
// last. n larger than the history returns everything.
func (h *History) Recent(n int) []model.Record {
	if n <= 0 || len(h.records) == 0 {
		return []model.Record{}
	}
	if n > len(h.records) {
		n = len(h.records)
	}
	out := make([]model.Record, n)
	copy(out, h.records[len(h.records)-n:])
	return out
}

// ByRecency resolves a 1-based most-recent-first display index: 1 is the
// newest record, Len() the oldest.
func (h *History) ByRecency(i int) (model.Record, error) {
	if i < 1 || i > len(h.records) {
		return model.Record{}, fmt.Errorf("%w: #%d (have %d)", ErrNotFound, i, len(h.records))
	}
	return h.records[len(h.records)-i], nil
}

// Close closes the backend.
func (h *History) Close() error {
	return h.backend.Close()
}
