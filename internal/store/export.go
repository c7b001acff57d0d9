package store

import (
	"context"
	"fmt"

	"github.com/rcliao/nvr/internal/model"
)

// Export returns every record in append order.
func (h *History) Export() []model.Record {
	out := make([]model.Record, len(h.records))
	copy(out, h.records)
	return out
}

// Import appends records in order with a single save. On failure nothing is
// kept.
func (h *History) Import(ctx context.Context, records []model.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	n := len(h.records)
	h.records = append(h.records, records...)
	if err := h.backend.Save(ctx, h.records); err != nil {
		h.records = h.records[:n]
		return 0, fmt.Errorf("save history: %w", err)
	}
	h.logger.Debug("records imported", "count", len(records), "records", len(h.records))
	return len(records), nil
}
