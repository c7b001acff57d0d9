package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcliao/nvr/internal/model"
)

// JSONBackend keeps the history as one indented JSON array in a flat file.
type JSONBackend struct {
	path string
}

// NewJSONBackend returns a backend for the file at path. The file and its
// directory are created on first save.
func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{path: path}
}

func (b *JSONBackend) Location() string { return b.path }

// Load reads the file. A missing file is an empty history, not an error.
func (b *JSONBackend) Load(ctx context.Context) ([]model.Record, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return records, nil
}

// Save overwrites the file with records. The new content is written to a
// temporary file and renamed into place, so an interrupted save leaves the
// previous file intact.
func (b *JSONBackend) Save(ctx context.Context, records []model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []model.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

func (b *JSONBackend) Close() error { return nil }

// MemoryBackend keeps records only in memory. Useful for tests and dry runs.
type MemoryBackend struct {
	records []model.Record
	// Err, when set, is returned by every Save.
	Err error
}

// NewMemoryBackend returns a backend seeded with records.
func NewMemoryBackend(records ...model.Record) *MemoryBackend {
	return &MemoryBackend{records: append([]model.Record(nil), records...)}
}

func (b *MemoryBackend) Location() string { return "memory" }

func (b *MemoryBackend) Load(ctx context.Context) ([]model.Record, error) {
	return append([]model.Record(nil), b.records...), nil
}

func (b *MemoryBackend) Save(ctx context.Context, records []model.Record) error {
	if b.Err != nil {
		return b.Err
	}
	b.records = append(b.records[:0], records...)
	return nil
}

func (b *MemoryBackend) Close() error { return nil }
