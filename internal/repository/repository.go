// Package repository holds the in-memory prompt collection and flushes every
// change to a store.Store.
//
// Records are addressed by display ID: the 1-based position in the current
// collection. IDs are not stable; deleting a record shifts every later ID down
// by one.
package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackzampolin/promptgen/internal/prompt"
	"github.com/jackzampolin/promptgen/internal/store"
)

// Placeholder is listed in place of a missing base question.
const Placeholder = "N/A"

var (
	// ErrOutOfRange is returned when a display ID does not name a record.
	ErrOutOfRange = errors.New("invalid ID selected")

	// ErrNotANumber is returned when a display ID is not an integer.
	ErrNotANumber = errors.New("please enter a valid number")

	// ErrUnknownField is returned by Update for a field name that is not
	// part of a prompt record.
	ErrUnknownField = errors.New("unknown prompt field")
)

// Repository is the ordered prompt collection. It is not safe for concurrent use.
type Repository struct {
	store   store.Store
	records []prompt.Record
	logger  *slog.Logger
}

// Open loads the collection from s. A missing store file is not fatal: the
// repository starts empty and the returned error wraps store.ErrNotFound.
// Any other load error is returned with a nil repository.
func Open(ctx context.Context, s store.Store, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.Default()
	}

	records, err := s.Load(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	r := &Repository{store: s, records: records, logger: logger}
	if r.records == nil {
		r.records = []prompt.Record{}
	}
	return r, err
}

// Len returns the number of records.
func (r *Repository) Len() int {
	return len(r.records)
}

// Path names the backing store.
func (r *Repository) Path() string {
	return r.store.Path()
}

// Add appends rec and saves.
func (r *Repository) Add(ctx context.Context, rec prompt.Record) error {
	r.records = append(r.records, rec.Clone())
	r.logger.Info("prompt added", "id", len(r.records))
	return r.save(ctx)
}

// List yields (display ID, base question) for each record in order. The base
// question is Placeholder when absent. The sequence reads the collection at
// iteration time and can be ranged over any number of times.
func (r *Repository) List() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, rec := range r.records {
			summary := rec.BaseQuestion
			if summary == "" {
				summary = Placeholder
			}
			if !yield(i+1, summary) {
				return
			}
		}
	}
}

// ParseID parses user input as a display ID. It does not check the range.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, raw)
	}
	return id, nil
}

// Get returns a copy of the record at display ID id.
func (r *Repository) Get(id int) (prompt.Record, error) {
	idx, err := r.index(id)
	if err != nil {
		return prompt.Record{}, err
	}
	return r.records[idx].Clone(), nil
}

// Lookup parses raw as a display ID and returns the ID and its record.
func (r *Repository) Lookup(raw string) (int, prompt.Record, error) {
	id, err := ParseID(raw)
	if err != nil {
		return 0, prompt.Record{}, err
	}
	rec, err := r.Get(id)
	if err != nil {
		return 0, prompt.Record{}, err
	}
	return id, rec, nil
}

// Update overwrites fields of the record at id. Blank values, and fields
// missing from updates, keep their current value. The collection is saved
// even when nothing changed. An unknown field name rejects the whole update.
func (r *Repository) Update(ctx context.Context, id int, updates map[prompt.Field]string) error {
	idx, err := r.index(id)
	if err != nil {
		return err
	}
	for f := range updates {
		if !f.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
	}

	rec := &r.records[idx]
	var changed []string
	for _, f := range prompt.AllFields {
		value, ok := updates[f]
		if !ok {
			continue
		}
		if rec.Set(f, value) {
			changed = append(changed, string(f))
		}
	}

	r.logger.Info("prompt updated", "id", id, "fields", changed)
	return r.save(ctx)
}

// Delete removes the record at id and saves. Callers confirm with the user first.
func (r *Repository) Delete(ctx context.Context, id int) error {
	idx, err := r.index(id)
	if err != nil {
		return err
	}

	r.records = append(r.records[:idx], r.records[idx+1:]...)
	r.logger.Info("prompt deleted", "id", id, "remaining", len(r.records))
	return r.save(ctx)
}

func (r *Repository) index(id int) (int, error) {
	if id < 1 || id > len(r.records) {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, id)
	}
	return id - 1, nil
}

func (r *Repository) save(ctx context.Context) error {
	if err := r.store.Save(ctx, r.records); err != nil {
		return fmt.Errorf("failed to save prompts: %w", err)
	}
	return nil
}
