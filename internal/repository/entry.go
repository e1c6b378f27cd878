package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mishagordeev/workouts/internal/model"
	"github.com/mishagordeev/workouts/internal/storage"
)

const (
	workoutsCollection = "workouts"
	entriesCollection  = "entries"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryRepository stores entries at workouts/{date}/entries/{id}
type EntryRepository interface {
	Entries(ctx context.Context, date string) ([]*model.Entry, error)
	Entry(ctx context.Context, date, id string) (*model.Entry, error)
	Save(ctx context.Context, date string, entry *model.Entry) error
	Delete(ctx context.Context, date, id string) error
}

type entryRepository struct {
	store storage.Store
}

func NewEntryRepository(store storage.Store) EntryRepository {
	return &entryRepository{store: store}
}

// Entries returns the entries of a day in store enumeration order
func (r *entryRepository) Entries(ctx context.Context, date string) ([]*model.Entry, error) {
	collection, err := storage.Path(workoutsCollection, date, entriesCollection)
	if err != nil {
		return nil, err
	}

	docs, err := r.store.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, toEntry(doc.ID, doc.Fields))
	}

	return entries, nil
}

func (r *entryRepository) Entry(ctx context.Context, date, id string) (*model.Entry, error) {
	path, err := entryPath(date, id)
	if err != nil {
		return nil, err
	}

	fields, err := r.store.Get(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return toEntry(id, fields), nil
}

// Save writes every field of the entry except its ID, which is the document key
func (r *entryRepository) Save(ctx context.Context, date string, entry *model.Entry) error {
	path, err := entryPath(date, entry.ID)
	if err != nil {
		return err
	}

	return r.store.Set(ctx, path, toFields(entry))
}

func (r *entryRepository) Delete(ctx context.Context, date, id string) error {
	path, err := entryPath(date, id)
	if err != nil {
		return err
	}

	return r.store.Delete(ctx, path)
}

func entryPath(date, id string) (string, error) {
	path, err := storage.Path(workoutsCollection, date, entriesCollection, id)
	if err != nil {
		return "", fmt.Errorf("entry path: %w", err)
	}
	return path, nil
}

func toFields(e *model.Entry) storage.Fields {
	fields := storage.Fields{
		"name":   e.Name,
		"weight": e.Weight,
		"reps":   e.Reps,
		"sets":   e.Sets,
	}
	if e.Index != nil {
		fields["index"] = *e.Index
	}
	return fields
}

func toEntry(id string, f storage.Fields) *model.Entry {
	e := &model.Entry{ID: id}
	e.Name, _ = f["name"].(string)
	e.Weight, _ = toFloat(f["weight"])
	e.Reps, _ = toFloat(f["reps"])
	e.Sets, _ = toFloat(f["sets"])
	if v, ok := toFloat(f["index"]); ok {
		index := int(math.Round(v))
		e.Index = &index
	}
	return e
}

// toFloat accepts the numeric types backends hand back: native ints from
// memory, float64 from JSON, json.Number when decoding with UseNumber.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
