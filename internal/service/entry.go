package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/mishagordeev/workouts/internal/apperror"
	"github.com/mishagordeev/workouts/internal/model"
	"github.com/mishagordeev/workouts/internal/repository"
)

const msgEntryNotFound = "Entry not found"

type EntryService struct {
	repo  repository.EntryRepository
	newID func() string
}

func NewEntryService(repo repository.EntryRepository) *EntryService {
	return &EntryService{
		repo:  repo,
		newID: func() string { return uuid.New().String() },
	}
}

// List returns the entries of a day ordered by index. Entries without an
// index come first; equal indexes keep store order.
func (s *EntryService) List(ctx context.Context, date string) ([]*model.Entry, error) {
	entries, err := s.repo.Entries(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Index == nil || b.Index == nil {
			return a.Index == nil && b.Index != nil
		}
		return *a.Index < *b.Index
	})

	return entries, nil
}

// Create appends an entry to its day with index max(existing)+1.
// The scan and the write are separate store calls; concurrent creates for
// the same day may receive the same index.
func (s *EntryService) Create(ctx context.Context, req *model.CreateEntryRequest) (*model.Entry, error) {
	existing, err := s.repo.Entries(ctx, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	maxIndex := -1
	for _, e := range existing {
		if e.Index != nil && *e.Index > maxIndex {
			maxIndex = *e.Index
		}
	}
	index := maxIndex + 1

	entry := &model.Entry{
		ID:     s.newID(),
		Name:   req.Name,
		Weight: *req.Weight,
		Reps:   *req.Reps,
		Sets:   *req.Sets,
		Index:  &index,
	}

	err = s.repo.Save(ctx, req.Date, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	slog.Info("entry created", "date", req.Date, "entry_id", entry.ID, "index", index)
	return entry, nil
}

// Update replaces name, weight, reps and sets of an entry. The index is
// carried over from the stored entry (0 if it has none).
func (s *EntryService) Update(ctx context.Context, date, id string, req *model.UpdateEntryRequest) (*model.Entry, error) {
	current, err := s.entry(ctx, date, id)
	if err != nil {
		return nil, err
	}

	index := current.IndexOr(0)
	entry := &model.Entry{
		ID:     id,
		Name:   req.Name,
		Weight: *req.Weight,
		Reps:   *req.Reps,
		Sets:   *req.Sets,
		Index:  &index,
	}

	err = s.repo.Save(ctx, date, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	slog.Info("entry updated", "date", date, "entry_id", id, "index", index)
	return entry, nil
}

// Delete removes an entry. Remaining entries keep their indexes.
func (s *EntryService) Delete(ctx context.Context, date, id string) (*model.DeleteResult, error) {
	_, err := s.entry(ctx, date, id)
	if err != nil {
		return nil, err
	}

	err = s.repo.Delete(ctx, date, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete entry: %w", err)
	}

	slog.Info("entry deleted", "date", date, "entry_id", id)
	return &model.DeleteResult{Success: true, ID: id}, nil
}

func (s *EntryService) entry(ctx context.Context, date, id string) (*model.Entry, error) {
	entry, err := s.repo.Entry(ctx, date, id)
	if errors.Is(err, repository.ErrEntryNotFound) {
		return nil, apperror.NotFound(msgEntryNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}
