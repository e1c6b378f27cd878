package model

// Entry is one logged exercise within a workout day. The day itself is
// implied by where the entry is stored and is not part of the record.
type Entry struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
	Sets   float64 `json:"sets"`
	// Index orders entries within a day. Nil only for documents that were
	// written without one.
	Index *int `json:"index,omitempty"`
}

// IndexOr returns the entry index, or def when the entry has none
func (e *Entry) IndexOr(def int) int {
	if e.Index == nil {
		return def
	}
	return *e.Index
}

// CreateEntryRequest is the body of POST /api/entries.
// Numeric fields are pointers so that 0 is accepted and only absence is rejected.
type CreateEntryRequest struct {
	Date   string   `json:"date" validate:"required"`
	Name   string   `json:"name" validate:"required"`
	Weight *float64 `json:"weight" validate:"required"`
	Reps   *float64 `json:"reps" validate:"required"`
	Sets   *float64 `json:"sets" validate:"required"`
}

// UpdateEntryRequest is the body of PUT /api/entries/{date}/{entry_id}.
type UpdateEntryRequest struct {
	Name   string   `json:"name" validate:"required"`
	Weight *float64 `json:"weight" validate:"required"`
	Reps   *float64 `json:"reps" validate:"required"`
	Sets   *float64 `json:"sets" validate:"required"`
}

// DeleteResult confirms a deletion.
type DeleteResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}
