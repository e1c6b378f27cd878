package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	errMissing := errors.New("document not found")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid request", InvalidRequest("date parameter required (YYYY-MM-DD)"), http.StatusBadRequest, "date parameter required (YYYY-MM-DD)"},
		{"not found", NotFound("Entry not found", errMissing), http.StatusNotFound, "Entry not found"},
		{"wrapped not found", fmt.Errorf("delete: %w", NotFound("Entry not found", errMissing)), http.StatusNotFound, "Entry not found"},
		{"upstream", errors.New("connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, StatusCode(tt.err))
			assert.Equal(t, tt.wantMsg, Message(tt.err))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("document not found")
	err := NotFound("Entry not found", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Entry not found: document not found", err.Error())
	assert.Equal(t, "bad", InvalidRequest("bad").Error())
}
