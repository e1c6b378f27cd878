// Package storage provides a hierarchical document store: collections hold
// documents keyed by ID, and documents may own sub-collections. Paths
// alternate collection and document segments, e.g.
// "workouts/2025-09-16/entries/<id>".
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidPath = errors.New("invalid document path")
)

// Fields is the content of a single document.
type Fields map[string]any

// Document is a document enumerated from a collection.
type Document struct {
	ID     string
	Fields Fields
}

// Store defines the operations every document backend provides
type Store interface {
	// Get returns the fields of the document at path, or ErrNotFound
	Get(ctx context.Context, path string) (Fields, error)

	// List returns the documents directly under a collection path,
	// ordered by document ID. Sub-collections are not descended into.
	List(ctx context.Context, collection string) ([]Document, error)

	// Set creates or fully replaces the document at path
	Set(ctx context.Context, path string, fields Fields) error

	// Delete removes the document at path. Missing documents are not an error.
	Delete(ctx context.Context, path string) error

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error
}

// Path joins segments into a document or collection path.
func Path(segments ...string) (string, error) {
	if len(segments) == 0 {
		return "", ErrInvalidPath
	}
	for _, s := range segments {
		if s == "" || strings.Contains(s, "/") {
			return "", fmt.Errorf("%w: segment %q", ErrInvalidPath, s)
		}
	}
	return strings.Join(segments, "/"), nil
}

// split returns the parent collection and ID of a document path.
func split(path string) (parent, id string, err error) {
	i := strings.LastIndexByte(path, '/')
	if i <= 0 || i == len(path)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return path[:i], path[i+1:], nil
}

// clone copies fields so callers never share maps with a backend.
func clone(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
