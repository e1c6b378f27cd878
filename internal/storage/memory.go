package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps documents in process memory. State is lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]Fields // parent collection -> id -> fields
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]Fields)}
}

func (s *MemoryStore) Get(_ context.Context, path string) (Fields, error) {
	parent, id, err := split(path)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.docs[parent][id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(f), nil
}

func (s *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	children := s.docs[collection]
	ids := make([]string, 0, len(children))
	for id := range children {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, Document{ID: id, Fields: clone(children[id])})
	}
	return docs, nil
}

func (s *MemoryStore) Set(_ context.Context, path string, fields Fields) error {
	parent, id, err := split(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs[parent] == nil {
		s.docs[parent] = make(map[string]Fields)
	}
	s.docs[parent][id] = clone(fields)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, path string) error {
	parent, id, err := split(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs[parent], id)
	if len(s.docs[parent]) == 0 {
		delete(s.docs, parent)
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
