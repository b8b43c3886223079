package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Hanzzh/mindmap/pkg/errors"
)

// MemoryStore keeps documents in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]Document)}
}

// Create stores a new document.
func (s *MemoryStore) Create(ctx context.Context, title, outline, treeHash string) (Document, error) {
	doc, err := newDocument(title, outline, treeHash)
	if err != nil {
		return Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return doc, nil
}

// Get fetches a document by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return Document{}, errors.New(errors.ErrCodeDocumentNotFound, "document %s", id)
	}
	return doc, nil
}

// Update replaces a document's content.
func (s *MemoryStore) Update(ctx context.Context, id, title, outline, treeHash string) (Document, error) {
	if err := errors.ValidateDocumentTitle(title); err != nil {
		return Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return Document{}, errors.New(errors.ErrCodeDocumentNotFound, "document %s", id)
	}
	doc.Title = title
	doc.Outline = outline
	doc.TreeHash = treeHash
	doc.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	s.docs[id] = doc
	return doc, nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return errors.New(errors.ErrCodeDocumentNotFound, "document %s", id)
	}
	delete(s.docs, id)
	return nil
}

// List returns all documents, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
