// Package store persists mindmap documents for the hosted service.
//
// A document is an outline plus bookkeeping; layouts and artifacts are
// derived data and live in the cache, not the store. Two backends ship:
// an in-memory store for tests and single-process use, and MongoDB for
// the service.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hanzzh/mindmap/pkg/errors"
)

// Document is a stored mindmap.
type Document struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Outline   string    `json:"outline" bson:"outline"`
	TreeHash  string    `json:"tree_hash" bson:"tree_hash"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the persistence interface for documents.
type Store interface {
	// Create stores a new document and returns it with ID and timestamps set.
	Create(ctx context.Context, title, outline, treeHash string) (Document, error)

	// Get fetches a document by ID. Returns ErrCodeDocumentNotFound if absent.
	Get(ctx context.Context, id string) (Document, error)

	// Update replaces a document's outline and title.
	Update(ctx context.Context, id, title, outline, treeHash string) (Document, error)

	// Delete removes a document. Deleting a missing document is an error.
	Delete(ctx context.Context, id string) error

	// List returns all documents, newest first.
	List(ctx context.Context) ([]Document, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// newDocument fills the generated fields shared by every backend.
func newDocument(title, outline, treeHash string) (Document, error) {
	if err := errors.ValidateDocumentTitle(title); err != nil {
		return Document{}, err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	return Document{
		ID:        uuid.NewString(),
		Title:     title,
		Outline:   outline,
		TreeHash:  treeHash,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
