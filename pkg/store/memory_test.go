package store

import (
	"context"
	"testing"

	"github.com/Hanzzh/mindmap/pkg/errors"
)

const sampleOutline = "Plan\n\t- Research\n\t- Build\n"

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	doc, err := s.Create(ctx, "Plan", sampleOutline, "hash1")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if doc.ID == "" {
		t.Fatal("Create should assign an ID")
	}
	if err := errors.ValidateDocumentID(doc.ID); err != nil {
		t.Errorf("generated ID should be a UUID: %v", err)
	}
	if doc.CreatedAt.IsZero() || doc.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	got, err := s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Outline != sampleOutline {
		t.Errorf("Get outline = %q, want %q", got.Outline, sampleOutline)
	}

	updated, err := s.Update(ctx, doc.ID, "Plan v2", sampleOutline+"\t- Ship\n", "hash2")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "Plan v2" {
		t.Errorf("Update title = %q, want %q", updated.Title, "Plan v2")
	}
	if updated.TreeHash != "hash2" {
		t.Errorf("Update tree hash = %q, want %q", updated.TreeHash, "hash2")
	}
	if updated.UpdatedAt.Before(doc.UpdatedAt) {
		t.Error("UpdatedAt should not go backward")
	}

	if err := s.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, doc.ID); !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		t.Errorf("Get after Delete error = %v, want DOCUMENT_NOT_FOUND", err)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		t.Errorf("Get error = %v, want DOCUMENT_NOT_FOUND", err)
	}
	if _, err := s.Update(ctx, "missing", "t", "o", "h"); !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		t.Errorf("Update error = %v, want DOCUMENT_NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		t.Errorf("Delete error = %v, want DOCUMENT_NOT_FOUND", err)
	}
}

func TestMemoryStoreRejectsBadTitle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Create(ctx, "", sampleOutline, "h"); err == nil {
		t.Error("Create with empty title should fail")
	}

	doc, err := s.Create(ctx, "ok", sampleOutline, "h")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := s.Update(ctx, doc.ID, "  ", sampleOutline, "h"); err == nil {
		t.Error("Update with blank title should fail")
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first, _ := s.Create(ctx, "first", sampleOutline, "h1")
	second, _ := s.Create(ctx, "second", sampleOutline, "h2")

	// Touch the first document so it becomes the most recent.
	if _, err := s.Update(ctx, first.ID, "first touched", sampleOutline, "h3"); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("List count = %d, want 2", len(docs))
	}
	if docs[0].ID != first.ID && docs[0].UpdatedAt.Equal(docs[1].UpdatedAt) {
		// Equal timestamps fall back to ID order; both are acceptable as
		// long as both documents are present.
		return
	}
	if docs[0].ID != first.ID {
		t.Errorf("List[0] = %q, want most recently updated %q", docs[0].Title, "first touched")
	}
	if docs[1].ID != second.ID {
		t.Errorf("List[1] = %q, want %q", docs[1].Title, "second")
	}
}
