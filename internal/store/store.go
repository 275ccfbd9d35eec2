package store

import (
	"context"
	"errors"

	"github.com/docketd/docket/internal/domain"
)

// ErrCaseNotFound is returned when a referenced case identity is absent.
var ErrCaseNotFound = errors.New("case not found")

// ErrDocumentNotFound is returned when a referenced document identity is
// absent (scoped to a case where the lookup is scoped).
var ErrDocumentNotFound = errors.New("document not found")

// Store is the narrow CRUD surface the gate depends on. Implementations must
// return deep copies from every read so callers can never mutate or race on
// shared state, and must keep the trace log append-only.
type Store interface {
	// GetCase returns the case with the given identity, branches present but
	// unenriched (empty document lists). ErrCaseNotFound if absent.
	GetCase(ctx context.Context, caseID string) (domain.Case, error)

	// PutCase inserts or replaces a case. Missing branches are filled with
	// the fixed enumeration.
	PutCase(ctx context.Context, c domain.Case) error

	// GetDocument returns the document matching both identities.
	// ErrDocumentNotFound if no document matches.
	GetDocument(ctx context.Context, caseID, docID string) (domain.Document, error)

	// FindDocument returns the document with the given identity regardless of
	// owning case. ErrDocumentNotFound if absent.
	FindDocument(ctx context.Context, docID string) (domain.Document, error)

	// PutDocument inserts or replaces a document in the flat index.
	PutDocument(ctx context.Context, d domain.Document) error

	// ListDocuments returns all documents owned by a case, in insertion
	// order. An unknown case yields an empty slice, not an error.
	ListDocuments(ctx context.Context, caseID string) ([]domain.Document, error)

	// AppendTrace appends one trace event. Events are immutable once written.
	AppendTrace(ctx context.Context, ev domain.TraceEvent) error

	// ListTrace returns all trace events for a case ordered by timestamp
	// descending, ties broken by insertion order.
	ListTrace(ctx context.Context, caseID string) ([]domain.TraceEvent, error)

	// Close releases underlying resources.
	Close() error
}
