package gate

import (
	"context"
	"errors"

	"github.com/docketd/docket/internal/domain"
	"github.com/docketd/docket/internal/store"
)

// readHandler is a pure query against the store. Read handlers never mutate
// and never fail on well-formed-but-empty results.
type readHandler func(ctx context.Context, payload map[string]any) (any, error)

// readHandlers returns the registered read operations.
func (g *Gate) readHandlers() map[string]readHandler {
	return map[string]readHandler{
		"case_get":    g.readCase,
		"doc_get":     g.readDocument,
		"trace_query": g.readTrace,
	}
}

// readCase returns an enriched copy of the case: every branch's document list
// is recomputed by filtering the flat document index on (case id, branch
// code). The join runs fresh on every read - the index is the source of
// truth for document-to-branch association and is never cached.
func (g *Gate) readCase(ctx context.Context, payload map[string]any) (any, error) {
	req, err := decodeCaseGet(payload)
	if err != nil {
		return nil, err
	}

	c, err := g.store.GetCase(ctx, req.CaseID)
	if errors.Is(err, store.ErrCaseNotFound) {
		return nil, newCaseNotFound(req.CaseID)
	}
	if err != nil {
		return nil, err
	}

	docs, err := g.store.ListDocuments(ctx, req.CaseID)
	if err != nil {
		return nil, err
	}

	byBranch := make(map[domain.BranchCode][]domain.Document, domain.BranchCount)
	for _, d := range docs {
		byBranch[d.BranchCode] = append(byBranch[d.BranchCode], d)
	}
	for i := range c.Branches {
		if matched := byBranch[c.Branches[i].Code]; matched != nil {
			c.Branches[i].Documents = matched
		} else {
			c.Branches[i].Documents = []domain.Document{}
		}
	}

	return c, nil
}

// readDocument returns the document matching both the case and document
// identities.
func (g *Gate) readDocument(ctx context.Context, payload map[string]any) (any, error) {
	req, err := decodeDocGet(payload)
	if err != nil {
		return nil, err
	}

	d, err := g.store.GetDocument(ctx, req.CaseID, req.DocumentID)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return nil, newObjectNotFound(req.DocumentID)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// readTrace returns the case's trace events, most recent first.
func (g *Gate) readTrace(ctx context.Context, payload map[string]any) (any, error) {
	req, err := decodeCaseGet(payload)
	if err != nil {
		return nil, err
	}
	return g.store.ListTrace(ctx, req.CaseID)
}
