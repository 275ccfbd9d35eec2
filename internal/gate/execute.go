package gate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/docketd/docket/internal/domain"
	"github.com/docketd/docket/internal/store"
)

// execute applies an accepted write operation to the store and builds its
// result. Write names without a specific branch fall back to echoing the
// payload: a deliberate generic acknowledgment, not a silent failure - the
// trace append still fires for them.
func (g *Gate) execute(ctx context.Context, operation string, payload map[string]any, caseContext string) (any, error) {
	switch operation {
	case "doc_ingest":
		return g.executeIngest(ctx, payload, caseContext)
	case "doc_status_transition":
		return g.executeTransition(ctx, payload)
	default:
		return copyPayload(payload), nil
	}
}

// executeIngest creates a new document with exactly one artifact and inserts
// it into the flat index.
func (g *Gate) executeIngest(ctx context.Context, payload map[string]any, caseContext string) (any, error) {
	req, err := decodeIngest(payload, caseContext)
	if err != nil {
		return nil, err
	}

	now := g.now()
	doc := domain.Document{
		ID:           g.ids.NewID(),
		CaseID:       req.CaseID,
		BranchCode:   req.BranchCode,
		Status:       req.Status,
		RegisteredAt: now,
		Metadata:     req.Metadata,
	}
	doc.Artifacts = []domain.Artifact{{
		ID:         g.ids.NewID(),
		DocumentID: doc.ID,
		Filename:   req.SourceFilename,
		StorageRef: req.StorageRef,
		MimeType:   req.MimeType,
		CreatedAt:  now,
	}}

	if err := g.store.PutDocument(ctx, doc); err != nil {
		return nil, err
	}

	slog.Info("document ingested",
		"document_id", doc.ID,
		"case_id", doc.CaseID,
		"branch_code", doc.BranchCode,
		"status", doc.Status,
	)

	return doc, nil
}

// executeTransition sets the located document's status in place. Legality was
// already checked by the validator under the same per-document lock, so the
// state read here is the state the validator approved.
func (g *Gate) executeTransition(ctx context.Context, payload map[string]any) (any, error) {
	req, err := decodeTransition(payload)
	if err != nil {
		return nil, err
	}

	doc, err := g.store.FindDocument(ctx, req.DocumentID)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return nil, newObjectNotFound(req.DocumentID)
	}
	if err != nil {
		return nil, err
	}

	from := doc.Status
	doc.Status = req.ToStatus
	if err := g.store.PutDocument(ctx, doc); err != nil {
		return nil, err
	}

	slog.Info("document status changed",
		"document_id", doc.ID,
		"case_id", doc.CaseID,
		"from_status", from,
		"to_status", doc.Status,
	)

	return doc, nil
}
