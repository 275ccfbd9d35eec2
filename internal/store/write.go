package store

import (
	"context"
	"fmt"

	"github.com/docketd/docket/internal/domain"
)

// PutCase inserts or replaces a case row. Branches are not persisted: the
// fixed enumeration is reattached on read.
func (s *SQLite) PutCase(ctx context.Context, c domain.Case) error {
	partiesJSON, err := marshalParties(c.Parties)
	if err != nil {
		return fmt.Errorf("put case: %w", err)
	}

	linksJSON, err := marshalLinks(c.Links)
	if err != nil {
		return fmt.Errorf("put case: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cases
		(id, title, jurisdiction, confidentiality, created_at, parties, links)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			jurisdiction = excluded.jurisdiction,
			confidentiality = excluded.confidentiality,
			created_at = excluded.created_at,
			parties = excluded.parties,
			links = excluded.links
	`,
		c.ID,
		c.Title,
		c.Jurisdiction,
		string(c.Confidentiality),
		c.CreatedAt.UnixNano(),
		partiesJSON,
		linksJSON,
	)
	if err != nil {
		return fmt.Errorf("put case: %w", err)
	}

	return nil
}

// PutDocument inserts or replaces a document row. The insertion-order column
// is assigned on first insert and preserved on replacement so listing order
// stays stable across status updates.
func (s *SQLite) PutDocument(ctx context.Context, d domain.Document) error {
	metadataJSON, err := marshalMetadata(d.Metadata)
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}

	artifactsJSON, err := marshalArtifacts(d.Artifacts)
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents
		(id, case_id, branch_code, status, registered_at, metadata, artifacts, ins)
		VALUES (?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(ins), 0) + 1 FROM documents))
		ON CONFLICT(id) DO UPDATE SET
			case_id = excluded.case_id,
			branch_code = excluded.branch_code,
			status = excluded.status,
			registered_at = excluded.registered_at,
			metadata = excluded.metadata,
			artifacts = excluded.artifacts
	`,
		d.ID,
		d.CaseID,
		string(d.BranchCode),
		string(d.Status),
		d.RegisteredAt.UnixNano(),
		metadataJSON,
		artifactsJSON,
	)
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}

	return nil
}

// AppendTrace inserts one trace event row. Uses ON CONFLICT(id) DO NOTHING
// for idempotency - an event identity is written at most once and never
// updated afterwards.
func (s *SQLite) AppendTrace(ctx context.Context, ev domain.TraceEvent) error {
	objectsJSON, err := marshalObjects(ev.Objects)
	if err != nil {
		return fmt.Errorf("append trace: %w", err)
	}

	detailJSON, err := marshalDetail(ev.Detail)
	if err != nil {
		return fmt.Errorf("append trace: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trace_events
		(id, case_id, seq, ts, actor, type, objects, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		ev.ID,
		ev.CaseID,
		ev.Seq,
		ev.Timestamp.UnixNano(),
		ev.Actor,
		ev.Type,
		objectsJSON,
		detailJSON,
	)
	if err != nil {
		return fmt.Errorf("append trace: %w", err)
	}

	return nil
}
