package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/docketd/docket/internal/domain"
)

// GetCase returns one case with the fixed branch enumeration attached and
// empty document lists. Enrichment is the gate's job, not the store's.
func (s *SQLite) GetCase(ctx context.Context, caseID string) (domain.Case, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, jurisdiction, confidentiality, created_at, parties, links
		FROM cases
		WHERE id = ?
	`, caseID)

	var (
		c            domain.Case
		conf         string
		createdNanos int64
		partiesJSON  string
		linksJSON    string
	)
	err := row.Scan(&c.ID, &c.Title, &c.Jurisdiction, &conf, &createdNanos, &partiesJSON, &linksJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Case{}, ErrCaseNotFound
	}
	if err != nil {
		return domain.Case{}, fmt.Errorf("get case: %w", err)
	}

	c.Confidentiality = domain.Confidentiality(conf)
	c.CreatedAt = time.Unix(0, createdNanos).UTC()
	c.Branches = domain.FixedBranches()

	if c.Parties, err = unmarshalParties(partiesJSON); err != nil {
		return domain.Case{}, fmt.Errorf("get case: %w", err)
	}
	if c.Links, err = unmarshalLinks(linksJSON); err != nil {
		return domain.Case{}, fmt.Errorf("get case: %w", err)
	}

	return c, nil
}

// GetDocument returns the document matching both identities.
func (s *SQLite) GetDocument(ctx context.Context, caseID, docID string) (domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, case_id, branch_code, status, registered_at, metadata, artifacts
		FROM documents
		WHERE id = ? AND case_id = ?
	`, docID, caseID)

	return scanDocumentRow(row)
}

// FindDocument returns the document with the given identity regardless of
// owning case.
func (s *SQLite) FindDocument(ctx context.Context, docID string) (domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, case_id, branch_code, status, registered_at, metadata, artifacts
		FROM documents
		WHERE id = ?
	`, docID)

	return scanDocumentRow(row)
}

// ListDocuments returns all documents owned by a case in insertion order.
// Returns an empty slice (not nil) if the case owns no documents.
func (s *SQLite) ListDocuments(ctx context.Context, caseID string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, case_id, branch_code, status, registered_at, metadata, artifacts
		FROM documents
		WHERE case_id = ?
		ORDER BY ins ASC
	`, caseID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// ListTrace returns all trace events for a case ordered by timestamp
// descending, insertion order (seq) breaking ties.
func (s *SQLite) ListTrace(ctx context.Context, caseID string) ([]domain.TraceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, case_id, seq, ts, actor, type, objects, detail
		FROM trace_events
		WHERE case_id = ?
		ORDER BY ts DESC, seq ASC
	`, caseID)
	if err != nil {
		return nil, fmt.Errorf("query trace events: %w", err)
	}
	defer rows.Close()

	events := []domain.TraceEvent{}
	for rows.Next() {
		var (
			ev          domain.TraceEvent
			tsNanos     int64
			objectsJSON string
			detailJSON  string
		)
		if err := rows.Scan(&ev.ID, &ev.CaseID, &ev.Seq, &tsNanos, &ev.Actor, &ev.Type, &objectsJSON, &detailJSON); err != nil {
			return nil, fmt.Errorf("scan trace event: %w", err)
		}
		ev.Timestamp = time.Unix(0, tsNanos).UTC()
		if ev.Objects, err = unmarshalObjects(objectsJSON); err != nil {
			return nil, err
		}
		if ev.Detail, err = unmarshalDetail(detailJSON); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trace events: %w", err)
	}

	return events, nil
}

// scanner abstracts *sql.Row and *sql.Rows for document scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocumentRow(row *sql.Row) (domain.Document, error) {
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Document{}, ErrDocumentNotFound
	}
	return d, err
}

func scanDocument(s scanner) (domain.Document, error) {
	var (
		d               domain.Document
		branch          string
		status          string
		registeredNanos int64
		metadataJSON    string
		artifactsJSON   string
	)
	err := s.Scan(&d.ID, &d.CaseID, &branch, &status, &registeredNanos, &metadataJSON, &artifactsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Document{}, err
		}
		return domain.Document{}, fmt.Errorf("scan document: %w", err)
	}

	d.BranchCode = domain.BranchCode(branch)
	d.Status = domain.Status(status)
	d.RegisteredAt = time.Unix(0, registeredNanos).UTC()

	if d.Metadata, err = unmarshalMetadata(metadataJSON); err != nil {
		return domain.Document{}, err
	}
	if d.Artifacts, err = unmarshalArtifacts(artifactsJSON); err != nil {
		return domain.Document{}, err
	}

	return d, nil
}
