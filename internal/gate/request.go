package gate

import (
	"fmt"

	"github.com/docketd/docket/internal/domain"
)

// Request is the single boundary submission shape: an operation name, an
// open payload map, and an optional case context used to default the payload
// for reads.
type Request struct {
	Operation string         `json:"operation"`
	Payload   map[string]any `json:"payload,omitempty"`
	CaseID    string         `json:"case_id,omitempty"`
}

// Response is the unified result shape. TraceEventID is present only for
// accepted mutations.
type Response struct {
	OK           bool   `json:"ok"`
	Data         any    `json:"data,omitempty"`
	TraceEventID string `json:"trace_event_id,omitempty"`
	Error        *Error `json:"error,omitempty"`
}

// Payloads arrive as open maps at the boundary. Each operation decodes the
// map into a concrete request shape below before any handler sees it, so
// handlers work on checked fields rather than raw maps.

type caseGetRequest struct {
	CaseID string
}

type docGetRequest struct {
	CaseID     string
	DocumentID string
}

type transitionRequest struct {
	DocumentID string
	ToStatus   domain.Status
}

type renameRequest struct {
	DocumentID string
	NewName    string
}

type linkRequest struct {
	From          domain.ObjectRef
	To            domain.ObjectRef
	Justification string
}

type ingestRequest struct {
	CaseID         string
	BranchCode     domain.BranchCode
	SourceFilename string
	StorageRef     string
	MimeType       string
	Status         domain.Status
	Metadata       map[string]any
}

func decodeCaseGet(payload map[string]any) (caseGetRequest, error) {
	return caseGetRequest{CaseID: stringField(payload, "case_id")}, nil
}

func decodeDocGet(payload map[string]any) (docGetRequest, error) {
	return docGetRequest{
		CaseID:     stringField(payload, "case_id"),
		DocumentID: stringField(payload, "document_id"),
	}, nil
}

func decodeTransition(payload map[string]any) (transitionRequest, error) {
	req := transitionRequest{
		DocumentID: stringField(payload, "document_id"),
		ToStatus:   domain.Status(stringField(payload, "to_status")),
	}
	if req.DocumentID == "" {
		return req, newValidationFailed("doc_status_transition requires document_id")
	}
	if req.ToStatus == "" {
		return req, newValidationFailed("doc_status_transition requires to_status")
	}
	return req, nil
}

func decodeRename(payload map[string]any) (renameRequest, error) {
	return renameRequest{
		DocumentID: stringField(payload, "document_id"),
		NewName:    stringField(payload, "new_name"),
	}, nil
}

func decodeLink(payload map[string]any) (linkRequest, error) {
	return linkRequest{
		From:          objectRefField(payload, "from"),
		To:            objectRefField(payload, "to"),
		Justification: stringField(payload, "justification"),
	}, nil
}

func decodeIngest(payload map[string]any, caseContext string) (ingestRequest, error) {
	req := ingestRequest{
		CaseID:         stringField(payload, "case_id"),
		BranchCode:     domain.BranchCode(stringField(payload, "branch_code")),
		SourceFilename: stringField(payload, "source_filename"),
		StorageRef:     stringField(payload, "storage_ref"),
		MimeType:       stringField(payload, "mime_type"),
		Status:         domain.Status(stringField(payload, "status")),
		Metadata:       mapField(payload, "metadata"),
	}
	if req.CaseID == "" {
		req.CaseID = caseContext
	}
	if req.CaseID == "" {
		return req, newValidationFailed("doc_ingest requires case_id")
	}
	if !domain.ValidBranchCode(req.BranchCode) {
		return req, newValidationFailed(fmt.Sprintf("unknown branch code %q", req.BranchCode))
	}
	if req.Status == "" {
		req.Status = domain.InitialStatus
	}
	if !domain.ValidStatus(req.Status) {
		return req, newValidationFailed(fmt.Sprintf("unknown status %q", req.Status))
	}
	if req.MimeType == "" {
		req.MimeType = domain.DefaultMimeType
	}
	return req, nil
}

// stringField returns payload[key] when it is a string, "" otherwise.
func stringField(payload map[string]any, key string) string {
	if s, ok := payload[key].(string); ok {
		return s
	}
	return ""
}

// mapField returns payload[key] when it is a map, nil otherwise.
func mapField(payload map[string]any, key string) map[string]any {
	if m, ok := payload[key].(map[string]any); ok {
		return m
	}
	return nil
}

// objectRefField decodes a nested {object_type, object_id} map.
func objectRefField(payload map[string]any, key string) domain.ObjectRef {
	m := mapField(payload, key)
	if m == nil {
		return domain.ObjectRef{}
	}
	return domain.ObjectRef{
		Type: stringField(m, "object_type"),
		ID:   stringField(m, "object_id"),
	}
}

// copyPayload takes a shallow copy for the trace detail so later caller
// mutation of the submitted map cannot rewrite history.
func copyPayload(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}
