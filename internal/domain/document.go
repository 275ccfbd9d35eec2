package domain

import "time"

// DefaultMimeType is assigned to ingested artifacts when the caller supplies
// none. Content is never inspected by the gate, so the generic binary type is
// the honest default.
const DefaultMimeType = "application/octet-stream"

// Artifact points at externally stored content. The gate tracks only the
// reference, never the bytes.
type Artifact struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename"`
	StorageRef string    `json:"storage_ref"`
	MimeType   string    `json:"mime_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// Document is one record in the flat document index. Status is always a
// member of the lifecycle state set and changes only through table-approved
// transitions. A document is created with exactly one artifact.
type Document struct {
	ID           string         `json:"id"`
	CaseID       string         `json:"case_id"`
	BranchCode   BranchCode     `json:"branch_code"`
	Status       Status         `json:"status"`
	RegisteredAt time.Time      `json:"registered_at"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Artifacts    []Artifact     `json:"artifacts"`
}

// Clone returns a deep copy of the document, its metadata map, and its
// artifact slice.
func (d Document) Clone() Document {
	out := d
	if d.Metadata != nil {
		out.Metadata = make(map[string]any, len(d.Metadata))
		for k, v := range d.Metadata {
			out.Metadata[k] = v
		}
	}
	out.Artifacts = append([]Artifact(nil), d.Artifacts...)
	return out
}
