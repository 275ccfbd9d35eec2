package domain

import "time"

// SystemCaseID is the sentinel case identity stamped on trace events that are
// not tied to any case (system-level mutations, provisioning).
const SystemCaseID = "SYSTEM"

// GateActor is the fixed actor tag the gate writes on every trace event it
// appends.
const GateActor = "gate"

// TraceDetail carries the audit payload of one trace event: a human summary,
// the originating request id for correlation, and a copy of the input payload.
type TraceDetail struct {
	Summary   string         `json:"summary"`
	RequestID string         `json:"request_id"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// TraceEvent is one append-only audit record. Events are never mutated or
// deleted. Seq is a logical sequence number used to break timestamp ties
// deterministically; query ordering is timestamp descending, insertion order
// preserved among equal timestamps.
type TraceEvent struct {
	ID        string      `json:"id"`
	CaseID    string      `json:"case_id"`
	Seq       int64       `json:"seq"`
	Timestamp time.Time   `json:"timestamp"`
	Actor     string      `json:"actor"`
	Type      string      `json:"type"`
	Objects   []ObjectRef `json:"objects,omitempty"`
	Detail    TraceDetail `json:"detail"`
}
