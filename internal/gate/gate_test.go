package gate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docketd/docket/internal/domain"
	"github.com/docketd/docket/internal/store"
	"github.com/docketd/docket/internal/testutil"
)

func seedCase(t *testing.T, s *store.Memory, id string) {
	t.Helper()
	require.NoError(t, s.PutCase(context.Background(), domain.Case{
		ID:              id,
		Title:           "Smith v. Jones",
		Jurisdiction:    "US-NY",
		Confidentiality: domain.ConfidentialityInternal,
		CreatedAt:       testutil.Epoch,
	}))
}

func TestSubmit_CaseGet_EmptyCaseHasThirteenEmptyBranches(t *testing.T) {
	g, s := newTestGate(t)
	seedCase(t, s, "case-1")

	resp := g.Submit(context.Background(), Request{Operation: "case_get", Payload: map[string]any{"case_id": "case-1"}})
	require.True(t, resp.OK)
	assert.Empty(t, resp.TraceEventID, "reads carry no trace id")

	c, ok := resp.Data.(domain.Case)
	require.True(t, ok)
	require.Len(t, c.Branches, domain.BranchCount)
	for _, b := range c.Branches {
		assert.NotNil(t, b.Documents, "branch %s", b.Code)
		assert.Empty(t, b.Documents, "branch %s", b.Code)
	}
}

func TestSubmit_CaseGet_DefaultsPayloadFromCaseContext(t *testing.T) {
	g, s := newTestGate(t)
	seedCase(t, s, "case-1")

	resp := g.Submit(context.Background(), Request{Operation: "case_get", CaseID: "case-1"})
	require.True(t, resp.OK)

	c, ok := resp.Data.(domain.Case)
	require.True(t, ok)
	assert.Equal(t, "case-1", c.ID)
}

func TestSubmit_CaseGet_NotFound(t *testing.T) {
	g, _ := newTestGate(t)

	ge := submitErr(t, g, Request{Operation: "case_get", Payload: map[string]any{"case_id": "ghost"}})
	assert.Equal(t, CodeCaseNotFound, ge.Code)
	assert.Equal(t, ClassNotFound, ge.Class())
}

func TestSubmit_CaseGet_EnrichmentRecomputedPerRead(t *testing.T) {
	g, s := newTestGate(t)
	seedCase(t, s, "case-1")

	before := g.Submit(context.Background(), Request{Operation: "case_get", CaseID: "case-1"})
	require.True(t, before.OK)

	ingest := g.Submit(context.Background(), Request{
		Operation: "doc_ingest",
		CaseID:    "case-1",
		Payload: map[string]any{
			"case_id":         "case-1",
			"branch_code":     "EVD",
			"source_filename": "scan.pdf",
			"storage_ref":     "s3://bucket/scan.pdf",
		},
	})
	require.True(t, ingest.OK)

	after := g.Submit(context.Background(), Request{Operation: "case_get", CaseID: "case-1"})
	require.True(t, after.OK)

	c := after.Data.(domain.Case)
	var evd domain.Branch
	for _, b := range c.Branches {
		if b.Code == domain.BranchEvidence {
			evd = b
		}
	}
	require.Len(t, evd.Documents, 1)
	assert.Equal(t, domain.StatusInbox, evd.Documents[0].Status)

	// The earlier read's snapshot is unaffected.
	assert.Empty(t, before.Data.(domain.Case).Branches[8].Documents)
}

func TestSubmit_CaseGet_Idempotent(t *testing.T) {
	g, s := newTestGate(t)
	seedCase(t, s, "case-1")
	seedDocument(t, s, "doc-1", "case-1", domain.StatusInbox)

	first := g.Submit(context.Background(), Request{Operation: "case_get", CaseID: "case-1"})
	second := g.Submit(context.Background(), Request{Operation: "case_get", CaseID: "case-1"})
	require.True(t, first.OK)
	require.True(t, second.OK)
	assert.Equal(t, first.Data, second.Data)
}

func TestSubmit_DocGet(t *testing.T) {
	g, s := newTestGate(t)
	seedDocument(t, s, "doc-1", "case-1", domain.StatusInbox)

	resp := g.Submit(context.Background(), Request{
		Operation: "doc_get",
		Payload:   map[string]any{"case_id": "case-1", "document_id": "doc-1"},
	})
	require.True(t, resp.OK)
	assert.Equal(t, "doc-1", resp.Data.(domain.Document).ID)

	ge := submitErr(t, g, Request{
		Operation: "doc_get",
		Payload:   map[string]any{"case_id": "case-2", "document_id": "doc-1"},
	})
	assert.Equal(t, CodeObjectNotFound, ge.Code)
}

func TestSubmit_Ingest_BuildsDocumentWithOneArtifact(t *testing.T) {
	g, _ := newTestGate(t)

	resp := g.Submit(context.Background(), Request{
		Operation: "doc_ingest",
		CaseID:    "case-1",
		Payload: map[string]any{
			"branch_code":     "EVD",
			"source_filename": "scan.pdf",
			"storage_ref":     "s3://bucket/scan.pdf",
			"metadata":        map[string]any{"pages": "12"},
		},
	})
	require.True(t, resp.OK)
	require.NotEmpty(t, resp.TraceEventID)

	doc, ok := resp.Data.(domain.Document)
	require.True(t, ok)
	assert.Equal(t, "case-1", doc.CaseID)
	assert.Equal(t, domain.BranchEvidence, doc.BranchCode)
	assert.Equal(t, domain.StatusInbox, doc.Status, "default status")
	assert.Equal(t, "12", doc.Metadata["pages"])
	require.Len(t, doc.Artifacts, 1)
	assert.Equal(t, doc.ID, doc.Artifacts[0].DocumentID)
	assert.Equal(t, "scan.pdf", doc.Artifacts[0].Filename)
	assert.Equal(t, domain.DefaultMimeType, doc.Artifacts[0].MimeType, "default mime")
}

func TestSubmit_Ingest_UnknownBranchRejected(t *testing.T) {
	g, _ := newTestGate(t)

	ge := submitErr(t, g, Request{
		Operation: "doc_ingest",
		CaseID:    "case-1",
		Payload:   map[string]any{"branch_code": "NOPE", "source_filename": "a.pdf", "storage_ref": "ref"},
	})
	assert.Equal(t, CodeValidationFailed, ge.Code)
	assert.Equal(t, ClassBadRequest, ge.Class())
}

func TestSubmit_IngestThenTransitions_FourTraceEvents(t *testing.T) {
	g, s := newTestGate(t)
	seedCase(t, s, "case-1")

	ingest := g.Submit(context.Background(), Request{
		Operation: "doc_ingest",
		CaseID:    "case-1",
		Payload: map[string]any{
			"case_id":         "case-1",
			"branch_code":     "EVD",
			"source_filename": "scan.pdf",
			"storage_ref":     "s3://bucket/scan.pdf",
		},
	})
	require.True(t, ingest.OK)
	docID := ingest.Data.(domain.Document).ID

	for _, to := range []string{"REGISTERED", "CLASSIFIED"} {
		resp := g.Submit(context.Background(), Request{
			Operation: "doc_status_transition",
			Payload:   map[string]any{"document_id": docID, "to_status": to},
		})
		require.True(t, resp.OK, "transition to %s: %+v", to, resp.Error)
		assert.Equal(t, domain.Status(to), resp.Data.(domain.Document).Status)
	}

	// One more transition plus the ingest event: four in total.
	resp := g.Submit(context.Background(), Request{
		Operation: "doc_status_transition",
		Payload:   map[string]any{"document_id": docID, "to_status": "QUALIFIED"},
	})
	require.True(t, resp.OK)

	events, err := s.ListTrace(context.Background(), "case-1")
	require.NoError(t, err)
	require.Len(t, events, 4)

	// Timestamps are monotonic, so most recent first = reverse submission.
	assert.Equal(t, "DOC_STATUS_TRANSITION", events[0].Type)
	assert.Equal(t, "DOC_INGEST", events[3].Type)
	for _, ev := range events {
		assert.Equal(t, domain.GateActor, ev.Actor)
		assert.Equal(t, "case-1", ev.CaseID)
	}

	// Transition events reference the mutated document; the ingest payload
	// carried no document id, so its reference list is empty.
	require.Len(t, events[0].Objects, 1)
	assert.Equal(t, domain.ObjectRef{Type: "document", ID: docID}, events[0].Objects[0])
	assert.Empty(t, events[3].Objects)
}

func TestSubmit_EchoFallbackStillTraced(t *testing.T) {
	g, s := newTestGate(t)

	resp := g.Submit(context.Background(), Request{
		Operation: "case_note_add",
		CaseID:    "case-1",
		Payload:   map[string]any{"case_id": "case-1", "note": "call the clerk"},
	})
	require.True(t, resp.OK)
	require.NotEmpty(t, resp.TraceEventID)

	// The echo is an acknowledgment carrying the payload back.
	echoed, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "call the clerk", echoed["note"])

	events, err := s.ListTrace(context.Background(), "case-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "CASE_NOTE_ADD", events[0].Type)
	assert.Equal(t, resp.TraceEventID, events[0].ID)
}

func TestSubmit_RequestIDEchoedIntoTrace(t *testing.T) {
	g, s := newTestGate(t)

	resp := g.Submit(context.Background(), Request{
		Operation: "doc_ingest",
		CaseID:    "case-1",
		Payload: map[string]any{
			"case_id":         "case-1",
			"branch_code":     "EVD",
			"source_filename": "scan.pdf",
			"storage_ref":     "ref",
			"request_id":      "req-42",
		},
	})
	require.True(t, resp.OK)

	events, err := s.ListTrace(context.Background(), "case-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "req-42", events[0].Detail.RequestID)
	assert.Equal(t, "req-42", events[0].Detail.Payload["request_id"])
}

func TestSubmit_TraceDetailUnaffectedByLaterPayloadMutation(t *testing.T) {
	g, s := newTestGate(t)

	payload := map[string]any{
		"case_id":         "case-1",
		"branch_code":     "EVD",
		"source_filename": "scan.pdf",
		"storage_ref":     "ref",
	}
	resp := g.Submit(context.Background(), Request{Operation: "doc_ingest", Payload: payload})
	require.True(t, resp.OK)

	payload["storage_ref"] = "rewritten"

	events, err := s.ListTrace(context.Background(), "case-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ref", events[0].Detail.Payload["storage_ref"])
}

func TestSubmit_SystemSentinelForCaselessMutations(t *testing.T) {
	g, s := newTestGate(t)

	resp := g.Submit(context.Background(), Request{
		Operation: "maintenance_compact",
		Payload:   map[string]any{"reason": "scheduled"},
	})
	require.True(t, resp.OK)

	events, err := s.ListTrace(context.Background(), domain.SystemCaseID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.SystemCaseID, events[0].CaseID)
}

func TestSubmit_ConcurrentTransitions_OnlyOneWins(t *testing.T) {
	g, s := newTestGate(t)
	seedDocument(t, s, "doc-1", "case-1", domain.StatusInbox)

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]Response, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.Submit(context.Background(), Request{
				Operation: "doc_status_transition",
				Payload:   map[string]any{"document_id": "doc-1", "to_status": "REGISTERED"},
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, resp := range results {
		if resp.OK {
			wins++
		} else {
			assert.Equal(t, CodeIllegalTransition, resp.Error.Code)
		}
	}
	assert.Equal(t, 1, wins, "validation must always see the latest committed state")

	events, err := s.ListTrace(context.Background(), "case-1")
	require.NoError(t, err)
	assert.Len(t, events, 1, "rejected attempts write no trace event")
}

func TestSubmit_RecoversPanicsAtBoundary(t *testing.T) {
	s := store.NewMemory()
	exhausted := domain.NewFixedGenerator() // any id request panics
	g := New(s, WithIDGenerator(exhausted), WithNow(testutil.FrozenTime(testutil.Epoch)))

	resp := g.Submit(context.Background(), Request{
		Operation: "doc_ingest",
		CaseID:    "case-1",
		Payload:   map[string]any{"branch_code": "EVD", "source_filename": "a.pdf", "storage_ref": "ref"},
	})
	require.False(t, resp.OK)
	assert.Equal(t, CodeValidationFailed, resp.Error.Code)
}

func TestSubmit_TraceQueryOrdering(t *testing.T) {
	g, _ := newTestGate(t)

	for i := 0; i < 3; i++ {
		resp := g.Submit(context.Background(), Request{
			Operation: "case_note_add",
			CaseID:    "case-1",
			Payload:   map[string]any{"case_id": "case-1", "note": string(rune('a' + i))},
		})
		require.True(t, resp.OK)
	}

	resp := g.Submit(context.Background(), Request{Operation: "trace_query", Payload: map[string]any{"case_id": "case-1"}})
	require.True(t, resp.OK)

	events, ok := resp.Data.([]domain.TraceEvent)
	require.True(t, ok)
	require.Len(t, events, 3)
	assert.Equal(t, "c", events[0].Detail.Payload["note"])
	assert.Equal(t, "b", events[1].Detail.Payload["note"])
	assert.Equal(t, "a", events[2].Detail.Payload["note"])
}

func TestSubmit_TraceQueryEmptyCase(t *testing.T) {
	g, _ := newTestGate(t)

	resp := g.Submit(context.Background(), Request{Operation: "trace_query", Payload: map[string]any{"case_id": "quiet"}})
	require.True(t, resp.OK)
	events, ok := resp.Data.([]domain.TraceEvent)
	require.True(t, ok)
	assert.Empty(t, events)
}

func TestGate_DefaultWallClock(t *testing.T) {
	g := New(store.NewMemory())
	before := time.Now().UTC()
	got := g.now()
	assert.False(t, got.Before(before.Add(-time.Minute)))
}
