package gate

import (
	"context"
	"fmt"
	"strings"

	"github.com/docketd/docket/internal/domain"
)

// appendTrace builds and appends the one trace event recorded for an
// accepted mutation. The append is unconditional: every write path that
// reaches the executor also reaches here, and there is no way to opt out.
func (g *Gate) appendTrace(ctx context.Context, operation string, payload map[string]any, caseID string) (domain.TraceEvent, error) {
	if caseID == "" {
		caseID = domain.SystemCaseID
	}

	requestID := stringField(payload, "request_id")
	if requestID == "" {
		requestID = g.ids.NewID()
	}

	var objects []domain.ObjectRef
	if docID := stringField(payload, "document_id"); docID != "" {
		objects = []domain.ObjectRef{{Type: "document", ID: docID}}
	}

	ev := domain.TraceEvent{
		ID:        g.ids.NewID(),
		CaseID:    caseID,
		Seq:       g.clock.Next(),
		Timestamp: g.now(),
		Actor:     domain.GateActor,
		Type:      strings.ToUpper(operation),
		Objects:   objects,
		Detail: domain.TraceDetail{
			Summary:   fmt.Sprintf("%s accepted", operation),
			RequestID: requestID,
			Payload:   copyPayload(payload),
		},
	}

	if err := g.store.AppendTrace(ctx, ev); err != nil {
		return domain.TraceEvent{}, err
	}
	return ev, nil
}
