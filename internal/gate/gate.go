package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/docketd/docket/internal/domain"
	"github.com/docketd/docket/internal/store"
)

// Gate is the dispatcher: the single entry point mediating every read and
// mutation of the record store.
type Gate struct {
	store  store.Store
	ids    domain.IDGenerator
	clock  *Clock
	now    func() time.Time
	reads  map[string]readHandler
	checks map[string]validator
	locks  *keyedLocks
}

// Option configures a Gate.
type Option func(*Gate)

// WithIDGenerator replaces the UUIDv7 generator. Tests use a fixed-sequence
// generator for deterministic identities.
func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(g *Gate) {
		g.ids = gen
	}
}

// WithNow replaces the wall clock. Tests use a fixed or stepping time source
// for deterministic timestamps.
func WithNow(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// New creates a Gate over the given store.
func New(s store.Store, opts ...Option) *Gate {
	g := &Gate{
		store: s,
		ids:   domain.UUIDv7Generator{},
		clock: NewClock(),
		now:   func() time.Time { return time.Now().UTC() },
		locks: newKeyedLocks(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.reads = g.readHandlers()
	g.checks = g.validators()
	return g
}

// Submit is the single boundary operation. The operation name is resolved
// against the read handler set first; anything else is treated as a mutation
// and runs validator -> executor -> trace under the mutation lock.
//
// Every failure below this point is converted here, once, into a typed error
// response; nothing below Submit communicates failure any other way. Panics
// are recovered at this boundary as well.
func (g *Gate) Submit(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("operation panicked", "operation", req.Operation, "panic", r)
			resp = errorResponse(newValidationFailed(fmt.Sprintf("operation %s panicked: %v", req.Operation, r)))
		}
	}()

	payload := req.Payload
	if payload == nil {
		payload = map[string]any{}
		if req.CaseID != "" {
			payload["case_id"] = req.CaseID
		}
	}

	slog.Debug("operation submitted", "operation", req.Operation, "case_id", req.CaseID)

	if read, ok := g.reads[req.Operation]; ok {
		data, err := read(ctx, payload)
		if err != nil {
			return errorResponse(toGateError(err))
		}
		return Response{OK: true, Data: data}
	}

	return g.submitMutation(ctx, req.Operation, payload, req.CaseID)
}

// submitMutation runs the validate -> execute -> trace sequence under the
// per-document mutation lock so validation always sees the latest committed
// state. A failed validator leaves the store untouched and writes no trace
// event.
func (g *Gate) submitMutation(ctx context.Context, operation string, payload map[string]any, caseContext string) Response {
	lock := g.locks.acquire(stringField(payload, "document_id"))
	defer lock.Unlock()

	if check, ok := g.checks[operation]; ok {
		if err := check(ctx, payload, caseContext); err != nil {
			slog.Debug("validation rejected",
				"operation", operation,
				"error", err,
			)
			return errorResponse(toGateError(err))
		}
	}

	data, err := g.execute(ctx, operation, payload, caseContext)
	if err != nil {
		return errorResponse(toGateError(err))
	}

	ev, err := g.appendTrace(ctx, operation, payload, resolveCaseID(payload, caseContext, data))
	if err != nil {
		return errorResponse(toGateError(err))
	}

	slog.Info("mutation accepted",
		"operation", operation,
		"case_id", ev.CaseID,
		"trace_event_id", ev.ID,
		"request_id", ev.Detail.RequestID,
	)

	return Response{OK: true, Data: data, TraceEventID: ev.ID}
}

// resolveCaseID picks the case identity recorded on the trace event: the
// payload's case_id, the submission's case context, or the mutated document's
// owning case when the executor produced one. Empty means system-level; the
// trace logger substitutes the sentinel.
func resolveCaseID(payload map[string]any, caseContext string, data any) string {
	if id := stringField(payload, "case_id"); id != "" {
		return id
	}
	if caseContext != "" {
		return caseContext
	}
	if doc, ok := data.(domain.Document); ok {
		return doc.CaseID
	}
	return ""
}

// toGateError converts any failure into the closed error set, exactly once,
// at the dispatcher boundary. Typed errors pass through; store sentinels map
// to their codes; everything else becomes the generic fallback.
func toGateError(err error) *Error {
	if ge, ok := AsError(err); ok {
		return ge
	}
	switch {
	case errors.Is(err, store.ErrCaseNotFound):
		return newCaseNotFound("")
	case errors.Is(err, store.ErrDocumentNotFound):
		return newObjectNotFound("")
	default:
		return newValidationFailed(err.Error())
	}
}

func errorResponse(ge *Error) Response {
	return Response{OK: false, Error: ge}
}
