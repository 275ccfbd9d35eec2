package store

import (
	"context"
	"sort"
	"sync"

	"github.com/docketd/docket/internal/domain"
)

// Memory is the in-memory Store. All maps are guarded by a single RWMutex;
// reads return deep copies taken under the read lock.
type Memory struct {
	mu       sync.RWMutex
	cases    map[string]domain.Case
	docs     map[string]domain.Document
	docOrder []string // insertion order of document ids
	traces   map[string][]domain.TraceEvent
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		cases:  make(map[string]domain.Case),
		docs:   make(map[string]domain.Document),
		traces: make(map[string][]domain.TraceEvent),
	}
}

func (m *Memory) GetCase(_ context.Context, caseID string) (domain.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cases[caseID]
	if !ok {
		return domain.Case{}, ErrCaseNotFound
	}
	return c.Clone(), nil
}

func (m *Memory) PutCase(_ context.Context, c domain.Case) error {
	if len(c.Branches) == 0 {
		c.Branches = domain.FixedBranches()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cases[c.ID] = c.Clone()
	return nil
}

func (m *Memory) GetDocument(_ context.Context, caseID, docID string) (domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.docs[docID]
	if !ok || d.CaseID != caseID {
		return domain.Document{}, ErrDocumentNotFound
	}
	return d.Clone(), nil
}

func (m *Memory) FindDocument(_ context.Context, docID string) (domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.docs[docID]
	if !ok {
		return domain.Document{}, ErrDocumentNotFound
	}
	return d.Clone(), nil
}

func (m *Memory) PutDocument(_ context.Context, d domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.docs[d.ID]; !exists {
		m.docOrder = append(m.docOrder, d.ID)
	}
	m.docs[d.ID] = d.Clone()
	return nil
}

func (m *Memory) ListDocuments(_ context.Context, caseID string) ([]domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.Document{}
	for _, id := range m.docOrder {
		if d := m.docs[id]; d.CaseID == caseID {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

func (m *Memory) AppendTrace(_ context.Context, ev domain.TraceEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.traces[ev.CaseID] = append(m.traces[ev.CaseID], cloneTrace(ev))
	return nil
}

func (m *Memory) ListTrace(_ context.Context, caseID string) ([]domain.TraceEvent, error) {
	m.mu.RLock()
	events := m.traces[caseID]
	out := make([]domain.TraceEvent, len(events))
	for i, ev := range events {
		out[i] = cloneTrace(ev)
	}
	m.mu.RUnlock()

	// Stable sort keeps insertion order among equal timestamps.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}

func cloneTrace(ev domain.TraceEvent) domain.TraceEvent {
	out := ev
	out.Objects = append([]domain.ObjectRef(nil), ev.Objects...)
	if ev.Detail.Payload != nil {
		out.Detail.Payload = make(map[string]any, len(ev.Detail.Payload))
		for k, v := range ev.Detail.Payload {
			out.Detail.Payload[k] = v
		}
	}
	return out
}
