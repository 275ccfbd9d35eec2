package provision

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docketd/docket/internal/domain"
	"github.com/docketd/docket/internal/store"
	"github.com/docketd/docket/internal/testutil"
)

const validFixture = `
cases:
  - id: case-1
    title: Smith v. Jones
    jurisdiction: US-NY
    confidentiality: INTERNAL
    parties:
      - role: SELF
        label: Smith
      - role: COUNTERPARTY
        label: Jones
        notes: served 2024-01-10
  - id: case-2
    title: In re Estate of Brown
    jurisdiction: US-CA
    confidentiality: RESTRICTED
`

func TestLoad_ValidFixture(t *testing.T) {
	f, err := Load([]byte(validFixture))
	require.NoError(t, err)
	require.Len(t, f.Cases, 2)
	assert.Equal(t, "Smith v. Jones", f.Cases[0].Title)
	assert.Len(t, f.Cases[0].Parties, 2)
	assert.Equal(t, "served 2024-01-10", f.Cases[0].Parties[1].Notes)
}

func TestLoad_RejectsUnknownConfidentiality(t *testing.T) {
	_, err := Load([]byte(`
cases:
  - id: case-1
    title: Smith v. Jones
    jurisdiction: US-NY
    confidentiality: TOP_SECRET
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fixture schema violation")
}

func TestLoad_RejectsUnknownPartyRole(t *testing.T) {
	_, err := Load([]byte(`
cases:
  - id: case-1
    title: Smith v. Jones
    jurisdiction: US-NY
    confidentiality: PUBLIC
    parties:
      - role: WITNESS
        label: Doe
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fixture schema violation")
}

func TestLoad_RejectsEmptyRequiredField(t *testing.T) {
	_, err := Load([]byte(`
cases:
  - id: ""
    title: Smith v. Jones
    jurisdiction: US-NY
    confidentiality: PUBLIC
`))
	require.Error(t, err)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	_, err := Load([]byte("cases: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse fixture")
}

func TestApply_CreatesCasesWithFixedBranches(t *testing.T) {
	f, err := Load([]byte(validFixture))
	require.NoError(t, err)

	s := store.NewMemory()
	p := NewProvisioner(s, testutil.NewSeqGenerator("prov"), testutil.NewSteppingTime(testutil.Epoch, time.Second).Now)

	n, err := p.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	c, err := s.GetCase(context.Background(), "case-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ConfidentialityInternal, c.Confidentiality)
	assert.Len(t, c.Branches, domain.BranchCount)
	require.Len(t, c.Parties, 2)
	assert.Equal(t, domain.PartySelf, c.Parties[0].Role)

	events, err := s.ListTrace(context.Background(), "case-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "CASE_PROVISION", events[0].Type)
	assert.Equal(t, domain.GateActor, events[0].Actor)
}
