package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allowedPairs enumerates the full transition table independently of the
// implementation map, so table edits are caught in both directions.
var allowedPairs = map[Status][]Status{
	StatusInbox:        {StatusRegistered, StatusDuplicate, StatusError, StatusDisputed},
	StatusRegistered:   {StatusClassified, StatusDuplicate, StatusError, StatusDisputed},
	StatusClassified:   {StatusQualified, StatusRedacted, StatusError, StatusDisputed},
	StatusQualified:    {StatusExhibitReady, StatusError, StatusDisputed},
	StatusExhibitReady: {StatusFiled, StatusError, StatusDisputed},
	StatusFiled:        {StatusFrozen, StatusError, StatusDisputed},
	StatusFrozen:       {StatusArchived, StatusError, StatusDisputed},
	StatusArchived:     {},
	StatusDuplicate:    {StatusArchived, StatusError},
	StatusDisputed:     {StatusClassified, StatusError, StatusArchived},
	StatusRedacted:     {StatusQualified, StatusError},
	StatusError:        {StatusInbox, StatusArchived},
}

func TestCanTransition_ExhaustivePairs(t *testing.T) {
	// Every (from, to) pair succeeds iff it appears in the table.
	for _, from := range AllStatuses {
		allowed := map[Status]bool{}
		for _, to := range allowedPairs[from] {
			allowed[to] = true
		}
		for _, to := range AllStatuses {
			got := CanTransition(from, to)
			assert.Equal(t, allowed[to], got, "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_AsymmetricRecoveryPaths(t *testing.T) {
	assert.True(t, CanTransition(StatusError, StatusInbox))
	assert.True(t, CanTransition(StatusError, StatusArchived))
	assert.True(t, CanTransition(StatusDisputed, StatusClassified))
	assert.True(t, CanTransition(StatusDisputed, StatusArchived))

	// Closing early is not a recovery path.
	assert.False(t, CanTransition(StatusClassified, StatusArchived))
	assert.False(t, CanTransition(StatusFiled, StatusArchived))
	assert.False(t, CanTransition(StatusArchived, StatusError))
}

func TestCanTransition_ArchivedIsTerminal(t *testing.T) {
	for _, to := range AllStatuses {
		assert.False(t, CanTransition(StatusArchived, to), "ARCHIVED -> %s must be blocked", to)
	}
	assert.Empty(t, AllowedNext(StatusArchived))
}

func TestCanTransition_UnknownStatusBlocksAll(t *testing.T) {
	for _, to := range AllStatuses {
		assert.False(t, CanTransition(Status("LIMBO"), to))
	}
	assert.Empty(t, AllowedNext(Status("LIMBO")))
}

func TestValidStatus(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, ValidStatus(s), "%s", s)
	}
	assert.False(t, ValidStatus(Status("LIMBO")))
	assert.False(t, ValidStatus(Status("")))
}

func TestAllowedNext_ReturnsCopy(t *testing.T) {
	first := AllowedNext(StatusInbox)
	require.NotEmpty(t, first)
	first[0] = Status("MUTATED")

	second := AllowedNext(StatusInbox)
	assert.Equal(t, StatusRegistered, second[0], "caller mutation must not leak into the table")
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusInbox, InitialStatus)
}
